package dashboard

import (
	"testing"

	"edu_portal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForRole(t *testing.T) {
	for _, role := range []model.Role{model.RoleStudent, model.RoleTeacher} {
		d, err := ForRole(role)
		require.NoError(t, err)
		assert.Equal(t, role, d.Role)
		assert.NotEmpty(t, d.Stats)
	}

	_, err := ForRole("admin")
	assert.Error(t, err)
}

func TestLandingPage(t *testing.T) {
	l := LandingPage()
	assert.NotEmpty(t, l.Headline)
	assert.Len(t, l.Categories, 4)
	assert.Contains(t, l.Actions, "/login")
}
