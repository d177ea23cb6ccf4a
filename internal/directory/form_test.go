package directory

import (
	"testing"

	"edu_portal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateForm_TeacherToStudentClearsFields(t *testing.T) {
	form := NewUpdateForm(model.User{
		ID: "2", Email: "t@x.com", Role: model.RoleTeacher,
		Profile: model.TeacherProfile{Name: "T", Subject: "Math", Experience: 9},
	})

	require.NoError(t, form.SetRole(model.RoleStudent))

	assert.Equal(t, model.StudentProfile{Courses: []string{}}, form.Profile)
	assert.Error(t, form.SetField("subject", "Math"))
	assert.Error(t, form.SetField("experience", "3"))
}

func TestUpdateForm_StudentToTeacherClearsFields(t *testing.T) {
	form := NewUpdateForm(model.User{
		Role:    model.RoleStudent,
		Profile: model.StudentProfile{Name: "S", Grade: "9", Courses: []string{"c"}},
	})

	require.NoError(t, form.SetRole(model.RoleTeacher))
	assert.Equal(t, model.TeacherProfile{}, form.Profile)
}

func TestUpdateForm_SameRoleKeepsProfile(t *testing.T) {
	p := model.TeacherProfile{Name: "T", Subject: "Math"}
	form := NewUpdateForm(model.User{Role: model.RoleTeacher, Profile: p})

	require.NoError(t, form.SetRole(model.RoleTeacher))
	assert.Equal(t, p, form.Profile)
	assert.Error(t, form.SetRole("admin"))
}

func TestUpdateForm_SetField(t *testing.T) {
	form := NewUpdateForm(model.User{Role: model.RoleTeacher})

	require.NoError(t, form.SetField("experience", " 4 "))
	assert.Error(t, form.SetField("experience", "-1"))
	assert.Error(t, form.SetField("experience", "four"))
	assert.Equal(t, 4, form.Profile.(model.TeacherProfile).Experience)
}

func TestUpdateForm_MismatchedProfileIsReset(t *testing.T) {
	form := NewUpdateForm(model.User{Role: model.RoleStudent, Profile: model.TeacherProfile{Name: "x"}})
	assert.Equal(t, model.EmptyProfile(model.RoleStudent), form.Profile)
}
