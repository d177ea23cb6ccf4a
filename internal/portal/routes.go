package portal

import (
	"fmt"
	"strings"

	"edu_portal/internal/model"
)

// Screen paths of the portal
const (
	PathLanding          = "/"
	PathLogin            = "/login"
	PathSignup           = "/signup"
	PathUserList         = "/userlist"
	PathUpdateUser       = "/updateuser/"
	PathStudentDashboard = "/student-dashboard"
	PathTeacherDashboard = "/teacher-dashboard"
)

// DashboardPath maps a role to its landing screen. Unknown roles fail closed.
func DashboardPath(role model.Role) (string, error) {
	switch role {
	case model.RoleTeacher:
		return PathTeacherDashboard, nil
	case model.RoleStudent:
		return PathStudentDashboard, nil
	}
	return "", fmt.Errorf("no dashboard for role %q", role)
}

// UpdateUserPath is the edit screen of one user
func UpdateUserPath(id string) string {
	return PathUpdateUser + id
}

// UserIDFromPath extracts the id of an edit screen path
func UserIDFromPath(path string) (string, bool) {
	id, ok := strings.CutPrefix(path, PathUpdateUser)
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
