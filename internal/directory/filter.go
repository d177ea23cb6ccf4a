package directory

import (
	"strings"

	"edu_portal/internal/model"
)

// Filter returns the users whose email or profile name contains q,
// ignoring case. The input slice is never modified.
func Filter(users []model.User, q string) []model.User {
	out := make([]model.User, 0, len(users))
	needle := strings.ToLower(q)
	for _, u := range users {
		if needle == "" || matches(u, needle) {
			out = append(out, u)
		}
	}
	return out
}

func matches(u model.User, needle string) bool {
	if strings.Contains(strings.ToLower(u.Email), needle) {
		return true
	}
	name := model.ProfileName(u.Profile)
	return name != "" && strings.Contains(strings.ToLower(name), needle)
}
