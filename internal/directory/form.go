package directory

import (
	"fmt"
	"strconv"
	"strings"

	"edu_portal/internal/model"
)

// UpdateForm is the editable state of the update-user screen
type UpdateForm struct {
	Email   string
	Role    model.Role
	Profile model.Profile
}

// NewUpdateForm seeds the form from the current record
func NewUpdateForm(u model.User) *UpdateForm {
	p := u.Profile
	if p == nil || p.Role() != u.Role {
		p = model.EmptyProfile(u.Role)
	}
	return &UpdateForm{Email: u.Email, Role: u.Role, Profile: p}
}

// SetRole switches the role. Changing it resets the profile to an empty one
// of the new shape so no field of the old shape survives.
func (f *UpdateForm) SetRole(r model.Role) error {
	if !r.Valid() {
		return fmt.Errorf("unknown role %q", r)
	}
	if r != f.Role {
		f.Role = r
		f.Profile = model.EmptyProfile(r)
	}
	return nil
}

// SetField edits one profile field by its wire name
func (f *UpdateForm) SetField(name, value string) error {
	switch p := f.Profile.(type) {
	case model.TeacherProfile:
		switch name {
		case "name":
			p.Name = value
		case "subject":
			p.Subject = value
		case "experience":
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 0 {
				return fmt.Errorf("experience must be a non-negative whole number")
			}
			p.Experience = n
		default:
			return fmt.Errorf("teachers have no %q field", name)
		}
		f.Profile = p
	case model.StudentProfile:
		switch name {
		case "name":
			p.Name = value
		case "grade":
			p.Grade = model.Grade(value)
		case "courses", "enrolledCourses":
			p.Courses = splitList(value)
		default:
			return fmt.Errorf("students have no %q field", name)
		}
		f.Profile = p
	default:
		return fmt.Errorf("form has no profile")
	}
	return nil
}

// Payload is the full replacement body sent to the API
func (f *UpdateForm) Payload() model.UserUpdate {
	return model.UserUpdate{Email: strings.TrimSpace(f.Email), Role: f.Role, Profile: f.Profile}
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
