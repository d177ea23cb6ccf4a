// Package profile implements the view/edit toggle of a user's own profile.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"edu_portal/internal/client"
	"edu_portal/internal/model"
)

// ErrNotEditing is returned when a change is made in read-only mode
var ErrNotEditing = errors.New("profile is not in edit mode")

// SaveFunc persists a profile and returns the stored version
type SaveFunc func(ctx context.Context, p model.Profile) (model.Profile, error)

// Editor holds the committed profile and, while editing, a draft of it
type Editor struct {
	committed model.Profile
	draft     model.Profile
	editing   bool
	save      SaveFunc
}

func NewEditor(p model.Profile, save SaveFunc) *Editor {
	return &Editor{committed: p, save: save}
}

func (e *Editor) Editing() bool { return e.editing }

// Profile returns what the screen shows: the draft while editing
func (e *Editor) Profile() model.Profile {
	if e.editing {
		return e.draft
	}
	return e.committed
}

// Edit switches to edit mode with a fresh draft
func (e *Editor) Edit() {
	e.editing = true
	e.draft = clone(e.committed)
}

// Cancel drops the draft
func (e *Editor) Cancel() {
	e.editing = false
	e.draft = nil
}

// Set changes one field of the draft
func (e *Editor) Set(field, value string) error {
	if !e.editing {
		return ErrNotEditing
	}
	switch p := e.draft.(type) {
	case model.TeacherProfile:
		switch field {
		case "name":
			p.Name = value
		case "subject":
			p.Subject = value
		case "experience":
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 0 {
				return &client.ValidationError{Field: field, Message: "must be a non-negative whole number"}
			}
			p.Experience = n
		default:
			return &client.ValidationError{Field: field, Message: "unknown field"}
		}
		e.draft = p
	case model.StudentProfile:
		switch field {
		case "name":
			p.Name = value
		case "grade":
			p.Grade = model.Grade(value)
		case "courses", "enrolledCourses":
			p.Courses = nil
			for _, c := range strings.Split(value, ",") {
				if c = strings.TrimSpace(c); c != "" {
					p.Courses = append(p.Courses, c)
				}
			}
			if p.Courses == nil {
				p.Courses = []string{}
			}
		default:
			return &client.ValidationError{Field: field, Message: "unknown field"}
		}
		e.draft = p
	default:
		return fmt.Errorf("no profile to edit")
	}
	return nil
}

// Save validates presence, commits through the SaveFunc and leaves edit mode.
// On failure the editor stays in edit mode with the draft intact.
func (e *Editor) Save(ctx context.Context) error {
	if !e.editing {
		return ErrNotEditing
	}
	if err := validate(e.draft); err != nil {
		return err
	}
	saved, err := e.save(ctx, e.draft)
	if err != nil {
		return err
	}
	if saved == nil {
		saved = e.draft
	}
	e.committed = saved
	e.Cancel()
	return nil
}

func validate(p model.Profile) error {
	switch p := p.(type) {
	case model.TeacherProfile:
		if strings.TrimSpace(p.Name) == "" {
			return &client.ValidationError{Field: "name", Message: "is required"}
		}
		if strings.TrimSpace(p.Subject) == "" {
			return &client.ValidationError{Field: "subject", Message: "is required"}
		}
	case model.StudentProfile:
		if strings.TrimSpace(p.Name) == "" {
			return &client.ValidationError{Field: "name", Message: "is required"}
		}
		if strings.TrimSpace(string(p.Grade)) == "" {
			return &client.ValidationError{Field: "grade", Message: "is required"}
		}
	default:
		return fmt.Errorf("no profile to save")
	}
	return nil
}

func clone(p model.Profile) model.Profile {
	if sp, ok := p.(model.StudentProfile); ok {
		sp.Courses = append([]string{}, sp.Courses...)
		return sp
	}
	return p
}

// SaveVia returns a SaveFunc that stores the profile on the user's record
// through the directory API, keeping email and role.
func SaveVia(api interface {
	UpdateUser(ctx context.Context, id string, upd model.UserUpdate) (model.User, error)
}, user model.User) SaveFunc {
	return func(ctx context.Context, p model.Profile) (model.Profile, error) {
		updated, err := api.UpdateUser(ctx, user.ID, model.UserUpdate{Email: user.Email, Role: user.Role, Profile: p})
		if err != nil {
			return nil, err
		}
		return updated.Profile, nil
	}
}
