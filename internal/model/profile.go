package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Profile is the role-specific part of a user. The concrete types are
// TeacherProfile and StudentProfile; match them with a type switch.
type Profile interface {
	Role() Role
	DisplayName() string
	isProfile()
}

// TeacherProfile describes a teacher account
type TeacherProfile struct {
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Experience int    `json:"experience"` // years
}

func (TeacherProfile) Role() Role            { return RoleTeacher }
func (p TeacherProfile) DisplayName() string { return p.Name }
func (TeacherProfile) isProfile()            {}

// StudentProfile describes a student account
type StudentProfile struct {
	Name    string   `json:"name"`
	Grade   Grade    `json:"grade"`
	Courses []string `json:"enrolledCourses"`
}

func (StudentProfile) Role() Role            { return RoleStudent }
func (p StudentProfile) DisplayName() string { return p.Name }
func (StudentProfile) isProfile()            {}

func (p StudentProfile) MarshalJSON() ([]byte, error) {
	type plain StudentProfile
	if p.Courses == nil {
		p.Courses = []string{}
	}
	return json.Marshal(plain(p))
}

// UnmarshalJSON also reads the list under its older name "courses"
func (p *StudentProfile) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name            string   `json:"name"`
		Grade           Grade    `json:"grade"`
		EnrolledCourses []string `json:"enrolledCourses"`
		Courses         []string `json:"courses"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Name, p.Grade, p.Courses = aux.Name, aux.Grade, aux.EnrolledCourses
	if p.Courses == nil {
		p.Courses = aux.Courses
	}
	return nil
}

// Grade is a class band. Older records carry it as a JSON number.
type Grade string

func (g *Grade) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = Grade(s)
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid grade %s", data)
	}
	*g = Grade(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// EmptyProfile returns the zero profile of the role's shape
func EmptyProfile(r Role) Profile {
	switch r {
	case RoleTeacher:
		return TeacherProfile{}
	case RoleStudent:
		return StudentProfile{Courses: []string{}}
	}
	return nil
}

// DecodeProfile decodes raw JSON in the shape of role. Fields that belong to
// the other shape are dropped.
func DecodeProfile(r Role, raw []byte) (Profile, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return EmptyProfile(r), nil
	}
	switch r {
	case RoleTeacher:
		var p TeacherProfile
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid teacher profile: %w", err)
		}
		if p.Experience < 0 {
			return nil, fmt.Errorf("invalid teacher profile: experience must not be negative")
		}
		return p, nil
	case RoleStudent:
		var p StudentProfile
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid student profile: %w", err)
		}
		if p.Courses == nil {
			p.Courses = []string{}
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown role %q", r)
}

// ProfileName returns the profile's name, or "" when there is no profile
func ProfileName(p Profile) string {
	if p == nil {
		return ""
	}
	return p.DisplayName()
}
