package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role is the account type; it decides the profile shape and the dashboard.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole validates a raw role string
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleStudent, RoleTeacher:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User represents an account as returned by the API.
// There is deliberately no password field: reads never carry credentials.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

type userJSON struct {
	ID        string          `json:"id,omitempty"`
	Email     string          `json:"email"`
	Role      Role            `json:"role"`
	Profile   json.RawMessage `json:"profile"`
	CreatedAt time.Time       `json:"created_at,omitzero"`
}

// MarshalJSON writes the profile in the shape of the user's role
func (u User) MarshalJSON() ([]byte, error) {
	p := u.Profile
	if p == nil {
		p = EmptyProfile(u.Role)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(userJSON{ID: u.ID, Email: u.Email, Role: u.Role, Profile: raw, CreatedAt: u.CreatedAt})
}

// UnmarshalJSON decodes the profile under the user's role
func (u *User) UnmarshalJSON(data []byte) error {
	var aux userJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	role, err := ParseRole(string(aux.Role))
	if err != nil {
		return err
	}
	profile, err := DecodeProfile(role, aux.Profile)
	if err != nil {
		return err
	}
	*u = User{ID: aux.ID, Email: aux.Email, Role: role, Profile: profile, CreatedAt: aux.CreatedAt}
	return nil
}

// StoredUser is the persisted form of a user, including the password hash.
type StoredUser struct {
	User
	PasswordHash string
}

// SignupRequest is the body of POST /api/auth/signup
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     Role   `json:"role" binding:"required,oneof=student teacher"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"required,oneof=student teacher"`
}

// LoginResponse carries the issued credential
type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// UserUpdate is the full replacement body of PUT /users/:id
type UserUpdate struct {
	Email   string  `json:"email"`
	Role    Role    `json:"role"`
	Profile Profile `json:"profile"`
}

func (u UserUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(User{Email: u.Email, Role: u.Role, Profile: u.Profile})
}

func (u *UserUpdate) UnmarshalJSON(data []byte) error {
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return err
	}
	*u = UserUpdate{Email: user.Email, Role: user.Role, Profile: user.Profile}
	return nil
}
