package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("teacher")
	require.NoError(t, err)
	assert.Equal(t, RoleTeacher, r)

	_, err = ParseRole("admin")
	assert.Error(t, err)
	assert.False(t, Role("").Valid())
}

func TestEmptyProfile(t *testing.T) {
	assert.Equal(t, TeacherProfile{}, EmptyProfile(RoleTeacher))
	assert.Equal(t, StudentProfile{Courses: []string{}}, EmptyProfile(RoleStudent))
	assert.Nil(t, EmptyProfile("admin"))
}

func TestDecodeProfile_DropsForeignFields(t *testing.T) {
	raw := []byte(`{"name":"A","subject":"Math","experience":5,"grade":"10","courses":["c1"]}`)

	teacher, err := DecodeProfile(RoleTeacher, raw)
	require.NoError(t, err)
	assert.Equal(t, TeacherProfile{Name: "A", Subject: "Math", Experience: 5}, teacher)

	student, err := DecodeProfile(RoleStudent, raw)
	require.NoError(t, err)
	assert.Equal(t, StudentProfile{Name: "A", Grade: "10", Courses: []string{"c1"}}, student)
}

func TestDecodeProfile_CourseListNames(t *testing.T) {
	p, err := DecodeProfile(RoleStudent, []byte(`{"name":"Ann","grade":"10","enrolledCourses":["algebra-2","biology"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"algebra-2", "biology"}, p.(StudentProfile).Courses)

	p, err = DecodeProfile(RoleStudent, []byte(`{"name":"Ann","courses":["chemistry"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"chemistry"}, p.(StudentProfile).Courses)

	p, err = DecodeProfile(RoleStudent, []byte(`{"enrolledCourses":["physics"],"courses":["chemistry"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"physics"}, p.(StudentProfile).Courses)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"","grade":"","enrolledCourses":["physics"]}`, string(out))
}

func TestDecodeProfile_Edges(t *testing.T) {
	p, err := DecodeProfile(RoleStudent, nil)
	require.NoError(t, err)
	assert.Equal(t, EmptyProfile(RoleStudent), p)

	p, err = DecodeProfile(RoleStudent, []byte(`{"grade":10.5}`))
	require.NoError(t, err)
	assert.Equal(t, Grade("10.5"), p.(StudentProfile).Grade)

	_, err = DecodeProfile(RoleTeacher, []byte(`{"experience":-2}`))
	assert.Error(t, err)

	_, err = DecodeProfile(RoleStudent, []byte(`{"grade":true}`))
	assert.Error(t, err)
}

func TestUser_JSON(t *testing.T) {
	in := `{"id":"1","email":"a@x.com","role":"student","profile":{"name":"A","grade":"10"},"password":"leak"}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(in), &u))
	assert.Equal(t, StudentProfile{Name: "A", Grade: "10", Courses: []string{}}, u.Profile)

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","email":"a@x.com","role":"student","profile":{"name":"A","grade":"10","enrolledCourses":[]}}`, string(out))
	assert.NotContains(t, string(out), "password")
}

func TestUser_JSON_UnknownRole(t *testing.T) {
	var u User
	assert.Error(t, json.Unmarshal([]byte(`{"id":"1","role":"admin","profile":{}}`), &u))
}

func TestUser_MarshalNilProfile(t *testing.T) {
	out, err := json.Marshal(User{ID: "2", Email: "t@x.com", Role: RoleTeacher})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"2","email":"t@x.com","role":"teacher","profile":{"name":"","subject":"","experience":0}}`, string(out))
}

func TestUserUpdate_JSON(t *testing.T) {
	upd := UserUpdate{Email: "a@x.com", Role: RoleTeacher, Profile: TeacherProfile{Name: "A", Subject: "Art"}}

	out, err := json.Marshal(upd)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@x.com","role":"teacher","profile":{"name":"A","subject":"Art","experience":0}}`, string(out))

	var back UserUpdate
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, upd, back)
}
