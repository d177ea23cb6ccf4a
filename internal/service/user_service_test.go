package service

import (
	"context"
	"errors"
	"testing"

	"edu_portal/internal/model"
	"edu_portal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedUsers() []*model.StoredUser {
	return []*model.StoredUser{
		{User: model.User{ID: "t1", Email: "t@x.com", Role: model.RoleTeacher,
			Profile: model.TeacherProfile{Name: "Tess", Subject: "Math", Experience: 4}}},
		{User: model.User{ID: "s1", Email: "s@x.com", Role: model.RoleStudent,
			Profile: model.StudentProfile{Name: "Sam", Grade: "10", Courses: []string{"c1"}}}},
		{User: model.User{ID: "s2", Email: "s2@x.com", Role: model.RoleStudent,
			Profile: model.StudentProfile{Name: "Sue", Grade: "9", Courses: []string{}}}},
	}
}

func TestUserService_GetUser(t *testing.T) {
	svc := NewUserService(newMockRepo(seedUsers()...), zap.NewNop())

	user, err := svc.GetUser(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s@x.com", user.Email)

	_, err = svc.GetUser(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	svc := NewUserService(newMockRepo(seedUsers()...), zap.NewNop())

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestUserService_UpdateUser(t *testing.T) {
	student := Actor{UserID: "s1", Role: model.RoleStudent}
	teacher := Actor{UserID: "t1", Role: model.RoleTeacher}

	tests := []struct {
		name    string
		actor   Actor
		id      string
		req     model.UserUpdate
		repoErr error
		wantErr error
		want    model.Profile
	}{
		{
			name:  "self update",
			actor: student,
			id:    "s1",
			req:   model.UserUpdate{Email: "S@x.com", Role: model.RoleStudent, Profile: model.StudentProfile{Name: "Sam", Grade: "11"}},
			want:  model.StudentProfile{Name: "Sam", Grade: "11", Courses: []string{}},
		},
		{
			name:  "teacher switches student to teacher",
			actor: teacher,
			id:    "s2",
			req:   model.UserUpdate{Email: "s2@x.com", Role: model.RoleTeacher, Profile: model.StudentProfile{Name: "Sue", Grade: "9"}},
			want:  model.TeacherProfile{Name: "Sue"},
		},
		{
			name:    "student edits someone else",
			actor:   student,
			id:      "s2",
			req:     model.UserUpdate{Email: "s2@x.com", Role: model.RoleStudent},
			wantErr: ErrForbidden,
		},
		{
			name:    "student changes own role",
			actor:   student,
			id:      "s1",
			req:     model.UserUpdate{Email: "s@x.com", Role: model.RoleTeacher, Profile: model.TeacherProfile{Name: "Sam"}},
			wantErr: ErrForbidden,
		},
		{
			name:    "token claims teacher but stored role is student",
			actor:   Actor{UserID: "s1", Role: model.RoleTeacher},
			id:      "s2",
			req:     model.UserUpdate{Email: "s2@x.com", Role: model.RoleStudent},
			wantErr: ErrForbidden,
		},
		{
			name:    "acting user was deleted",
			actor:   Actor{UserID: "gone", Role: model.RoleTeacher},
			id:      "s2",
			req:     model.UserUpdate{Email: "s2@x.com", Role: model.RoleStudent},
			wantErr: ErrUnknownActor,
		},
		{
			name:  "teacher demotes self",
			actor: teacher,
			id:    "t1",
			req:   model.UserUpdate{Email: "t@x.com", Role: model.RoleStudent, Profile: model.TeacherProfile{Name: "Tess"}},
			want:  model.StudentProfile{Name: "Tess", Courses: []string{}},
		},
		{
			name:    "unknown user",
			actor:   teacher,
			id:      "zz",
			req:     model.UserUpdate{Email: "z@x.com", Role: model.RoleStudent},
			wantErr: ErrUserNotFound,
		},
		{
			name:    "bad role",
			actor:   teacher,
			id:      "s1",
			req:     model.UserUpdate{Email: "s@x.com", Role: "admin"},
			wantErr: ErrInvalidUpdate,
		},
		{
			name:    "bad email",
			actor:   teacher,
			id:      "s1",
			req:     model.UserUpdate{Email: "not-an-email", Role: model.RoleStudent},
			wantErr: ErrInvalidUpdate,
		},
		{
			name:    "email taken",
			actor:   teacher,
			id:      "s1",
			req:     model.UserUpdate{Email: "t@x.com", Role: model.RoleStudent},
			repoErr: repository.ErrDuplicateEmail,
			wantErr: ErrUserAlreadyExists,
		},
		{
			name:    "record removed before write",
			actor:   teacher,
			id:      "s1",
			req:     model.UserUpdate{Email: "s@x.com", Role: model.RoleStudent},
			repoErr: repository.ErrUserNotFound,
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepo(seedUsers()...)
			repo.updateErr = tt.repoErr
			svc := NewUserService(repo, zap.NewNop())

			user, err := svc.UpdateUser(context.Background(), tt.actor, tt.id, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Role, user.Role)
			assert.Equal(t, tt.want, user.Profile)
			assert.Equal(t, tt.want, repo.users[tt.id].Profile)
		})
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	repo := newMockRepo(seedUsers()...)
	svc := NewUserService(repo, zap.NewNop())
	ctx := context.Background()

	err := svc.DeleteUser(ctx, Actor{UserID: "s1", Role: model.RoleStudent}, "s2")
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeleteUser(ctx, Actor{UserID: "t1", Role: model.RoleTeacher}, "s2"))
	assert.Equal(t, []string{"s2"}, repo.deleted)

	err = svc.DeleteUser(ctx, Actor{UserID: "t1", Role: model.RoleTeacher}, "s2")
	assert.ErrorIs(t, err, ErrUserNotFound)

	repo.deleteErr = errors.New("db down")
	assert.Error(t, svc.DeleteUser(ctx, Actor{UserID: "s1", Role: model.RoleStudent}, "s1"))

	repo.deleteErr = repository.ErrUserNotFound
	err = svc.DeleteUser(ctx, Actor{UserID: "t1", Role: model.RoleTeacher}, "s1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_RoleChangeDoesNotEscalate(t *testing.T) {
	repo := newMockRepo(seedUsers()...)
	svc := NewUserService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.UpdateUser(ctx, Actor{UserID: "s1", Role: model.RoleStudent}, "s1",
		model.UserUpdate{Email: "s@x.com", Role: model.RoleTeacher})
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, model.RoleStudent, repo.users["s1"].Role)

	// the stored role decides, whatever the token claims
	err = svc.DeleteUser(ctx, Actor{UserID: "s1", Role: model.RoleTeacher}, "t1")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Contains(t, repo.users, "t1")
}

func TestUserService_DemotedTeacherLosesRights(t *testing.T) {
	repo := newMockRepo(seedUsers()...)
	svc := NewUserService(repo, zap.NewNop())
	ctx := context.Background()
	teacher := Actor{UserID: "t1", Role: model.RoleTeacher}

	_, err := svc.UpdateUser(ctx, teacher, "t1", model.UserUpdate{Email: "t@x.com", Role: model.RoleStudent})
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, teacher, "s2")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Contains(t, repo.users, "s2")
}
