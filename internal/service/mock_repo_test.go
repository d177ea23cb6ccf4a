package service

import (
	"context"

	"edu_portal/internal/model"
	"edu_portal/internal/repository"
)

// mockUserRepository is an in-memory UserRepository with injectable errors
type mockUserRepository struct {
	users     map[string]*model.StoredUser
	findErr   error
	createErr error
	updateErr error
	deleteErr error
	deleted   []string
}

func newMockRepo(users ...*model.StoredUser) *mockUserRepository {
	m := &mockUserRepository{users: map[string]*model.StoredUser{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

var _ repository.UserRepository = (*mockUserRepository)(nil)

func (m *mockUserRepository) Create(ctx context.Context, user *model.StoredUser) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.StoredUser, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.StoredUser, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.users[id], nil
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	users := []model.User{}
	for _, u := range m.users {
		users = append(users, u.User)
	}
	return users, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	stored.User = *user
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}
