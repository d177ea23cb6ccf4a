// Package directory implements the user list screen: loading, searching,
// deleting and updating users.
package directory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"edu_portal/internal/client"
	"edu_portal/internal/model"

	"go.uber.org/zap"
)

// ErrClosed is returned once the view has been torn down
var ErrClosed = errors.New("directory view closed")

// API is the part of the client the directory needs
type API interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	UpdateUser(ctx context.Context, id string, upd model.UserUpdate) (model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ConfirmFunc asks the user to confirm an action
type ConfirmFunc func(u model.User) bool

// View holds the user list for one screen. Requests it starts are canceled by
// Close.
type View struct {
	api    API
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	users []model.User
}

func NewView(parent context.Context, api API, logger *zap.Logger) *View {
	ctx, cancel := context.WithCancel(parent)
	return &View{api: api, logger: logger, ctx: ctx, cancel: cancel}
}

// Close cancels in-flight requests
func (v *View) Close() {
	v.cancel()
}

// scope ties a call to both the caller's context and the view's lifetime
func (v *View) scope(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if v.ctx.Err() != nil {
		return nil, nil, ErrClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(v.ctx, cancel)
	return ctx, func() { stop(); cancel() }, nil
}

// Load fetches the full collection and replaces local state
func (v *View) Load(ctx context.Context) error {
	ctx, done, err := v.scope(ctx)
	if err != nil {
		return err
	}
	defer done()

	users, err := v.api.ListUsers(ctx)
	if err != nil {
		v.logger.Debug("load users failed", zap.Error(err))
		return err
	}
	v.mu.Lock()
	v.users = users
	v.mu.Unlock()
	return nil
}

// Users returns a copy of the loaded list
func (v *View) Users() []model.User {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.users)
}

// Visible is the list filtered by the search box
func (v *View) Visible(q string) []model.User {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Filter(v.users, q)
}

// Find returns a loaded user by id
func (v *View) Find(id string) (model.User, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.index(id)
	if i < 0 {
		return model.User{}, false
	}
	return v.users[i], true
}

// Delete removes a user after confirmation. It reports whether a request was
// sent; on failure the local list is left unchanged.
func (v *View) Delete(ctx context.Context, id string, confirm ConfirmFunc) (bool, error) {
	u, ok := v.Find(id)
	if !ok {
		return false, &client.ValidationError{Field: "id", Message: "no such user in the list"}
	}
	if confirm == nil || !confirm(u) {
		return false, nil
	}

	ctx, done, err := v.scope(ctx)
	if err != nil {
		return false, err
	}
	defer done()

	if err := v.api.DeleteUser(ctx, id); err != nil {
		v.logger.Debug("delete user failed", zap.String("user_id", id), zap.Error(err))
		return true, err
	}

	v.mu.Lock()
	if i := v.index(id); i >= 0 {
		v.users = slices.Delete(slices.Clone(v.users), i, i+1)
	}
	v.mu.Unlock()
	return true, nil
}

// Edit loads the canonical record of id and builds an update form for it
func (v *View) Edit(ctx context.Context, id string) (*UpdateForm, error) {
	ctx, done, err := v.scope(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	u, err := v.api.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewUpdateForm(u), nil
}

// Update submits the form and swaps the returned record into local state
func (v *View) Update(ctx context.Context, id string, form *UpdateForm) (model.User, error) {
	payload := form.Payload()
	if payload.Email == "" {
		return model.User{}, &client.ValidationError{Field: "email", Message: "email is required"}
	}
	if !payload.Role.Valid() {
		return model.User{}, &client.ValidationError{Field: "role", Message: "role must be student or teacher"}
	}

	ctx, done, err := v.scope(ctx)
	if err != nil {
		return model.User{}, err
	}
	defer done()

	updated, err := v.api.UpdateUser(ctx, id, payload)
	if err != nil {
		v.logger.Debug("update user failed", zap.String("user_id", id), zap.Error(err))
		return model.User{}, err
	}

	v.mu.Lock()
	if i := v.index(id); i >= 0 {
		users := slices.Clone(v.users)
		users[i] = updated
		v.users = users
	}
	v.mu.Unlock()
	return updated, nil
}

func (v *View) index(id string) int {
	return slices.IndexFunc(v.users, func(u model.User) bool { return u.ID == id })
}
