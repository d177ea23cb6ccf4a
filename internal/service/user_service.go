package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"edu_portal/internal/model"
	"edu_portal/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrForbidden     = errors.New("forbidden: user does not have permission for this action")
	ErrInvalidUpdate = errors.New("invalid user update")
	ErrUnknownActor  = errors.New("acting user no longer exists")
)

// Actor is the authenticated caller of a user operation. Role comes from the
// token and is only a hint; writes re-read the caller's stored role.
type Actor struct {
	UserID string
	Role   model.Role
}

// may reports whether the actor can modify the target account
func (a Actor) may(targetID string) bool {
	return a.Role == model.RoleTeacher || a.UserID == targetID
}

// UserService defines operations on the user directory
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateUser(ctx context.Context, actor Actor, id string, req model.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, actor Actor, id string) error
}

type userService struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users from repo: %w", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &user.User, nil
}

// UpdateUser replaces email, role and profile. The profile is coerced into
// the shape of the submitted role before it is stored.
func (s *userService) UpdateUser(ctx context.Context, actor Actor, id string, req model.UserUpdate) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidUpdate, req.Role)
	}
	email := normalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidUpdate)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}
	actor, err = s.resolveActor(ctx, actor, existing)
	if err != nil {
		return nil, err
	}
	if !actor.may(id) {
		return nil, ErrForbidden
	}
	if req.Role != existing.Role && actor.Role != model.RoleTeacher {
		return nil, ErrForbidden
	}

	profile := coerceProfile(req.Role, req.Profile)
	updated := &model.User{
		ID:      id,
		Email:   email,
		Role:    req.Role,
		Profile: profile,
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrUserAlreadyExists
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user in repo: %w", err)
	}

	if existing.Role != updated.Role {
		s.logger.Info("user role changed",
			zap.String("user_id", id),
			zap.String("from", string(existing.Role)),
			zap.String("to", string(updated.Role)),
		)
	}
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find user for deletion: %w", err)
	}
	if existing == nil {
		return ErrUserNotFound
	}
	actor, err = s.resolveActor(ctx, actor, existing)
	if err != nil {
		return err
	}
	if !actor.may(id) {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user in repo: %w", err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("by", actor.UserID))
	return nil
}

// resolveActor replaces the token's role with the caller's stored role.
// target is reused when the caller acts on their own record.
func (s *userService) resolveActor(ctx context.Context, actor Actor, target *model.StoredUser) (Actor, error) {
	self := target
	if actor.UserID != target.ID {
		var err error
		self, err = s.repo.FindByID(ctx, actor.UserID)
		if err != nil {
			return Actor{}, fmt.Errorf("failed to find acting user: %w", err)
		}
		if self == nil {
			return Actor{}, ErrUnknownActor
		}
	}
	if self.Role != actor.Role {
		s.logger.Warn("token role differs from stored role",
			zap.String("user_id", actor.UserID),
			zap.String("token_role", string(actor.Role)),
			zap.String("stored_role", string(self.Role)),
		)
	}
	return Actor{UserID: actor.UserID, Role: self.Role}, nil
}

// coerceProfile keeps p when it already has role's shape and otherwise
// carries over only the name into an empty profile of the right shape.
func coerceProfile(role model.Role, p model.Profile) model.Profile {
	if p != nil && p.Role() == role {
		if sp, ok := p.(model.StudentProfile); ok && sp.Courses == nil {
			sp.Courses = []string{}
			return sp
		}
		return p
	}
	name := model.ProfileName(p)
	switch role {
	case model.RoleTeacher:
		return model.TeacherProfile{Name: name}
	case model.RoleStudent:
		return model.StudentProfile{Name: name, Courses: []string{}}
	}
	return nil
}
