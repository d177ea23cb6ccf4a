// Package portal implements the screens' flows: signup, login, logout and
// role based navigation.
package portal

import (
	"context"
	"fmt"
	"strings"

	"edu_portal/internal/client"
	"edu_portal/internal/model"
	"edu_portal/internal/session"

	"go.uber.org/zap"
)

// AuthAPI is the part of the API client the auth flows need
type AuthAPI interface {
	Signup(ctx context.Context, req model.SignupRequest) error
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
}

// Auth runs the signup/login/logout flows against one session provider
type Auth struct {
	api      AuthAPI
	sessions *session.Provider
	logger   *zap.Logger
}

func NewAuth(api AuthAPI, sessions *session.Provider, logger *zap.Logger) *Auth {
	return &Auth{api: api, sessions: sessions, logger: logger}
}

// Signup validates the form, registers the account and logs in with it.
// It returns the dashboard path to navigate to.
func (a *Auth) Signup(ctx context.Context, form SignupForm) (string, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validateForm(form); err != nil {
		return "", err
	}

	role := model.Role(form.Role)
	if err := a.api.Signup(ctx, model.SignupRequest{Email: form.Email, Password: form.Password, Role: role}); err != nil {
		a.logger.Debug("signup rejected", zap.String("email", form.Email), zap.Error(err))
		return "", err
	}
	return a.Login(ctx, LoginForm{Email: form.Email, Password: form.Password, Role: form.Role})
}

// Login authenticates, stores the session and returns the dashboard path
func (a *Auth) Login(ctx context.Context, form LoginForm) (string, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validateForm(form); err != nil {
		return "", err
	}

	resp, err := a.api.Login(ctx, model.LoginRequest{Email: form.Email, Password: form.Password, Role: model.Role(form.Role)})
	if err != nil {
		a.logger.Debug("login rejected", zap.String("email", form.Email), zap.Error(err))
		return "", err
	}

	path, err := DashboardPath(resp.Role)
	if err != nil {
		return "", fmt.Errorf("login response: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login response: missing token")
	}
	if err := a.sessions.Set(session.Session{Token: resp.Token, Role: resp.Role}); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	a.logger.Info("logged in", zap.String("role", string(resp.Role)))
	return path, nil
}

// Logout ends the session locally; the server is not contacted
func (a *Auth) Logout() (string, error) {
	if err := a.sessions.Clear(); err != nil {
		return "", err
	}
	return PathLogin, nil
}

// Home returns where a returning user should land
func (a *Auth) Home() string {
	s, ok := a.sessions.Current()
	if !ok {
		return PathLanding
	}
	path, err := DashboardPath(s.Role)
	if err != nil {
		return PathLanding
	}
	return path
}

var _ AuthAPI = (*client.Client)(nil)
