// Package session keeps the authenticated credential and role of the portal
// user. A Provider is created once and passed to every screen that needs it.
package session

import (
	"errors"
	"sync"

	"edu_portal/internal/model"

	"go.uber.org/zap"
)

// Keys under which a session is persisted
const (
	TokenKey = "token"
	RoleKey  = "userRole"
)

// ErrNoSession is returned by stores that hold nothing
var ErrNoSession = errors.New("no session")

// Session is the client-held proof of authentication
type Session struct {
	Token string
	Role  model.Role
}

// Valid reports whether both parts are present and the role is known
func (s Session) Valid() bool {
	return s.Token != "" && s.Role.Valid()
}

// Store persists a session between runs
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// Provider owns the current session
type Provider struct {
	mu      sync.RWMutex
	store   Store
	current Session
	logger  *zap.Logger
}

func NewProvider(store Store, logger *zap.Logger) *Provider {
	return &Provider{store: store, logger: logger}
}

// Init restores the persisted session. A missing session is not an error; a
// corrupt one is discarded.
func (p *Provider) Init() error {
	s, err := p.store.Load()
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	if !s.Valid() {
		p.logger.Warn("discarding persisted session with unknown role", zap.String("role", string(s.Role)))
		return p.store.Clear()
	}
	p.mu.Lock()
	p.current = s
	p.mu.Unlock()
	return nil
}

// Set persists s and makes it current
func (p *Provider) Set(s Session) error {
	if !s.Valid() {
		return errors.New("refusing to store an incomplete session")
	}
	if err := p.store.Save(s); err != nil {
		return err
	}
	p.mu.Lock()
	p.current = s
	p.mu.Unlock()
	return nil
}

// Current returns the active session, if any
func (p *Provider) Current() (Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, p.current.Valid()
}

// Token returns the bearer credential, or "" when logged out
func (p *Provider) Token() string {
	s, _ := p.Current()
	return s.Token
}

// Clear ends the session both in memory and in the store
func (p *Provider) Clear() error {
	p.mu.Lock()
	p.current = Session{}
	p.mu.Unlock()
	return p.store.Clear()
}
