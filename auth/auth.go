// Package auth guards the portfolio's admin actions behind a single password.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/Nemesis62542/nemesis-portfolio/content"
)

const (
	// DefaultPassword is seeded the first time a Gate is created.
	DefaultPassword = "admin"
	// MinPasswordLength is the shortest accepted new password, in characters.
	MinPasswordLength = 6

	hashKey = "password_hash"
)

var (
	// ErrIncorrectPassword is returned when the current password does not match.
	ErrIncorrectPassword = errors.New("auth: current password is not correct")
	// ErrPasswordTooShort is returned for new passwords below MinPasswordLength.
	ErrPasswordTooShort = fmt.Errorf("auth: password must be at least %d characters", MinPasswordLength)
)

// SettingStore persists the password hash. GetSetting reports a missing key
// with content.ErrNotFound.
type SettingStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
}

// Option configures New.
type Option func(*Gate)

// WithCost sets the bcrypt cost for new hashes.
func WithCost(cost int) Option {
	return func(g *Gate) {
		g.cost = cost
	}
}

// WithLogger sets the logger for failed attempts.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Gate holds the session state for one admin session. It is safe for
// concurrent use.
type Gate struct {
	settings SettingStore
	cost     int
	logger   *slog.Logger

	mu            sync.Mutex
	authenticated bool
}

// New returns a logged-out Gate, storing the hash of DefaultPassword if no
// password has been set yet.
func New(ctx context.Context, settings SettingStore, opts ...Option) (*Gate, error) {
	if settings == nil {
		return nil, errors.New("auth: nil setting store")
	}
	g := &Gate{settings: settings, cost: bcrypt.DefaultCost, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	_, err := settings.GetSetting(ctx, hashKey)
	switch {
	case errors.Is(err, content.ErrNotFound):
		if err := g.store(ctx, DefaultPassword); err != nil {
			return nil, err
		}
		g.logger.Info("seeded default admin password")
	case err != nil:
		return nil, fmt.Errorf("reading password hash: %w", err)
	}
	return g, nil
}

// Login starts a session if password matches. A wrong password is not an
// error.
func (g *Gate) Login(ctx context.Context, password string) (bool, error) {
	ok, err := g.matches(ctx, password)
	if err != nil {
		return false, err
	}
	if !ok {
		g.logger.Debug("login rejected")
		return false, nil
	}
	g.mu.Lock()
	g.authenticated = true
	g.mu.Unlock()
	return true, nil
}

// Logout ends the session.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.authenticated = false
	g.mu.Unlock()
}

// IsAuthenticated reports whether Login has succeeded since the last Logout.
func (g *Gate) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}

// ChangePassword replaces the password after checking the current one.
func (g *Gate) ChangePassword(ctx context.Context, current, next string) error {
	if utf8.RuneCountInString(next) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	ok, err := g.matches(ctx, current)
	if err != nil {
		return err
	}
	if !ok {
		return ErrIncorrectPassword
	}
	return g.store(ctx, next)
}

func (g *Gate) matches(ctx context.Context, password string) (bool, error) {
	hash, err := g.settings.GetSetting(ctx, hashKey)
	if err != nil {
		return false, fmt.Errorf("reading password hash: %w", err)
	}
	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking password: %w", err)
	}
	return true, nil
}

func (g *Gate) store(ctx context.Context, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return g.settings.PutSetting(ctx, hashKey, string(hash))
}
