// Package session manages the client-side identity: the persisted token pair
// and the current-user lookups built on it.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KativuCraig/manymor-frontend/internal/gateway"
	"github.com/KativuCraig/manymor-frontend/pkg/kvstore"
	"github.com/KativuCraig/manymor-frontend/pkg/logger"
)

// Keys of the persisted token pair.
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
)

// ErrNotAuthenticated is returned when an operation requires a logged-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// Manager holds the token pair in the client key-value store. It implements
// gateway.TokenProvider.
type Manager struct {
	store  kvstore.Store
	parser *jwt.Parser
}

// NewManager creates a session manager over the given store.
func NewManager(store kvstore.Store) *Manager {
	return &Manager{store: store, parser: jwt.NewParser()}
}

// SetTokens persists the issued token pair.
func (m *Manager) SetTokens(ctx context.Context, access, refresh string) error {
	if err := m.store.Set(ctx, AccessTokenKey, access); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if err := m.store.Set(ctx, RefreshTokenKey, refresh); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// AccessToken returns the stored access token, if any.
func (m *Manager) AccessToken(ctx context.Context) (string, bool) {
	token, err := m.store.Get(ctx, AccessTokenKey)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Clear drops the persisted token pair.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, AccessTokenKey); err != nil {
		return err
	}
	return m.store.Delete(ctx, RefreshTokenKey)
}

// IsAuthenticated reports whether a usable access token is present. The token
// signature is the gateway's concern; only the expiry claim is inspected here,
// without verification.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	token, ok := m.AccessToken(ctx)
	if !ok {
		return false
	}
	return !m.expired(token)
}

func (m *Manager) expired(token string) bool {
	parsed, _, err := m.parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		// Opaque tokens carry no expiry the client can read.
		return false
	}
	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.Before(time.Now())
}

// AuthGateway is the slice of the gateway client the session service uses.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*gateway.AuthResponse, error)
	Register(ctx context.Context, email, password, phone string) (*gateway.AuthResponse, error)
	CurrentUser(ctx context.Context) (*gateway.User, error)
}

// Service drives login, registration and the current-user lookup.
type Service struct {
	gw      AuthGateway
	manager *Manager
}

// NewService creates a session service.
func NewService(gw AuthGateway, manager *Manager) *Service {
	return &Service{gw: gw, manager: manager}
}

// Login authenticates against the gateway and persists the token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*gateway.User, error) {
	resp, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if err := s.manager.SetTokens(ctx, resp.Access, resp.Refresh); err != nil {
		return nil, err
	}

	logger.Info(ctx).Uint("user_id", resp.User.ID).Str("role", resp.User.Role).Msg("User logged in")
	return &resp.User, nil
}

// Register creates an account and persists the issued token pair.
func (s *Service) Register(ctx context.Context, email, password, phone string) (*gateway.User, error) {
	resp, err := s.gw.Register(ctx, email, password, phone)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	if err := s.manager.SetTokens(ctx, resp.Access, resp.Refresh); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout drops the persisted session.
func (s *Service) Logout(ctx context.Context) error {
	return s.manager.Clear(ctx)
}

// CurrentUser fetches the authenticated user from the gateway.
func (s *Service) CurrentUser(ctx context.Context) (*gateway.User, error) {
	if !s.manager.IsAuthenticated(ctx) {
		return nil, ErrNotAuthenticated
	}
	return s.gw.CurrentUser(ctx)
}
