// Package session owns the client's authentication state: who is logged
// in, the bearer credential, and the side effects of state changes
// (durable persistence, notifications, navigation).
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/me/tijara/internal/authn"
	"github.com/me/tijara/internal/credstore"
	"github.com/me/tijara/internal/notify"
	"github.com/me/tijara/pkg/platform"
)

// Routes used by navigation side effects.
const (
	LandingRoute = "/landing"
	LoginRoute   = "/login"
)

// Navigator is the routing collaborator. Navigation is best-effort:
// errors are swallowed and never fail a session transition.
type Navigator interface {
	NavigateTo(route string) error
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route string) error

// NavigateTo implements Navigator.
func (f NavigatorFunc) NavigateTo(route string) error {
	return f(route)
}

// Options tunes optional Manager behavior.
type Options struct {
	// ValidateOnInit performs a token refresh round-trip during
	// Initialize when persisted credentials are found. When off,
	// persisted credentials are hydrated without a network call.
	ValidateOnInit bool
}

// Manager is the single source of truth for the current session. It has
// exactly two steady states: anonymous (no user, no token) and
// authenticated (both set). User and token are always set and cleared
// together.
type Manager struct {
	store    credstore.Store
	provider authn.Provider
	notifier notify.Notifier
	nav      Navigator
	logger   *slog.Logger
	opts     Options

	mu      sync.Mutex
	user    *platform.User
	token   string
	loading bool
}

// NewManager constructs a session manager from its collaborators. The
// notifier and navigator may be nil; both side effects are then skipped.
func NewManager(store credstore.Store, provider authn.Provider, notifier notify.Notifier, nav Navigator, logger *slog.Logger, opts Options) *Manager {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Manager{
		store:    store,
		provider: provider,
		notifier: notifier,
		nav:      nav,
		logger:   logger.With("component", "session"),
		opts:     opts,
	}
}

// User returns a copy of the current user, or nil when anonymous.
func (m *Manager) User() *platform.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token returns the current bearer token, or empty when anonymous.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// IsAuthenticated reports whether both a user and a token are present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.token != ""
}

// IsLoading reports whether an auth operation is in flight.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// Initialize rehydrates the session from durable storage. Called once
// at process start. With ValidateOnInit set, found credentials are
// additionally validated against the backend via a refresh round-trip;
// a failed validation logs the session out (fail-closed).
func (m *Manager) Initialize(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	token, err := m.store.Get(ctx, credstore.KeyToken)
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			return err
		}
		return nil
	}
	userJSON, err := m.store.Get(ctx, credstore.KeyUser)
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			return err
		}
		// A token without a user is half-persisted state. Drop it so
		// the stale bearer token is not attached to later requests.
		m.logger.Warn("persisted token without user, clearing session")
		m.clear(ctx)
		return nil
	}

	var user platform.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		// Corrupt persisted state: clear it rather than carry half a
		// session.
		m.logger.Warn("corrupt persisted user, clearing session", "error", err)
		m.clear(ctx)
		return nil
	}

	m.mu.Lock()
	m.user = &user
	m.token = token
	m.mu.Unlock()

	m.logger.Debug("session restored", "user", user.Email, "role", user.Role)

	if m.opts.ValidateOnInit {
		if expired, known := tokenExpired(token); known && expired {
			m.logger.Info("persisted token expired")
			m.Logout(ctx)
			return nil
		}
		if err := m.RefreshToken(ctx); err != nil {
			m.logger.Warn("token validation failed", "error", err)
		}
	}
	return nil
}

// Login authenticates and, on success, persists the session and
// navigates to the dashboard for the user's role.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.setLoading(true)
	defer m.setLoading(false)

	res, err := m.provider.Login(ctx, platform.Credentials{Email: email, Password: password})
	if err != nil {
		m.notifier.Error(failureMessage(err, "login failed"))
		return err
	}

	m.adopt(ctx, res)
	m.notifier.Success("Welcome " + res.User.Name + "!")
	m.navigate(res.User.Role.DashboardRoute())
	return nil
}

// Register creates an account and, on success, persists the session.
// Unlike Login it does not navigate; the caller decides where to go
// (typically straight to a login or onboarding flow).
func (m *Manager) Register(ctx context.Context, reg platform.Registration) error {
	m.setLoading(true)
	defer m.setLoading(false)

	res, err := m.provider.Register(ctx, reg)
	if err != nil {
		m.notifier.Error(failureMessage(err, "registration failed"))
		return err
	}

	m.adopt(ctx, res)
	m.notifier.Success("Welcome " + res.User.Name + "! Your account has been created")
	return nil
}

// Logout unconditionally clears the session and durable storage, then
// navigates to the public landing page. It never fails: storage and
// navigation errors are logged and swallowed, and logging out while
// anonymous is a no-op apart from the navigation.
func (m *Manager) Logout(ctx context.Context) {
	m.clear(ctx)
	m.navigate(LandingRoute)
}

// UpdateUser shallow-merges the given fields into the current user and
// re-persists the merged record. The token is untouched. A no-op when
// anonymous.
func (m *Manager) UpdateUser(ctx context.Context, patch platform.UserPatch) error {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return nil
	}
	patch.Apply(m.user)
	user := *m.user
	m.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, credstore.KeyUser, string(data))
}

// RefreshToken obtains a replacement token. Any failure logs the
// session out (fail-closed). A no-op when anonymous.
func (m *Manager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	hasToken := m.token != ""
	m.mu.Unlock()
	if !hasToken {
		return nil
	}

	res, err := m.provider.Refresh(ctx)
	if err != nil {
		m.logger.Warn("token refresh failed, logging out", "error", err)
		m.Logout(ctx)
		return err
	}

	m.mu.Lock()
	m.token = res.Token
	if res.User.ID != "" {
		m.user = &res.User
	}
	user := m.user
	m.mu.Unlock()

	if err := m.store.Set(ctx, credstore.KeyToken, res.Token); err != nil {
		m.logger.Warn("persist refreshed token failed", "error", err)
	}
	if user != nil {
		if data, err := json.Marshal(user); err == nil {
			if err := m.store.Set(ctx, credstore.KeyUser, string(data)); err != nil {
				m.logger.Warn("persist user failed", "error", err)
			}
		}
	}
	return nil
}

// HandleUnauthorized is the session-expired reaction to a 401 observed
// on any backend call. Wire it as the platform client's Unauthorized
// hook: the transport classifies, the session manager owns the state
// transition.
func (m *Manager) HandleUnauthorized() {
	m.clear(context.Background())
	m.notifier.Error("Your session has expired, please log in again")
	m.navigate(LoginRoute)
}

// adopt installs an auth result as the current session and persists it.
func (m *Manager) adopt(ctx context.Context, res *platform.AuthResult) {
	m.mu.Lock()
	user := res.User
	m.user = &user
	m.token = res.Token
	m.mu.Unlock()

	if err := m.store.Set(ctx, credstore.KeyToken, res.Token); err != nil {
		m.logger.Warn("persist token failed", "error", err)
	}
	if data, err := json.Marshal(res.User); err == nil {
		if err := m.store.Set(ctx, credstore.KeyUser, string(data)); err != nil {
			m.logger.Warn("persist user failed", "error", err)
		}
	}
}

// clear wipes in-memory state and durable storage.
func (m *Manager) clear(ctx context.Context) {
	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.mu.Unlock()

	if err := m.store.Delete(ctx, credstore.KeyToken); err != nil {
		m.logger.Warn("delete token failed", "error", err)
	}
	if err := m.store.Delete(ctx, credstore.KeyUser); err != nil {
		m.logger.Warn("delete user failed", "error", err)
	}
}

// navigate issues a best-effort navigation side effect.
func (m *Manager) navigate(route string) {
	if m.nav == nil {
		return
	}
	if err := m.nav.NavigateTo(route); err != nil {
		m.logger.Debug("navigation failed", "route", route, "error", err)
	}
}

// failureMessage picks the user-facing message for a failed operation:
// the collaborator's message when present, else the fallback.
func failureMessage(err error, fallback string) string {
	var e *platform.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
