// Package ui serves the local web frontend: landing page, login and
// registration forms, and the role-specific dashboards, all rendered
// server-side over the platform client.
package ui

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/me/tijara/internal/notify"
	"github.com/me/tijara/internal/session"
	"github.com/me/tijara/pkg/platform"
)

const (
	// CookieName marks a browser that holds the gateway session.
	CookieName = "tijara_session"
	// CookieDuration is the gateway session lifetime.
	CookieDuration = 24 * time.Hour
)

// Config holds UI configuration.
type Config struct {
	Secure bool // Use secure cookies for HTTPS
}

// UI handles the web user interface.
type UI struct {
	sess    *session.Manager
	client  *platform.Client
	bus     *notify.Bus
	logger  *slog.Logger
	secure  bool
	started time.Time

	mu      sync.Mutex
	cookies map[string]time.Time // valid gateway cookie ids and their expiry
}

// New creates the UI handler.
func New(sess *session.Manager, client *platform.Client, bus *notify.Bus, logger *slog.Logger, cfg Config) *UI {
	return &UI{
		sess:    sess,
		client:  client,
		bus:     bus,
		logger:  logger.With("component", "ui"),
		secure:  cfg.Secure,
		started: time.Now(),
		cookies: make(map[string]time.Time),
	}
}

// issueCookie registers a fresh gateway cookie id and sets it on the
// response.
func (ui *UI) issueCookie(w http.ResponseWriter) {
	id := newCookieID()

	ui.mu.Lock()
	ui.cookies[id] = time.Now().Add(CookieDuration)
	ui.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   ui.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(CookieDuration),
	})
}

// clearCookie invalidates the browser's gateway cookie.
func (ui *UI) clearCookie(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil {
		ui.mu.Lock()
		delete(ui.cookies, c.Value)
		ui.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// hasValidCookie reports whether the request carries a live gateway
// cookie and the underlying session is authenticated.
func (ui *UI) hasValidCookie(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}

	ui.mu.Lock()
	exp, ok := ui.cookies[c.Value]
	if ok && time.Now().After(exp) {
		delete(ui.cookies, c.Value)
		ok = false
	}
	ui.mu.Unlock()

	return ok && ui.sess.IsAuthenticated()
}

func newCookieID() string {
	b := make([]byte, 32)
	rand.Read(b)
	return "sess_" + hex.EncodeToString(b)
}
