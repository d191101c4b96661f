package ui

import (
	"net/http"

	"github.com/me/tijara/pkg/platform"
)

// AuthMiddleware requires a live gateway session. Without one the
// request is redirected to the login page.
func (ui *UI) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ui.hasValidCookie(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware ensures the logged-in user has the admin role.
// Must be used after AuthMiddleware.
func (ui *UI) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := ui.sess.User()
		if user == nil || user.Role != platform.RoleAdmin {
			http.Error(w, "Forbidden: admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
