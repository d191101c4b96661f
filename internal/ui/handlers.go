package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/me/tijara/pkg/platform"
)

// RoleVariant selects the header styling and navigation links for a
// dashboard. One configurable header component serves every role.
type RoleVariant string

const (
	RoleVariantMerchant RoleVariant = "merchant"
	RoleVariantSupplier RoleVariant = "supplier"
	RoleVariantShipping RoleVariant = "shipping"
	RoleVariantAdmin    RoleVariant = "admin"
)

// headerFor returns the header configuration for a variant.
func headerFor(v RoleVariant) Header {
	switch v {
	case RoleVariantSupplier:
		return Header{
			Variant: v,
			Accent:  "#0d9488",
			Title:   "Supplier Console",
			Links: []NavLink{
				{Href: "/supplier", Label: "Dashboard"},
				{Href: "/products", Label: "Products"},
				{Href: "/market", Label: "Marketplace"},
				{Href: "/shipments", Label: "Shipments"},
			},
		}
	case RoleVariantShipping:
		return Header{
			Variant: v,
			Accent:  "#ea580c",
			Title:   "Shipping Console",
			Links: []NavLink{
				{Href: "/shipping", Label: "Dashboard"},
				{Href: "/shipments", Label: "Shipments"},
				{Href: "/market", Label: "Marketplace"},
			},
		}
	case RoleVariantAdmin:
		return Header{
			Variant: v,
			Accent:  "#7c3aed",
			Title:   "Admin Console",
			Links: []NavLink{
				{Href: "/admin", Label: "Dashboard"},
				{Href: "/products", Label: "Products"},
				{Href: "/shipments", Label: "Shipments"},
				{Href: "/market", Label: "Marketplace"},
			},
		}
	default:
		return Header{
			Variant: RoleVariantMerchant,
			Accent:  "#2563eb",
			Title:   "Merchant Console",
			Links: []NavLink{
				{Href: "/merchant", Label: "Dashboard"},
				{Href: "/market", Label: "Marketplace"},
				{Href: "/shipments", Label: "Shipments"},
			},
		}
	}
}

// HandleLanding renders the public landing page.
func (ui *UI) HandleLanding(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":      "Tijara - B2B Commerce Platform",
		"Registered": r.URL.Query().Get("registered") == "1",
	}
	ui.render(w, "landing", data)
}

// HandleLogin renders the login page.
func (ui *UI) HandleLogin(w http.ResponseWriter, r *http.Request) {
	// Already logged in: straight to the dashboard.
	if ui.hasValidCookie(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title": "Login - Tijara",
		"Error": r.URL.Query().Get("error"),
		"Email": r.URL.Query().Get("email"),
	}
	ui.render(w, "login", data)
}

// HandleLoginPost processes the login form.
func (ui *UI) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?error=Invalid+request", http.StatusSeeOther)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		http.Redirect(w, r, "/login?error=Email+and+password+required", http.StatusSeeOther)
		return
	}

	if err := ui.sess.Login(r.Context(), email, password); err != nil {
		ui.logger.Warn("login failed", "email", email, "error", err)
		http.Redirect(w, r, "/login?error="+url.QueryEscape(loginError(err)), http.StatusSeeOther)
		return
	}

	ui.issueCookie(w)

	user := ui.sess.User()
	ui.logger.Info("user logged in", "email", user.Email, "role", user.Role)
	http.Redirect(w, r, user.Role.DashboardRoute(), http.StatusSeeOther)
}

// HandleRegister renders the registration page.
func (ui *UI) HandleRegister(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title": "Register - Tijara",
		"Error": r.URL.Query().Get("error"),
	}
	ui.render(w, "register", data)
}

// HandleRegisterPost processes the registration form. On success the
// browser returns to the landing page; there is no automatic dashboard
// navigation after registration.
func (ui *UI) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/register?error=Invalid+request", http.StatusSeeOther)
		return
	}

	reg := platform.Registration{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		Password:    r.FormValue("password"),
		Role:        platform.Role(r.FormValue("role")),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		CompanyName: strings.TrimSpace(r.FormValue("company")),
	}

	if err := ui.sess.Register(r.Context(), reg); err != nil {
		ui.logger.Warn("registration failed", "email", reg.Email, "error", err)
		http.Redirect(w, r, "/register?error="+url.QueryEscape(loginError(err)), http.StatusSeeOther)
		return
	}

	ui.issueCookie(w)
	http.Redirect(w, r, "/landing?registered=1", http.StatusSeeOther)
}

// HandleHome redirects to the dashboard matching the user's role.
func (ui *UI) HandleHome(w http.ResponseWriter, r *http.Request) {
	user := ui.sess.User()
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, user.Role.DashboardRoute(), http.StatusSeeOther)
}

// HandleLogout clears the session and returns to the landing page.
func (ui *UI) HandleLogout(w http.ResponseWriter, r *http.Request) {
	user := ui.sess.User()
	ui.sess.Logout(r.Context())
	ui.clearCookie(w, r)
	if user != nil {
		ui.logger.Info("user logged out", "email", user.Email)
	}
	http.Redirect(w, r, "/landing", http.StatusSeeOther)
}

// HandleDashboard renders the dashboard for a role variant.
func (ui *UI) HandleDashboard(variant RoleVariant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ui.sess.User()

		// Stats are best-effort; the dashboard renders without them.
		stats, err := ui.client.GetDashboardStats(r.Context())
		if err != nil {
			ui.logger.Debug("dashboard stats unavailable", "error", err)
			stats = &platform.DashboardStats{}
		}

		data := map[string]any{
			"Title":  "Dashboard - Tijara",
			"Header": headerFor(variant),
			"User":   user,
			"Stats":  stats,
		}
		ui.render(w, "dashboard", data)
	}
}

// HandleProducts renders the product listing.
func (ui *UI) HandleProducts(w http.ResponseWriter, r *http.Request) {
	page, err := ui.client.ListProducts(r.Context(), platform.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	})
	if err != nil {
		ui.renderError(w, "Failed to load products", err)
		return
	}

	data := map[string]any{
		"Title":    "Products - Tijara",
		"Header":   ui.headerForUser(),
		"User":     ui.sess.User(),
		"Products": page.Products,
		"Total":    page.Total,
	}
	ui.render(w, "products", data)
}

// HandleShipments renders the shipment listing.
func (ui *UI) HandleShipments(w http.ResponseWriter, r *http.Request) {
	page, err := ui.client.ListShipments(r.Context(), platform.ShipmentFilter{
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		ui.renderError(w, "Failed to load shipments", err)
		return
	}

	data := map[string]any{
		"Title":     "Shipments - Tijara",
		"Header":    ui.headerForUser(),
		"User":      ui.sess.User(),
		"Shipments": page.Shipments,
		"Total":     page.Total,
	}
	ui.render(w, "shipments", data)
}

// HandleMarket renders the marketplace overview. Listing reads are
// best-effort; empty sections render as empty.
func (ui *UI) HandleMarket(w http.ResponseWriter, r *http.Request) {
	filter := platform.MarketplaceFilter{Category: r.URL.Query().Get("category")}

	data := map[string]any{
		"Title":       "Marketplace - Tijara",
		"Header":      ui.headerForUser(),
		"User":        ui.sess.User(),
		"Offers":      ui.client.ListSupplierOffers(r.Context(), filter),
		"Requests":    ui.client.ListMerchantRequests(r.Context(), filter),
		"Services":    ui.client.ListShippingServices(r.Context(), filter),
		"Exhibitions": ui.client.ListExhibitions(r.Context(), filter),
	}
	ui.render(w, "market", data)
}

// HandleNotifications renders the notifications panel and broadcasts
// the fresh unread count to the event bus.
func (ui *UI) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	items, unread, err := ui.client.ListNotifications(r.Context())
	if err != nil {
		ui.renderError(w, "Failed to load notifications", err)
		return
	}

	ui.bus.PublishUnread(unread)

	data := map[string]any{
		"Title":         "Notifications - Tijara",
		"Header":        ui.headerForUser(),
		"User":          ui.sess.User(),
		"Notifications": items,
		"Unread":        unread,
	}
	ui.render(w, "notifications", data)
}

// HandleBadge returns the unread notification count as JSON. The header
// polls it to keep the badge current; the count is also broadcast on
// the event bus.
func (ui *UI) HandleBadge(w http.ResponseWriter, r *http.Request) {
	_, unread, err := ui.client.ListNotifications(r.Context())
	if err != nil {
		unread = 0
	}

	ui.bus.PublishUnread(unread)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"unreadCount": unread})
}

// HandleEvents streams bus events (badge updates, panel-open requests)
// as server-sent events.
func (ui *UI) HandleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := ui.bus.Subscribe()
	defer cancel()
	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			payload, _ := json.Marshal(ev)
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, payload)
			flusher.Flush()
		}
	}
}

// HandleHealth proxies the backend health probe.
func (ui *UI) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status, err := ui.client.Health(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"status": "unreachable"})
		return
	}
	json.NewEncoder(w).Encode(status)
}

// headerForUser picks the header variant from the logged-in user's role.
func (ui *UI) headerForUser() Header {
	user := ui.sess.User()
	if user == nil {
		return headerFor(RoleVariantMerchant)
	}
	switch user.Role {
	case platform.RoleSupplier:
		return headerFor(RoleVariantSupplier)
	case platform.RoleShippingCompany:
		return headerFor(RoleVariantShipping)
	case platform.RoleAdmin:
		return headerFor(RoleVariantAdmin)
	default:
		return headerFor(RoleVariantMerchant)
	}
}

// loginError extracts a user-presentable message from an auth failure.
func loginError(err error) string {
	var e *platform.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Invalid credentials"
}
