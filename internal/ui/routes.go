package ui

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	// Public routes (no auth required).
	r.Get("/landing", ui.HandleLanding)
	r.Get("/login", ui.HandleLogin)
	r.Post("/login", ui.HandleLoginPost)
	r.Get("/register", ui.HandleRegister)
	r.Post("/register", ui.HandleRegisterPost)
	r.Get("/health", ui.HandleHealth)

	// Protected routes (auth required).
	r.Group(func(r chi.Router) {
		r.Use(ui.AuthMiddleware)

		r.Get("/", ui.HandleHome)
		r.Get("/logout", ui.HandleLogout)

		// Role dashboards.
		r.Get("/merchant", ui.HandleDashboard(RoleVariantMerchant))
		r.Get("/supplier", ui.HandleDashboard(RoleVariantSupplier))
		r.Get("/shipping", ui.HandleDashboard(RoleVariantShipping))
		r.With(ui.AdminMiddleware).Get("/admin", ui.HandleDashboard(RoleVariantAdmin))

		r.Get("/products", ui.HandleProducts)
		r.Get("/shipments", ui.HandleShipments)
		r.Get("/market", ui.HandleMarket)
		r.Get("/notifications", ui.HandleNotifications)
		r.Get("/badge", ui.HandleBadge)
		r.Get("/events", ui.HandleEvents)
	})
}
