package http

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/modaflow/backend/internal/domain/user"
	"github.com/modaflow/backend/internal/middleware"
	"github.com/modaflow/backend/internal/port/idempotency"
)

// MountRoutes registers all API routes on the given chi router. The
// router is expected to already carry the auth middleware, so
// UserFromContext works everywhere; role gates below only restrict the
// management surface. Storefront reads and checkout stay public.
func MountRoutes(r chi.Router, h *Handlers, idemStore idempotency.Store, idemTTL time.Duration) {
	r.Get("/health", h.Health)
	r.Get("/health/ready", h.Ready)

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/auth/login", h.Login)
		r.Get("/auth/me", h.GetCurrentUser)

		// Users (admin only)
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleAdmin))
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
		})

		// Tenants: reads are public storefront surface, mutations are
		// management surface.
		r.Get("/tenants", h.ListTenants)
		r.Get("/tenants/slug/{slug}", h.GetTenantBySlug)
		r.Get("/tenants/{id}", h.GetTenant)
		r.Get("/tenants/{id}/products", h.ListTenantProducts)
		r.With(middleware.RequireRole(user.RoleAdmin)).
			Post("/tenants", h.CreateTenant)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLojista)).
			Put("/tenants/{id}", h.UpdateTenant)
		r.With(middleware.RequireRole(user.RoleAdmin)).
			Delete("/tenants/{id}", h.DeleteTenant)

		// Products
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLojista)).
			Post("/products", h.CreateProduct)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLojista)).
			Put("/products/{id}", h.UpdateProduct)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLojista)).
			Delete("/products/{id}", h.DeleteProduct)

		// Orders. Checkout is public and deduplicated by idempotency key
		// when the client supplies one.
		if idemStore != nil {
			r.With(middleware.Idempotency(idemStore, idemTTL)).
				Post("/orders", h.CreateOrder)
		} else {
			r.Post("/orders", h.CreateOrder)
		}
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLojista)).
			Get("/orders", h.ListOrders)
		r.Get("/orders/{id}", h.GetOrder)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLojista)).
			Get("/tenants/{id}/orders", h.ListTenantOrders)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLojista)).
			Patch("/orders/{id}/status", h.UpdateOrderStatus)
		r.With(middleware.RequireRole(user.RoleAdmin)).
			Delete("/orders/{id}", h.DeleteOrder)

		// AI copy generation (management surface)
		r.Route("/ai", func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleAdmin, user.RoleLojista))
			r.Post("/product-description", h.GenerateProductDescription)
			r.Post("/seo-keywords", h.GenerateSEOKeywords)
			r.Post("/category-description", h.GenerateCategoryDescription)
		})
	})

	// Live order feed for the management dashboard.
	r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLojista)).
		Get("/ws/orders", h.OrderFeed)
}
