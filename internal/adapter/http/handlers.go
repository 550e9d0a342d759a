package http

import (
	"context"
	"net/http"

	"github.com/modaflow/backend/internal/adapter/ws"
	"github.com/modaflow/backend/internal/service"
)

// Pinger reports backing-store liveness for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers bundles the services the REST API exposes.
type Handlers struct {
	tenants *service.TenantService
	catalog *service.CatalogService
	orders  *service.OrderService
	auth    *service.AuthService
	copy    *service.CopyService
	hub     *ws.Hub
	db      Pinger
}

// NewHandlers creates the handler set. hub may be nil when the live
// order feed is disabled.
func NewHandlers(
	tenants *service.TenantService,
	catalog *service.CatalogService,
	orders *service.OrderService,
	auth *service.AuthService,
	copySvc *service.CopyService,
	hub *ws.Hub,
	db Pinger,
) *Handlers {
	return &Handlers{
		tenants: tenants,
		catalog: catalog,
		orders:  orders,
		auth:    auth,
		copy:    copySvc,
		hub:     hub,
		db:      db,
	}
}

// Health reports process liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports readiness, including database connectivity.
func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
