package http

import (
	"net/http"

	"github.com/modaflow/backend/internal/domain/order"
	"github.com/modaflow/backend/internal/middleware"
)

// checkoutResponse pairs the persisted order with its confirmation
// artifact (WhatsApp deep link or PIX instructions).
type checkoutResponse struct {
	Order        *order.Order        `json:"order"`
	Confirmation *order.Confirmation `json:"confirmation"`
}

// CreateOrder runs checkout. It is public: customers place bulk
// requests without an account.
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[order.CreateRequest](w, r)
	if !ok {
		return
	}

	o, conf, err := h.orders.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusCreated, checkoutResponse{Order: o, Confirmation: conf})
}

// ListOrders returns the orders visible to the caller.
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	os, err := h.orders.List(r.Context(), middleware.UserFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err, "orders not found")
		return
	}
	writeJSON(w, http.StatusOK, os)
}

// ListTenantOrders returns a storefront's orders.
func (h *Handlers) ListTenantOrders(w http.ResponseWriter, r *http.Request) {
	os, err := h.orders.ListByTenant(r.Context(), middleware.UserFromContext(r.Context()), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "orders not found")
		return
	}
	writeJSON(w, http.StatusOK, os)
}

// GetOrder returns a single order.
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), middleware.UserFromContext(r.Context()), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

type updateStatusRequest struct {
	Status order.Status `json:"status"`
}

// UpdateOrderStatus sets an order's lifecycle status.
func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[updateStatusRequest](w, r)
	if !ok {
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), middleware.UserFromContext(r.Context()), urlParam(r, "id"), req.Status)
	if err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// DeleteOrder permanently removes an order.
func (h *Handlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), middleware.UserFromContext(r.Context()), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OrderFeed upgrades the connection to WebSocket for the live order feed.
func (h *Handlers) OrderFeed(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		writeError(w, http.StatusServiceUnavailable, "live feed disabled")
		return
	}
	h.hub.HandleWS(w, r)
}
