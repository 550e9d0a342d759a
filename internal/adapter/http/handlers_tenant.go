package http

import (
	"net/http"

	"github.com/modaflow/backend/internal/domain/tenant"
	"github.com/modaflow/backend/internal/middleware"
)

// CreateTenant provisions a new storefront.
func (h *Handlers) CreateTenant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tenant.CreateRequest](w, r)
	if !ok {
		return
	}

	t, err := h.tenants.Create(r.Context(), middleware.UserFromContext(r.Context()), &req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// ListTenants returns all active storefronts.
func (h *Handlers) ListTenants(w http.ResponseWriter, r *http.Request) {
	ts, err := h.tenants.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "tenants not found")
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

// GetTenant returns a storefront by id.
func (h *Handlers) GetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenants.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// GetTenantBySlug resolves the public storefront: the tenant
// configuration plus its active products.
func (h *Handlers) GetTenantBySlug(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenants.GetBySlug(r.Context(), urlParam(r, "slug"))
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// UpdateTenant applies a partial patch to a storefront.
func (h *Handlers) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tenant.UpdateRequest](w, r)
	if !ok {
		return
	}

	t, err := h.tenants.Update(r.Context(), middleware.UserFromContext(r.Context()), urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTenant deactivates a storefront.
func (h *Handlers) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	if err := h.tenants.Delete(r.Context(), middleware.UserFromContext(r.Context()), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
