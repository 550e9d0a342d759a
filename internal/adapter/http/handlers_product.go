package http

import (
	"net/http"

	"github.com/modaflow/backend/internal/domain/product"
	"github.com/modaflow/backend/internal/middleware"
)

// CreateProduct adds a product to a tenant's catalog.
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[product.CreateRequest](w, r)
	if !ok {
		return
	}

	p, err := h.catalog.Create(r.Context(), middleware.UserFromContext(r.Context()), &req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListProducts returns active products across all storefronts, narrowed
// by category, price bounds or a search term.
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.catalog.List(r.Context(), parseCatalogFilter(r))
	if err != nil {
		writeDomainError(w, err, "products not found")
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

// ListTenantProducts returns a storefront's active catalog.
func (h *Handlers) ListTenantProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.catalog.ListByTenant(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "products not found")
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

// GetProduct returns a product by id.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProduct applies a partial patch to a product.
func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[product.UpdateRequest](w, r)
	if !ok {
		return
	}

	p, err := h.catalog.Update(r.Context(), middleware.UserFromContext(r.Context()), urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProduct deactivates a product.
func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), middleware.UserFromContext(r.Context()), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
