package http

import (
	"net/http"

	"github.com/modaflow/backend/internal/middleware"
)

type productCopyRequest struct {
	TenantID    string `json:"tenantId"`
	ProductName string `json:"productName"`
	Category    string `json:"category"`
}

type categoryCopyRequest struct {
	TenantID     string `json:"tenantId"`
	CategoryName string `json:"categoryName"`
}

// GenerateProductDescription drafts marketing copy for a product. The
// response always carries text: the generator degrades to a fixed
// fallback instead of failing.
func (h *Handlers) GenerateProductDescription(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[productCopyRequest](w, r)
	if !ok {
		return
	}

	text, err := h.copy.ProductDescription(r.Context(), middleware.UserFromContext(r.Context()), req.TenantID, req.ProductName, req.Category)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"description": text})
}

// GenerateSEOKeywords drafts search keywords for a product name.
func (h *Handlers) GenerateSEOKeywords(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[productCopyRequest](w, r)
	if !ok {
		return
	}

	kws, err := h.copy.SEOKeywords(r.Context(), middleware.UserFromContext(r.Context()), req.TenantID, req.ProductName)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"keywords": kws})
}

// GenerateCategoryDescription drafts marketing copy for a category.
func (h *Handlers) GenerateCategoryDescription(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[categoryCopyRequest](w, r)
	if !ok {
		return
	}

	text, err := h.copy.CategoryDescription(r.Context(), middleware.UserFromContext(r.Context()), req.TenantID, req.CategoryName)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"description": text})
}
