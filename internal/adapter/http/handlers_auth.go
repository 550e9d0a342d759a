package http

import (
	"net/http"

	"github.com/modaflow/backend/internal/domain/user"
	"github.com/modaflow/backend/internal/middleware"
)

// Login authenticates a user and returns an access token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.LoginRequest](w, r)
	if !ok {
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		// Deliberately map credential failures to 401, not 403.
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetCurrentUser returns the authenticated caller.
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CreateUser registers a new account. Admin only.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.CreateRequest](w, r)
	if !ok {
		return
	}

	u, err := h.auth.Register(r.Context(), middleware.UserFromContext(r.Context()), &req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// ListUsers returns all accounts. Admin only.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	us, err := h.auth.ListUsers(r.Context(), middleware.UserFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err, "users not found")
		return
	}
	writeJSON(w, http.StatusOK, us)
}
