package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the public sign-in endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/v1/auth/login", h.login)         // POST /api/v1/auth/login
	r.Post("/api/v1/auth/bootstrap", h.bootstrap) // POST /api/v1/auth/bootstrap
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	result, err := h.service.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": authErr.Message})
			return
		}
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") {
			code = http.StatusBadRequest
		}
		respondJSON(w, code, map[string]string{"error": err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) bootstrap(w http.ResponseWriter, r *http.Request) {
	var req BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.Bootstrap(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "required") || strings.Contains(msg, "must be") {
			code = http.StatusBadRequest
		} else if strings.Contains(msg, "already completed") {
			code = http.StatusConflict
		}
		respondJSON(w, code, map[string]string{"error": msg})
		return
	}
	respondJSON(w, http.StatusCreated, p)
}
