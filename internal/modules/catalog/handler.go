package catalog

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes menu and category HTTP endpoints. Read routes serve the
// cashier desk from the local snapshot; write routes are owner-only and
// mounted behind the role middleware in main.
type Handler struct {
	service Service
	cache   *Cache
}

func NewHandler(service Service, cache *Cache) *Handler {
	return &Handler{service: service, cache: cache}
}

// RegisterReadRoutes mounts routes available to any signed-in user.
func (h *Handler) RegisterReadRoutes(r chi.Router) {
	r.Get("/api/v1/menu", h.listMenu)                 // GET /api/v1/menu
	r.Get("/api/v1/categories", h.listCategories)     // GET /api/v1/categories
}

// RegisterAdminRoutes mounts the owner-only management routes. Registered
// with direct method calls, not Route: a subrouter mounted on the same
// pattern would shadow the read routes registered in the outer group.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/api/v1/menu", h.createItem)                  // POST   /api/v1/menu
	r.Put("/api/v1/menu/{id}", h.updateItem)              // PUT    /api/v1/menu/{id}
	r.Delete("/api/v1/menu/{id}", h.deleteItem)           // DELETE /api/v1/menu/{id}
	r.Post("/api/v1/categories", h.createCategory)        // POST   /api/v1/categories
	r.Delete("/api/v1/categories/{id}", h.deleteCategory) // DELETE /api/v1/categories/{id}
}

// listMenu serves the realtime snapshot; the X-Snapshot-Stale header tells
// the client to show a staleness indicator rather than fail.
func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	if h.cache.Stale() {
		w.Header().Set("X-Snapshot-Stale", "true")
	}
	items := h.cache.Menu()
	if items == nil {
		items = []*MenuItem{}
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	if h.cache.Stale() {
		w.Header().Set("X-Snapshot-Stale", "true")
	}
	cats := h.cache.Categories()
	if cats == nil {
		cats = []*Category{}
	}
	respond(w, http.StatusOK, cats)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req SaveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req SaveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := statusFor(err)
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req SaveCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	msg := err.Error()
	if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must not") || strings.Contains(msg, "already exists") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
