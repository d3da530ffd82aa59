package cart

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/warungkapten/kasir-backend/internal/modules/auth"
	"github.com/warungkapten/kasir-backend/internal/modules/catalog"
)

// Handler exposes the cashier's cart over HTTP. The cart is addressed by
// the signed-in cashier, never by an id in the URL.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", h.get)                            // GET    /api/v1/cart
		r.Delete("/", h.clear)                       // DELETE /api/v1/cart
		r.Post("/items", h.addItem)                  // POST   /api/v1/cart/items
		r.Patch("/items/{item_id}", h.changeQty)     // PATCH  /api/v1/cart/items/{item_id}
		r.Delete("/items/{item_id}", h.removeItem)   // DELETE /api/v1/cart/items/{item_id}
		r.Put("/channel", h.setChannel)              // PUT    /api/v1/cart/channel
	})
}

func cashierID(r *http.Request) (string, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		return "", false
	}
	return claims.Subject, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	uid, ok := cashierID(r)
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
		return
	}
	respond(w, http.StatusOK, h.service.Get(uid))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := cashierID(r)
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
		return
	}
	var req struct {
		MenuItemID string `json:"menu_item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	v, err := h.service.AddItem(uid, req.MenuItemID)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, v)
}

func (h *Handler) changeQty(w http.ResponseWriter, r *http.Request) {
	uid, ok := cashierID(r)
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
		return
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	v, err := h.service.ChangeQuantity(uid, chi.URLParam(r, "item_id"), req.Delta)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, v)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := cashierID(r)
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
		return
	}
	respond(w, http.StatusOK, h.service.RemoveItem(uid, chi.URLParam(r, "item_id")))
}

func (h *Handler) setChannel(w http.ResponseWriter, r *http.Request) {
	uid, ok := cashierID(r)
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
		return
	}
	var req struct {
		Channel string `json:"channel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ch, err := catalog.ParseChannel(req.Channel)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, h.service.SetChannel(uid, ch))
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	uid, ok := cashierID(r)
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
		return
	}
	h.service.Clear(uid)
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
