package sales

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/warungkapten/kasir-backend/internal/modules/auth"
)

// Handler exposes checkout and transaction history endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts the routes every signed-in user can reach.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/v1/checkout", h.checkout)                          // POST /api/v1/checkout
	r.Get("/api/v1/transactions", h.listTransactions)               // GET  /api/v1/transactions
	r.Get("/api/v1/transactions/{id}", h.getTransaction)            // GET  /api/v1/transactions/{id}
	r.Get("/api/v1/transactions/{id}/receipt", h.receipt)           // GET  /api/v1/transactions/{id}/receipt
}

// RegisterAdminRoutes mounts the owner-only administrative routes.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Delete("/api/v1/transactions/{id}", h.deleteTransaction) // DELETE /api/v1/transactions/{id}
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
		return
	}
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	cashier := Cashier{ID: claims.Subject, Name: claims.Name}
	tx, err := h.service.Checkout(r.Context(), cashier, req)
	if err != nil {
		var persistErr *PersistenceError
		switch {
		case errors.Is(err, ErrMissingCustomerName),
			errors.Is(err, ErrMissingPaymentMethod),
			errors.Is(err, ErrInsufficientPayment),
			errors.Is(err, ErrEmptyCart):
			respond(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		case errors.As(err, &persistErr):
			respond(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		case strings.Contains(err.Error(), "invalid"):
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}
	respond(w, http.StatusCreated, tx)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.ListTransactions(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if txs == nil {
		txs = []*Transaction{}
	}
	respond(w, http.StatusOK, txs)
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.service.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, tx)
}

func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	text, err := h.service.Receipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
