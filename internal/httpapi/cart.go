package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"prize-portal-service/internal/services/cart"
)

type addItemRequest struct {
	CompetitionID string `json:"competitionId" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// GetCart returns the caller's cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cart.Get(r.Context())
	if err != nil {
		respondUpstream(w, r, err, cart.ErrNotFound)
		return
	}
	respondData(w, c)
}

// AddCartItem adds tickets for a competition and returns the updated cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	c, err := h.cart.AddItem(r.Context(), req.CompetitionID, req.Quantity)
	if err != nil {
		respondUpstream(w, r, err, nil)
		return
	}
	respondCreated(w, c)
}

// UpdateCartItem changes an item's quantity and returns the updated cart.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	c, err := h.cart.UpdateItem(r.Context(), chi.URLParam(r, "itemID"), req.Quantity)
	if err != nil {
		respondUpstream(w, r, err, cart.ErrNotFound)
		return
	}
	respondData(w, c)
}

// RemoveCartItem removes an item and returns the updated cart.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.cart.RemoveItem(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		respondUpstream(w, r, err, cart.ErrNotFound)
		return
	}
	respondData(w, c)
}

// ClearCart empties the cart and returns the resulting empty cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cart.Clear(r.Context())
	if err != nil {
		respondUpstream(w, r, err, nil)
		return
	}
	respondData(w, c)
}

// decodeBody decodes and validates a JSON request body, writing the error
// response itself when the body is unusable.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		respondFieldErrors(w, http.StatusUnprocessableEntity, "validation failed", validationFields(err))
		return false
	}
	return true
}
