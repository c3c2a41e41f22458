package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/services/users"
)

// Me returns the authenticated account's normalized profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Me(r.Context())
	if err != nil {
		respondUpstream(w, r, err, users.ErrNotFound)
		return
	}
	respondData(w, user)
}

// UpdateMe forwards a partial profile update.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(patch) == 0 {
		respondError(w, http.StatusBadRequest, "empty update")
		return
	}

	user, err := h.users.Update(r.Context(), patch)
	if err != nil {
		respondUpstream(w, r, err, users.ErrNotFound)
		return
	}
	respondData(w, user)
}

// AdminListUsers returns a page of accounts, filtered by role or search.
func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.users.AdminList(r.Context(),
		domain.Role(q.Get("role")), q.Get("search"),
		queryInt(q.Get("page")), queryInt(q.Get("pageSize")))
	if err != nil {
		respondUpstream(w, r, err, nil)
		return
	}
	respondData(w, listPayload[domain.User]{Items: result.Users, Pagination: result.Pagination})
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// AdminSetUserActive activates or deactivates an account.
func (h *Handler) AdminSetUserActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.AdminSetActive(r.Context(), chi.URLParam(r, "id"), *req.Active)
	if err != nil {
		respondUpstream(w, r, err, users.ErrNotFound)
		return
	}
	respondData(w, user)
}

func validationFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = "failed " + fe.Tag() + " validation"
	}
	return fields
}
