package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"prize-portal-service/internal/store/browse"
	"prize-portal-service/internal/store/ui"
)

// BrowseState returns the current listing state snapshot.
func (h *Handler) BrowseState(w http.ResponseWriter, _ *http.Request) {
	respondData(w, h.browse.State())
}

// SetBrowseFilters merges a filter patch into the listing state and kicks
// off a refresh so the collection catches up.
func (h *Handler) SetBrowseFilters(w http.ResponseWriter, r *http.Request) {
	var patch browse.Filters
	if !h.decodeBody(w, r, &patch) {
		return
	}

	h.browse.SetFilters(patch)
	h.triggerRefresh(r)
	respondData(w, h.browse.State())
}

// ClearBrowseFilters resets the filter set.
func (h *Handler) ClearBrowseFilters(w http.ResponseWriter, r *http.Request) {
	h.browse.ClearFilters()
	h.triggerRefresh(r)
	respondData(w, h.browse.State())
}

type searchRequest struct {
	Query string `json:"query"`
}

// SetBrowseSearch sets the free-text query.
func (h *Handler) SetBrowseSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	h.browse.SetSearchQuery(req.Query)
	h.triggerRefresh(r)
	respondData(w, h.browse.State())
}

// SelectCompetition marks a competition from the current collection as
// selected.
func (h *Handler) SelectCompetition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, c := range h.browse.State().Competitions {
		if c.ID == id {
			h.browse.Select(c)
			respondData(w, h.browse.State())
			return
		}
	}
	respondError(w, http.StatusNotFound, "competition not in current collection")
}

// ClearSelection clears the selection.
func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.browse.ClearSelection()
	respondData(w, h.browse.State())
}

// UIState returns the current interface state snapshot.
func (h *Handler) UIState(w http.ResponseWriter, _ *http.Request) {
	respondData(w, h.ui.State())
}

type preferencesRequest struct {
	Theme        *ui.Theme    `json:"theme" validate:"omitempty,oneof=light dark system"`
	PrimaryColor *string      `json:"primaryColor" validate:"omitempty,hexcolor"`
	FontSize     *ui.FontSize `json:"fontSize" validate:"omitempty,oneof=small medium large"`
	PageSize     *int         `json:"pageSize" validate:"omitempty,min=1,max=100"`
}

// UpdatePreferences applies the provided presentation preferences.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.Theme != nil {
		h.ui.SetTheme(*req.Theme)
	}
	if req.PrimaryColor != nil {
		h.ui.SetPrimaryColor(*req.PrimaryColor)
	}
	if req.FontSize != nil {
		h.ui.SetFontSize(*req.FontSize)
	}
	if req.PageSize != nil {
		h.ui.SetPageSize(*req.PageSize)
	}
	respondData(w, h.ui.State())
}

type notificationsRequest struct {
	Email     *bool `json:"email"`
	SMS       *bool `json:"sms"`
	Push      *bool `json:"push"`
	Marketing *bool `json:"marketing"`
}

// UpdateNotifications merges a notification settings patch.
func (h *Handler) UpdateNotifications(w http.ResponseWriter, r *http.Request) {
	var req notificationsRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	h.ui.UpdateNotifications(ui.NotificationPatch{
		Email:     req.Email,
		SMS:       req.SMS,
		Push:      req.Push,
		Marketing: req.Marketing,
	})
	respondData(w, h.ui.State().Notifications)
}

type toastRequest struct {
	Kind       ui.ToastKind `json:"kind" validate:"required,oneof=success error info warning"`
	Message    string       `json:"message" validate:"required"`
	DurationMS int          `json:"durationMs"`
	Sticky     bool         `json:"sticky"`
}

type toastCreated struct {
	ID string `json:"id"`
}

// AddToast enqueues a toast notification.
func (h *Handler) AddToast(w http.ResponseWriter, r *http.Request) {
	var req toastRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	duration := time.Duration(req.DurationMS) * time.Millisecond
	if req.Sticky {
		duration = -1
	}
	id := h.ui.AddToast(req.Kind, req.Message, duration)
	respondCreated(w, toastCreated{ID: id})
}

// RemoveToast dismisses a toast; unknown ids succeed quietly.
func (h *Handler) RemoveToast(w http.ResponseWriter, r *http.Request) {
	h.ui.RemoveToast(chi.URLParam(r, "id"))
	respondNoContent(w)
}

// ClearToasts dismisses every toast.
func (h *Handler) ClearToasts(w http.ResponseWriter, _ *http.Request) {
	h.ui.ClearToasts()
	respondNoContent(w)
}

func (h *Handler) triggerRefresh(r *http.Request) {
	if h.refresh != nil {
		h.refresh(r.Context())
	}
}
