package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"prize-portal-service/internal/api"
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/services/champions"
	"prize-portal-service/internal/services/competitions"
	"prize-portal-service/internal/services/content"
	"prize-portal-service/internal/services/draws"
)

type listPayload[T any] struct {
	Items      []T            `json:"items"`
	Pagination api.Pagination `json:"pagination"`
}

// ListCompetitions proxies a filtered, paginated competition listing.
func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := competitions.ListParams{
		Category: q.Get("category"),
		Status:   domain.CompetitionStatus(q.Get("status")),
		Search:   q.Get("search"),
		Page:     queryInt(q.Get("page")),
		PageSize: queryInt(q.Get("pageSize")),
		MinPrice: queryFloat(q.Get("minPrice")),
		MaxPrice: queryFloat(q.Get("maxPrice")),
		MinPrize: queryFloat(q.Get("minPrize")),
		MaxPrize: queryFloat(q.Get("maxPrize")),
		Featured: queryBool(q.Get("featured")),
	}

	result, err := h.competitions.List(r.Context(), params)
	if err != nil {
		respondUpstream(w, r, err, nil)
		return
	}
	respondData(w, listPayload[domain.Competition]{
		Items:      result.Competitions,
		Pagination: result.Pagination,
	})
}

// FeaturedCompetitions proxies the featured subset.
func (h *Handler) FeaturedCompetitions(w http.ResponseWriter, r *http.Request) {
	items, err := h.competitions.Featured(r.Context())
	if err != nil {
		respondUpstream(w, r, err, nil)
		return
	}
	respondData(w, items)
}

// GetCompetition proxies a single competition by id or slug.
func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	item, err := h.competitions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondUpstream(w, r, err, competitions.ErrNotFound)
		return
	}
	respondData(w, item)
}

// ListDraws proxies a page of draw results.
func (h *Handler) ListDraws(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.draws.List(r.Context(), queryInt(q.Get("page")), queryInt(q.Get("pageSize")))
	if err != nil {
		respondUpstream(w, r, err, nil)
		return
	}
	respondData(w, listPayload[domain.Draw]{Items: result.Draws, Pagination: result.Pagination})
}

// GetDraw proxies a single draw by id.
func (h *Handler) GetDraw(w http.ResponseWriter, r *http.Request) {
	item, err := h.draws.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondUpstream(w, r, err, draws.ErrNotFound)
		return
	}
	respondData(w, item)
}

// ListChampions proxies past winners, optionally only the featured ones.
func (h *Handler) ListChampions(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"
	items, err := h.champions.List(r.Context(), featuredOnly)
	if err != nil {
		respondUpstream(w, r, err, champions.ErrNotFound)
		return
	}
	respondData(w, items)
}

// GetChampion proxies a single champion story by id.
func (h *Handler) GetChampion(w http.ResponseWriter, r *http.Request) {
	item, err := h.champions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondUpstream(w, r, err, champions.ErrNotFound)
		return
	}
	respondData(w, item)
}

type contentPayload struct {
	Page     domain.ContentPage `json:"page"`
	Fallback bool               `json:"fallback"`
}

// GetContentPage serves a content page, falling back to the bundled copy
// when the platform has none.
func (h *Handler) GetContentPage(w http.ResponseWriter, r *http.Request) {
	page, fallback, err := h.content.PageOrDefault(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondUpstream(w, r, err, content.ErrPageNotFound)
		return
	}
	respondData(w, contentPayload{Page: page, Fallback: fallback})
}

func queryInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func queryFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func queryBool(s string) *bool {
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}
