// Package httpapi exposes the service over HTTP: health probes, proxied
// platform resources, and the two client state stores.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/services/competitions"
	"prize-portal-service/internal/services/draws"
	"prize-portal-service/internal/services/users"
	"prize-portal-service/internal/store/browse"
	"prize-portal-service/internal/store/ui"
)

// CompetitionService is the competitions surface the handlers need.
type CompetitionService interface {
	List(ctx context.Context, p competitions.ListParams) (competitions.ListResult, error)
	Featured(ctx context.Context) ([]domain.Competition, error)
	Get(ctx context.Context, idOrSlug string) (domain.Competition, error)
}

// DrawService is the draws surface the handlers need.
type DrawService interface {
	List(ctx context.Context, page, pageSize int) (draws.ListResult, error)
	Get(ctx context.Context, id string) (domain.Draw, error)
}

// ChampionService is the champions surface the handlers need.
type ChampionService interface {
	List(ctx context.Context, featuredOnly bool) ([]domain.Champion, error)
	Get(ctx context.Context, id string) (domain.Champion, error)
}

// CartService is the cart surface the handlers need.
type CartService interface {
	Get(ctx context.Context) (domain.Cart, error)
	AddItem(ctx context.Context, competitionID string, quantity int) (domain.Cart, error)
	UpdateItem(ctx context.Context, itemID string, quantity int) (domain.Cart, error)
	RemoveItem(ctx context.Context, itemID string) (domain.Cart, error)
	Clear(ctx context.Context) (domain.Cart, error)
}

// UserService is the accounts surface the handlers need.
type UserService interface {
	Me(ctx context.Context) (domain.User, error)
	Update(ctx context.Context, patch map[string]any) (domain.User, error)
	AdminList(ctx context.Context, role domain.Role, search string, page, pageSize int) (users.AdminListResult, error)
	AdminSetActive(ctx context.Context, userID string, active bool) (domain.User, error)
}

// ContentService is the content surface the handlers need.
type ContentService interface {
	PageOrDefault(ctx context.Context, slug string) (domain.ContentPage, bool, error)
}

// Handler bundles the resource handlers behind the router.
type Handler struct {
	competitions CompetitionService
	draws        DrawService
	champions    ChampionService
	cart         CartService
	users        UserService
	content      ContentService
	browse       *browse.Store
	ui           *ui.Store
	ready        func() bool
	refresh      func(context.Context)
	logger       *zap.Logger
	validate     *validator.Validate
}

// HandlerConfig wires a Handler.
type HandlerConfig struct {
	Competitions CompetitionService
	Draws        DrawService
	Champions    ChampionService
	Cart         CartService
	Users        UserService
	Content      ContentService
	Browse       *browse.Store
	UI           *ui.Store

	// Ready reports whether the service has warm data; nil means always
	// ready.
	Ready func() bool

	// Refresh, when set, is invoked after browse filter changes so the
	// store catches up without waiting for the next cycle.
	Refresh func(context.Context)

	Logger *zap.Logger
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		competitions: cfg.Competitions,
		draws:        cfg.Draws,
		champions:    cfg.Champions,
		cart:         cfg.Cart,
		users:        cfg.Users,
		content:      cfg.Content,
		browse:       cfg.Browse,
		ui:           cfg.UI,
		ready:        cfg.Ready,
		refresh:      cfg.Refresh,
		logger:       logger,
		validate:     validator.New(),
	}
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondData(w, map[string]string{"status": "ok"})
}

// Ready reports whether warm data is available to serve.
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if h.ready != nil && !h.ready() {
		respondError(w, http.StatusServiceUnavailable, "warming up")
		return
	}
	respondData(w, map[string]string{"status": "ready"})
}
