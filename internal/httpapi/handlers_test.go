package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prize-portal-service/internal/api"
	"prize-portal-service/internal/domain"
	"prize-portal-service/internal/services/competitions"
	"prize-portal-service/internal/services/content"
	"prize-portal-service/internal/services/draws"
	"prize-portal-service/internal/services/users"
	"prize-portal-service/internal/store/browse"
	"prize-portal-service/internal/store/ui"
)

type stubCompetitions struct {
	lastParams competitions.ListParams
	list       competitions.ListResult
	listErr    error
	get        domain.Competition
	getErr     error
}

func (s *stubCompetitions) List(_ context.Context, p competitions.ListParams) (competitions.ListResult, error) {
	s.lastParams = p
	return s.list, s.listErr
}

func (s *stubCompetitions) Featured(context.Context) ([]domain.Competition, error) {
	return s.list.Competitions, s.listErr
}

func (s *stubCompetitions) Get(context.Context, string) (domain.Competition, error) {
	return s.get, s.getErr
}

type stubDraws struct{ err error }

func (s *stubDraws) List(context.Context, int, int) (draws.ListResult, error) {
	return draws.ListResult{}, s.err
}

func (s *stubDraws) Get(context.Context, string) (domain.Draw, error) {
	return domain.Draw{}, s.err
}

type stubChampions struct{ featuredOnly bool }

func (s *stubChampions) List(_ context.Context, featuredOnly bool) ([]domain.Champion, error) {
	s.featuredOnly = featuredOnly
	return []domain.Champion{{ID: "ch1"}}, nil
}

func (s *stubChampions) Get(context.Context, string) (domain.Champion, error) {
	return domain.Champion{ID: "ch1"}, nil
}

type stubCart struct {
	cart    domain.Cart
	err     error
	lastOp  string
	lastQty int
}

func (s *stubCart) Get(context.Context) (domain.Cart, error) {
	s.lastOp = "get"
	return s.cart, s.err
}

func (s *stubCart) AddItem(_ context.Context, competitionID string, qty int) (domain.Cart, error) {
	s.lastOp = "add:" + competitionID
	s.lastQty = qty
	return s.cart, s.err
}

func (s *stubCart) UpdateItem(_ context.Context, itemID string, qty int) (domain.Cart, error) {
	s.lastOp = "update:" + itemID
	s.lastQty = qty
	return s.cart, s.err
}

func (s *stubCart) RemoveItem(_ context.Context, itemID string) (domain.Cart, error) {
	s.lastOp = "remove:" + itemID
	return s.cart, s.err
}

func (s *stubCart) Clear(context.Context) (domain.Cart, error) {
	s.lastOp = "clear"
	return s.cart, s.err
}

type stubUsers struct {
	user domain.User
	err  error
}

func (s *stubUsers) Me(context.Context) (domain.User, error) { return s.user, s.err }

func (s *stubUsers) Update(context.Context, map[string]any) (domain.User, error) {
	return s.user, s.err
}

func (s *stubUsers) AdminList(context.Context, domain.Role, string, int, int) (users.AdminListResult, error) {
	return users.AdminListResult{Users: []domain.User{s.user}}, s.err
}

func (s *stubUsers) AdminSetActive(context.Context, string, bool) (domain.User, error) {
	return s.user, s.err
}

type stubContent struct {
	page     domain.ContentPage
	fallback bool
	err      error
}

func (s *stubContent) PageOrDefault(context.Context, string) (domain.ContentPage, bool, error) {
	return s.page, s.fallback, s.err
}

type testEnv struct {
	competitions *stubCompetitions
	cart         *stubCart
	content      *stubContent
	browse       *browse.Store
	ui           *ui.Store
	refreshed    int
	router       http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		competitions: &stubCompetitions{},
		cart:         &stubCart{},
		content:      &stubContent{},
		browse:       browse.New(browse.Options{}),
		ui:           ui.New(ui.Options{}),
	}
	handler := NewHandler(HandlerConfig{
		Competitions: env.competitions,
		Draws:        &stubDraws{},
		Champions:    &stubChampions{},
		Cart:         env.cart,
		Users:        &stubUsers{},
		Content:      env.content,
		Browse:       env.browse,
		UI:           env.ui,
		Refresh:      func(context.Context) { env.refreshed++ },
	})
	env.router = NewRouter(RouterConfig{Handler: handler})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestReadyGate(t *testing.T) {
	ready := false
	handler := NewHandler(HandlerConfig{Ready: func() bool { return ready }})
	router := NewRouter(RouterConfig{Handler: handler})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	ready = true
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListCompetitionsParsesQuery(t *testing.T) {
	env := newTestEnv(t)
	env.competitions.list = competitions.ListResult{
		Competitions: []domain.Competition{{ID: "c1"}},
		Pagination:   api.Pagination{Page: 2, TotalPages: 5, TotalCount: 50},
	}

	rec := env.do(t, http.MethodGet,
		"/api/competitions?category=Tech&status=active&minPrice=5&featured=true&search=watch&page=2&pageSize=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	p := env.competitions.lastParams
	assert.Equal(t, "Tech", p.Category)
	assert.Equal(t, domain.StatusActive, p.Status)
	require.NotNil(t, p.MinPrice)
	assert.Equal(t, 5.0, *p.MinPrice)
	require.NotNil(t, p.Featured)
	assert.True(t, *p.Featured)
	assert.Equal(t, "watch", p.Search)
	assert.Equal(t, 2, p.Page)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestGetCompetitionNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.competitions.getErr = competitions.ErrNotFound

	rec := env.do(t, http.MethodGet, "/api/competitions/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeResponse(t, rec).Success)
}

func TestUpstreamErrorStatusPassesThrough(t *testing.T) {
	env := newTestEnv(t)
	env.competitions.listErr = &api.Error{Status: http.StatusUnauthorized, Message: "session expired"}

	rec := env.do(t, http.MethodGet, "/api/competitions", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "session expired", decodeResponse(t, rec).Message)
}

func TestTransportErrorReadsAsBadGateway(t *testing.T) {
	env := newTestEnv(t)
	env.competitions.listErr = errors.New("connection refused")

	rec := env.do(t, http.MethodGet, "/api/competitions", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAddCartItem(t *testing.T) {
	env := newTestEnv(t)
	env.cart.cart = domain.Cart{ID: "cart1"}

	rec := env.do(t, http.MethodPost, "/api/cart/items",
		`{"competitionId":"c1","quantity":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "add:c1", env.cart.lastOp)
	assert.Equal(t, 3, env.cart.lastQty)
}

func TestAddCartItemValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/cart/items", `{"quantity":0}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Contains(t, resp.Errors, "competitionid")
	assert.Contains(t, resp.Errors, "quantity")
}

func TestAddCartItemBadJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/cart/items", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContentFallbackFlag(t *testing.T) {
	env := newTestEnv(t)
	env.content.page = domain.ContentPage{Slug: "terms", Title: "Terms"}
	env.content.fallback = true

	rec := env.do(t, http.MethodGet, "/api/content/terms", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data contentPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Fallback)
	assert.Equal(t, "terms", resp.Data.Page.Slug)
}

func TestContentUnknownSlug(t *testing.T) {
	env := newTestEnv(t)
	env.content.err = content.ErrPageNotFound

	rec := env.do(t, http.MethodGet, "/api/content/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
