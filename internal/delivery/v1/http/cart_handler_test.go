package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sleek-tech/storefront-backend/internal/cfg"
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/sleek-tech/storefront-backend/internal/repository/cookiecart"
	"github.com/sleek-tech/storefront-backend/internal/usecase"
	"github.com/sleek-tech/storefront-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type mockCartUC struct {
	m sync.Mutex

	addCookieErr     error
	consolidateErr   error
	consolidatedWith []domain.CartLine
	consolidateOwner string
	ownerAdds        []int64
	sessionAdds      map[string][]int64
}

func (m *mockCartUC) AddToCookieCart(_ context.Context, req *usecase.CookieAddReq) ([]domain.CartLine, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.addCookieErr != nil {
		return nil, m.addCookieErr
	}
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}
	return append(req.Lines, domain.CartLine{ProductID: req.ProductID, Quantity: qty}), nil
}

func (m *mockCartUC) RemoveFromCookieCart(lines []domain.CartLine, productID int64) []domain.CartLine {
	return domain.RemoveLine(lines, productID)
}

func (m *mockCartUC) CookieCartView(lines []domain.CartLine) *usecase.CartView {
	views := make([]usecase.CartLineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, usecase.CartLineView{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return &usecase.CartView{Lines: views, ItemCount: len(lines), Total: decimal.Zero}
}

func (m *mockCartUC) AddToSessionCart(_ context.Context, sessionID string, productID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.sessionAdds == nil {
		m.sessionAdds = make(map[string][]int64)
	}
	m.sessionAdds[sessionID] = append(m.sessionAdds[sessionID], productID)
	return nil
}

func (m *mockCartUC) DecrementSessionCart(_ context.Context, _ string, _ int64) error { return nil }
func (m *mockCartUC) RemoveFromSessionCart(_ context.Context, _ string, _ int64) error {
	return nil
}

func (m *mockCartUC) SessionCartView(_ context.Context, _ string) (*usecase.CartView, error) {
	return &usecase.CartView{Total: decimal.Zero}, nil
}

func (m *mockCartUC) AddToOwnerCart(_ context.Context, _ string, productID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.ownerAdds = append(m.ownerAdds, productID)
	return nil
}

func (m *mockCartUC) RemoveFromOwnerCart(_ context.Context, _ string, _ int64) error { return nil }
func (m *mockCartUC) ClearOwnerCart(_ context.Context, _ string) error               { return nil }

func (m *mockCartUC) OwnerCartView(_ context.Context, _ string) (*usecase.CartView, error) {
	return &usecase.CartView{Total: decimal.Zero}, nil
}

func (m *mockCartUC) Consolidate(_ context.Context, ownerID string, lines []domain.CartLine) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.consolidateErr != nil {
		return m.consolidateErr
	}
	m.consolidateOwner = ownerID
	m.consolidatedWith = lines
	return nil
}

func newTestRouter(uc usecase.CartUC) (*chi.Mux, *cookiecart.Store) {
	cartCfg := &cfg.CartCfg{
		CookieName:        "SLKCARTDATA",
		SessionCookieName: "SLKSESSION",
		CookieTTL:         240 * 24 * time.Hour,
	}
	cookies := cookiecart.NewStore(cartCfg, nopLogger{})

	r := chi.NewRouter()
	handler := NewCartHandler(uc, cookies, cartCfg, nopLogger{})
	registerCartRoutes(r, handler)

	return r, cookies
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAddCookieCartItem(t *testing.T) {
	uc := &mockCartUC{}
	router, cookies := newTestRouter(uc)

	body := strings.NewReader(`{"product_id": 7, "quantity": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/cart/cookie/items", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Cookie переписана и содержит добавленную строку.
	cartCookie := cookieByName(rec.Result().Cookies(), "SLKCARTDATA")
	require.NotNil(t, cartCookie)

	readReq := httptest.NewRequest(http.MethodGet, "/", nil)
	readReq.AddCookie(cartCookie)
	lines := cookies.Read(readReq)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(7), lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.ItemCount)
}

func TestAddCookieCartItem_InvalidProduct(t *testing.T) {
	router, _ := newTestRouter(&mockCartUC{})

	req := httptest.NewRequest(http.MethodPost, "/cart/cookie/items", strings.NewReader(`{"product_id": 0}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCookieCartItem_OutOfStock(t *testing.T) {
	router, _ := newTestRouter(&mockCartUC{addCookieErr: e.ErrProductOutOfStock})

	req := httptest.NewRequest(http.MethodPost, "/cart/cookie/items", strings.NewReader(`{"product_id": 7}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRemoveCookieCartItem(t *testing.T) {
	uc := &mockCartUC{}
	router, cookies := newTestRouter(uc)

	seed := httptest.NewRecorder()
	require.NoError(t, cookies.Write(seed, []domain.CartLine{
		{ProductID: 7, Quantity: 2},
		{ProductID: 9, Quantity: 1},
	}))

	req := httptest.NewRequest(http.MethodDelete, "/cart/cookie/items/7", nil)
	req.AddCookie(cookieByName(seed.Result().Cookies(), "SLKCARTDATA"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cartCookie := cookieByName(rec.Result().Cookies(), "SLKCARTDATA")
	require.NotNil(t, cartCookie)

	readReq := httptest.NewRequest(http.MethodGet, "/", nil)
	readReq.AddCookie(cartCookie)
	lines := cookies.Read(readReq)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(9), lines[0].ProductID)
}

func TestClearCookieCart(t *testing.T) {
	router, _ := newTestRouter(&mockCartUC{})

	req := httptest.NewRequest(http.MethodDelete, "/cart/cookie", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	cleared := cookieByName(rec.Result().Cookies(), "SLKCARTDATA")
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestGetSessionCart_IssuesSessionCookie(t *testing.T) {
	router, _ := newTestRouter(&mockCartUC{})

	req := httptest.NewRequest(http.MethodGet, "/cart/session", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	sessionCookie := cookieByName(rec.Result().Cookies(), "SLKSESSION")
	require.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)
}

func TestAddSessionCartItem_ReusesExistingSession(t *testing.T) {
	uc := &mockCartUC{}
	router, _ := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/cart/session/items/5", nil)
	req.AddCookie(&http.Cookie{Name: "SLKSESSION", Value: "sess-abc"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{5}, uc.sessionAdds["sess-abc"])
	// Существующая сессия не перевыпускается.
	assert.Nil(t, cookieByName(rec.Result().Cookies(), "SLKSESSION"))
}

func TestAddOwnerCartItem(t *testing.T) {
	uc := &mockCartUC{}
	router, _ := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/cart/items/3", nil)
	req.Header.Set("X-Owner-ID", "owner-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{3}, uc.ownerAdds)
}

func TestAddOwnerCartItem_MissingOwnerHeader(t *testing.T) {
	router, _ := newTestRouter(&mockCartUC{})

	req := httptest.NewRequest(http.MethodPost, "/cart/items/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConsolidateCart(t *testing.T) {
	uc := &mockCartUC{}
	router, cookies := newTestRouter(uc)

	// Готовим cookie-корзину с двумя строками.
	seed := httptest.NewRecorder()
	require.NoError(t, cookies.Write(seed, []domain.CartLine{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 1},
	}))

	req := httptest.NewRequest(http.MethodPost, "/cart/consolidate", nil)
	req.Header.Set("X-Owner-ID", "owner-1")
	req.AddCookie(cookieByName(seed.Result().Cookies(), "SLKCARTDATA"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner-1", uc.consolidateOwner)
	require.Len(t, uc.consolidatedWith, 2)
	assert.Equal(t, 3, uc.consolidatedWith[0].Quantity)

	// Cookie стирается после успешного переноса.
	cleared := cookieByName(rec.Result().Cookies(), "SLKCARTDATA")
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)

	var resp ConsolidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Migrated)
}

func TestConsolidateCart_FailureKeepsCookie(t *testing.T) {
	uc := &mockCartUC{consolidateErr: e.ErrInternalServerError}
	router, cookies := newTestRouter(uc)

	seed := httptest.NewRecorder()
	require.NoError(t, cookies.Write(seed, []domain.CartLine{{ProductID: 1, Quantity: 1}}))

	req := httptest.NewRequest(http.MethodPost, "/cart/consolidate", nil)
	req.Header.Set("X-Owner-ID", "owner-1")
	req.AddCookie(cookieByName(seed.Result().Cookies(), "SLKCARTDATA"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// При сбое переноса cookie остаётся нетронутой.
	assert.Nil(t, cookieByName(rec.Result().Cookies(), "SLKCARTDATA"))
}
