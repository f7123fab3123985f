package cookiecart

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sleek-tech/storefront-backend/internal/cfg"
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

func testStore() *Store {
	return NewStore(&cfg.CartCfg{
		CookieName:        "SLKCARTDATA",
		SessionCookieName: "SLKSESSION",
		CookieTTL:         240 * 24 * time.Hour,
	}, nopLogger{})
}

func requestWithCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestStore_RoundTrip(t *testing.T) {
	store := testStore()

	lines := []domain.CartLine{
		{ProductID: 1, Quantity: 3, Snapshot: domain.ProductSnapshot{Name: "shirt", Price: 800, DiscountPrice: 800}},
		{ProductID: 2, Quantity: 1, Snapshot: domain.ProductSnapshot{Name: "cap", Price: 300, DiscountPrice: 250}},
	}

	rec := httptest.NewRecorder()
	require.NoError(t, store.Write(rec, lines))

	got := store.Read(requestWithCookies(t, rec))
	assert.Equal(t, lines, got)
}

func TestStore_MissingCookieIsEmptyCart(t *testing.T) {
	store := testStore()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, store.Read(req))
}

func TestStore_MalformedCookieIsEmptyCart(t *testing.T) {
	store := testStore()

	for name, value := range map[string]string{
		"not base64":   "%%%",
		"not json":     base64.RawURLEncoding.EncodeToString([]byte("garbage")),
		"wrong schema": base64.RawURLEncoding.EncodeToString([]byte(`{"items":[1,2,3]}`)),
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "SLKCARTDATA", Value: value})
		assert.Empty(t, store.Read(req), name)
	}
}

func TestStore_UnknownVersionIsEmptyCart(t *testing.T) {
	store := testStore()

	value := base64.RawURLEncoding.EncodeToString([]byte(`{"v":2,"lines":[{"product_id":1,"quantity":1}]}`))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "SLKCARTDATA", Value: value})

	assert.Empty(t, store.Read(req))
}

func TestStore_WriteRefreshesExpiry(t *testing.T) {
	store := testStore()

	rec := httptest.NewRecorder()
	require.NoError(t, store.Write(rec, []domain.CartLine{{ProductID: 1, Quantity: 1}}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, "SLKCARTDATA", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	// Срок жизни продлевается при каждой перезаписи.
	assert.Equal(t, int(240*24*time.Hour/time.Second), cookie.MaxAge)
	assert.WithinDuration(t, time.Now().Add(240*24*time.Hour), cookie.Expires, time.Minute)
}

func TestStore_ClearExpiresCookie(t *testing.T) {
	store := testStore()

	rec := httptest.NewRecorder()
	store.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "SLKCARTDATA", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
