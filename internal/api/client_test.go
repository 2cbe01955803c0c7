package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fracki1010/edu-cart-app/internal/domain"
)

type stubSessions struct {
	token string
}

func (s *stubSessions) Current() domain.Session {
	return domain.Session{Token: s.token}
}

func newTestClient(t *testing.T, handler http.Handler, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	return NewClient(cfg)
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]productWire{})
	})

	sut := newTestClient(t, handler, Config{Sessions: &stubSessions{token: "tok-123"}})
	_, err := sut.GetProducts(context.Background(), ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDo_GuestSendsNoAuthorization(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]productWire{})
	})

	sut := newTestClient(t, handler, Config{Sessions: &stubSessions{}})
	_, err := sut.GetProducts(context.Background(), ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDo_Unauthorized_FiresHookOnce(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired", "code": "token_expired"})
	})

	var hookCalls int
	sut := newTestClient(t, handler, Config{
		Sessions:       &stubSessions{token: "stale"},
		OnUnauthorized: func() { hookCalls++ },
	})

	_, err := sut.GetCart(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, hookCalls)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token_expired", apiErr.Code)
	assert.Equal(t, "token expired", apiErr.Message)
}

func TestDo_ErrorEnvelopeDecoded(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "cart is empty", "code": "empty_cart"})
	})

	sut := newTestClient(t, handler, Config{})
	_, err := sut.CreateOrder(context.Background(), "nowhere 1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "empty_cart", apiErr.Code)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestDo_ErrorWithoutEnvelope_FallsBackToStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	sut := newTestClient(t, handler, Config{})
	_, err := sut.GetCart(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Empty(t, apiErr.Code)
}

func TestGetProducts_FilterQuery(t *testing.T) {
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode([]productWire{})
	})

	sut := newTestClient(t, handler, Config{})
	_, err := sut.GetProducts(context.Background(), ProductFilter{
		Categories: []string{"Mugs", "Posters"},
		PriceMin:   5,
		PriceMax:   40,
		SortBy:     "price",
		Order:      "desc",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mugs", "Posters"}, gotQuery["categories"])
	assert.Equal(t, []string{"5"}, gotQuery["price_min"])
	assert.Equal(t, []string{"40"}, gotQuery["price_max"])
	assert.Equal(t, []string{"price"}, gotQuery["sort_by"])
	assert.Equal(t, []string{"desc"}, gotQuery["order"])
}

func TestGetCart_MapsWireShapeAndRederivesTotal(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart", r.URL.Path)
		w.Write([]byte(`{
			"id": 12, "user_id": 7, "total": 9999,
			"items": [
				{"cart_id": 12, "product_id": 1, "quantity": 2,
				 "product": {"id": 1, "name": "mug", "price": 9.5, "image_url": "http://img/mug.png"}},
				{"cart_id": 12, "product_id": 2, "quantity": 1, "product": {}}
			]
		}`))
	})

	sut := newTestClient(t, handler, Config{Sessions: &stubSessions{token: "tok"}})
	cart, err := sut.GetCart(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), cart.ID)
	assert.Equal(t, int64(7), cart.UserID)
	require.Equal(t, 2, len(cart.Items))
	assert.Equal(t, "mug", cart.Items[0].Name)
	assert.Equal(t, int64(2), cart.Items[1].ProductID, "falls back to the flat product_id when product is empty")
	assert.Equal(t, 19.0, cart.Total, "server total is recomputed, not trusted")
}

func TestRemoveCartItem_Path(t *testing.T) {
	var gotMethod, gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"id": 12, "items": []}`))
	})

	sut := newTestClient(t, handler, Config{Sessions: &stubSessions{token: "tok"}})
	_, err := sut.RemoveCartItem(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/cart/items/42", gotPath)
}

func TestLogin_ReturnsUserAndToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "demo", creds.Username)
		w.Write([]byte(`{"access_token": "tok-abc", "id": 7, "username": "demo", "name": "Demo", "role": "customer", "email": "demo@example.com"}`))
	})

	sut := newTestClient(t, handler, Config{})
	user, token, err := sut.Login(context.Background(), Credentials{Username: "demo", Password: "demo123"})
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
	assert.Equal(t, int64(7), user.ID)
	assert.False(t, user.IsAdmin())
}
