package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/senkudev/otaku_shop/internal/db"
	"github.com/senkudev/otaku_shop/internal/repo"
	"github.com/senkudev/otaku_shop/internal/service"
)

var testJWTSecret = []byte("server-test-secret")

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	r := &repo.GormRepo{DB: gdb}
	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     testJWTSecret,
		RefreshSecret: []byte("server-test-refresh-secret"),
	}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:     &AuthHTTP{Svc: authSvc},
		CartHandler:     &CartHTTP{Svc: &service.CartService{Repo: r}},
		WishlistHandler: &WishlistHTTP{Svc: &service.WishlistService{Repo: r}},
		PurchaseHandler: &PurchaseHTTP{Svc: &service.PurchaseService{Repo: r}},
		ProductHandler:  &ProductHTTP{Svc: &service.ProductService{Repo: r}},
		JWTSecret:       testJWTSecret,
	})
	return e
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func loginAs(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()

	rec := do(e, http.MethodPost, "/api/v1/auth/register", "", `{
		"email": "`+email+`", "password": "correct horse",
		"first_name": "Senku", "last_name": "Ishigami", "accept_terms": true
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/v1/auth/login", "", `{
		"email": "`+email+`", "password": "correct horse"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data struct {
			Tokens struct {
				AccessToken string `json:"access_token"`
			} `json:"tokens"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.Tokens.AccessToken)
	return env.Data.Tokens.AccessToken
}

func TestRegisterLoginFlow(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/v1/auth/register", "", `{
		"email": "senku@example.com", "password": "correct horse",
		"first_name": "Senku", "last_name": "Ishigami", "accept_terms": true
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.NotContains(t, rec.Body.String(), "password_hash")

	rec = do(e, http.MethodPost, "/api/v1/auth/login", "", `{
		"email": "senku@example.com", "password": "wrong password"
	}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env = decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid email or password", env.Message)
}

func TestCartEndpoints(t *testing.T) {
	e := newTestServer(t)

	// No bearer, no cart.
	rec := do(e, http.MethodGet, "/api/v1/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := loginAs(t, e, "senku@example.com")

	rec = do(e, http.MethodPost, "/api/v1/cart/add", token, `{
		"product_id": 7, "name": "Taiju Hoodie", "price": 10, "quantity": 2, "size": "M", "color": "red"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/v1/cart/add", token, `{
		"product_id": 7, "name": "Taiju Hoodie", "price": 10, "quantity": 3, "size": "M", "color": "red"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Count)
	assert.Equal(t, 5, *env.Count)

	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var cart struct {
		TotalAmount float64 `json:"total_amount"`
		Items       []struct {
			ID       uint `json:"id"`
			Quantity int  `json:"quantity"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.InDelta(t, 50.0, cart.TotalAmount, 1e-9)

	rec = do(e, http.MethodDelete, "/api/v1/cart/remove/9999", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWishlistEndpoints(t *testing.T) {
	e := newTestServer(t)
	token := loginAs(t, e, "senku@example.com")

	rec := do(e, http.MethodPost, "/api/v1/wishlist/add", token, `{"product_id": 3, "name": "Figure", "price": 25}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/v1/wishlist/add", token, `{"product_id": 3, "name": "Figure", "price": 25}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/wishlist/check/3", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"in_wishlist":true`)
}

func TestPurchaseEndpoints(t *testing.T) {
	e := newTestServer(t)
	token := loginAs(t, e, "senku@example.com")

	rec := do(e, http.MethodPost, "/api/v1/purchases", token, `{
		"items": [{"product_id": 1, "name": "Sarcophagus Replica", "price": 599, "quantity": 1}],
		"total_amount": 599.00,
		"payment_method": "cod",
		"shipping_address": {"street": "1 Science Rd", "city": "Ishigami Village", "country": "JP"}
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)

	// Plain users cannot see the admin listing.
	rec = do(e, http.MethodGet, "/api/v1/purchases/admin/all", token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/purchases", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
}

func TestProductEndpointsPublicReadAdminWrite(t *testing.T) {
	e := newTestServer(t)
	token := loginAs(t, e, "senku@example.com")

	// Reads are public.
	rec := do(e, http.MethodGet, "/api/v1/products", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Writes are not, even for a logged-in plain user.
	rec = do(e, http.MethodPost, "/api/v1/admin/products", token, `{"name": "Cola", "price": 3.5}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodPost, "/api/v1/admin/products", "", `{"name": "Cola", "price": 3.5}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
