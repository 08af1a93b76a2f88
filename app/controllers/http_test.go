package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddock-dev/paddock/app/models"
	"github.com/paddock-dev/paddock/internal/server"
	"github.com/paddock-dev/paddock/pkg/middleware"
	"github.com/paddock-dev/paddock/pkg/testkit"
)

// setup builds the real HTTP surface on a fresh database.
func setup(t *testing.T) http.Handler {
	t.Helper()
	return server.BuildRouter(testkit.NewDB(t)).Handler()
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the "data" member of the response envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dst), "data: %s", string(env.Data))
}

type session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func register(t *testing.T, h http.Handler, email, role string) session {
	t.Helper()

	rec := do(h, testkit.FormRequest(http.MethodPost, "/register", "", map[string]string{
		"email":    email,
		"password": "stirrups88",
		"role":     role,
	}))
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var s session
	decodeData(t, rec, &s)
	require.NotEmpty(t, s.Token)
	return s
}

func listHorse(t *testing.T, h http.Handler, token string) models.Horse {
	t.Helper()

	rec := do(h, testkit.MultipartRequest(t, http.MethodPost, "/sell", token, map[string]string{
		"name":     "Thunder",
		"breed":    "Arabian",
		"age":      "7",
		"price":    "3500.00",
		"location": "Lexington, KY",
	}, nil))
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var horse models.Horse
	decodeData(t, rec, &horse)
	return horse
}

func TestRegisterAndLogin(t *testing.T) {
	h := setup(t)

	s := register(t, h, "rider@example.com", "buyer")
	assert.Equal(t, models.RoleBuyer, s.User.Role)

	// Re-registering the same email is a validation failure.
	rec := do(h, testkit.FormRequest(http.MethodPost, "/register", "", map[string]string{
		"email":    "rider@example.com",
		"password": "stirrups88",
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(h, testkit.FormRequest(http.MethodPost, "/login", "", map[string]string{
		"email":    "rider@example.com",
		"password": "stirrups88",
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)

	rec = do(h, testkit.FormRequest(http.MethodPost, "/login", "", map[string]string{
		"email":    "rider@example.com",
		"password": "wrong-password",
	}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSellRequiresSellerRole(t *testing.T) {
	h := setup(t)

	// Anonymous.
	rec := do(h, testkit.FormRequest(http.MethodPost, "/sell", "", map[string]string{"name": "Thunder"}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Buyer.
	buyer := register(t, h, "buyer@example.com", "buyer")
	rec = do(h, testkit.FormRequest(http.MethodPost, "/sell", buyer.Token, map[string]string{"name": "Thunder"}))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Seller.
	seller := register(t, h, "seller@example.com", "seller")
	horse := listHorse(t, h, seller.Token)
	assert.Equal(t, models.HorseAvailable, horse.Status)
}

func TestMarketplaceBrowsing(t *testing.T) {
	h := setup(t)

	seller := register(t, h, "seller@example.com", "seller")
	horse := listHorse(t, h, seller.Token)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var horses []models.Horse
	decodeData(t, rec, &horses)
	require.Len(t, horses, 1)
	assert.Equal(t, horse.ID, horses[0].ID)

	rec = do(h, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/horse/%d", horse.ID), nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, httptest.NewRequest(http.MethodGet, "/horse/9999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutOverHTTP(t *testing.T) {
	h := setup(t)

	seller := register(t, h, "seller@example.com", "seller")
	buyer := register(t, h, "buyer@example.com", "buyer")
	rival := register(t, h, "rival@example.com", "buyer")
	horse := listHorse(t, h, seller.Token)

	target := fmt.Sprintf("/checkout/%d", horse.ID)
	shipping := map[string]string{
		"full_name": "Bo Okafor",
		"address":   "12 Paddock Lane, Lexington, KY",
		"phone":     "555-0142",
	}

	// Checkout requires a session.
	rec := do(h, testkit.FormRequest(http.MethodPost, target, "", shipping))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The summary view shows the listing.
	rec = do(h, testkit.FormRequest(http.MethodGet, target, buyer.Token, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// A seller cannot buy their own horse.
	rec = do(h, testkit.FormRequest(http.MethodPost, target, seller.Token, shipping))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The buyer wins.
	rec = do(h, testkit.FormRequest(http.MethodPost, target, buyer.Token, shipping))
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var order models.Order
	decodeData(t, rec, &order)
	assert.Equal(t, models.OrderPaid, order.Status)
	assert.Equal(t, 3500.00, order.PriceAtPurchase)

	// The rival is one step too late.
	rec = do(h, testkit.FormRequest(http.MethodPost, target, rival.Token, shipping))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Orders are private to their buyer (and admins).
	orderTarget := fmt.Sprintf("/order/%d", order.ID)
	rec = do(h, testkit.FormRequest(http.MethodGet, orderTarget, buyer.Token, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, testkit.FormRequest(http.MethodGet, orderTarget, rival.Token, nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(h, testkit.FormRequest(http.MethodGet, "/my-orders", buyer.Token, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var mine []models.Order
	decodeData(t, rec, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, horse.ID, mine[0].HorseID)
}

func TestEditAndDeleteOverHTTP(t *testing.T) {
	h := setup(t)

	seller := register(t, h, "seller@example.com", "seller")
	buyer := register(t, h, "buyer@example.com", "buyer")
	horse := listHorse(t, h, seller.Token)

	editTarget := fmt.Sprintf("/edit/%d", horse.ID)
	fields := map[string]string{
		"name":  "Thunderbolt",
		"breed": "Arabian",
		"age":   "8",
		"price": "3750",
	}

	rec := do(h, testkit.FormRequest(http.MethodPost, editTarget, buyer.Token, fields))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(h, testkit.FormRequest(http.MethodPost, editTarget, seller.Token, fields))
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var updated models.Horse
	decodeData(t, rec, &updated)
	assert.Equal(t, "Thunderbolt", updated.Name)

	rec = do(h, testkit.FormRequest(http.MethodPost, fmt.Sprintf("/delete/%d", horse.ID), seller.Token, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/horse/%d", horse.ID), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionCookieAuthentication(t *testing.T) {
	h := setup(t)

	seller := register(t, h, "seller@example.com", "seller")

	req := httptest.NewRequest(http.MethodGet, "/my-listings", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: seller.Token})
	rec := do(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	h := setup(t)

	buyer := register(t, h, "buyer@example.com", "buyer")

	rec := do(h, testkit.FormRequest(http.MethodGet, "/logout", buyer.Token, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// The revoked token no longer opens protected routes.
	rec = do(h, testkit.FormRequest(http.MethodGet, "/my-orders", buyer.Token, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
