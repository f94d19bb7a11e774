package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kplat_back_end/internal/cart"
	"kplat_back_end/internal/middleware"
	"kplat_back_end/internal/models"
)

// memStore : Store en mémoire, les handlers checkout se testent sans Redis.
type memStore struct {
	carts map[string]cart.Cart
}

func newMemStore() *memStore {
	return &memStore{carts: map[string]cart.Cart{}}
}

func (s *memStore) Load(ctx context.Context, clientID, restaurantID string) (cart.Cart, bool, error) {
	c, ok := s.carts[clientID+":"+restaurantID]
	if !ok {
		return cart.New(restaurantID), false, nil
	}
	return c, true, nil
}

func (s *memStore) Save(ctx context.Context, clientID, restaurantID string, c cart.Cart) error {
	s.carts[clientID+":"+restaurantID] = c
	return nil
}

func (s *memStore) Delete(ctx context.Context, clientID, restaurantID string) error {
	delete(s.carts, clientID+":"+restaurantID)
	return nil
}

func checkoutRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	Init(store, cart.NewHandoffStore([]byte("test-secret")))

	r := gin.New()
	r.Use(middleware.ClientSession())
	r.POST("/api/checkout/start", StartCheckout)
	r.GET("/api/checkout/session", CheckoutSession)
	r.POST("/api/checkout/field", CheckoutField)
	r.POST("/api/checkout/submit", SubmitCheckout)
	return r, store
}

type browser struct {
	cookies map[string]*http.Cookie
}

func newBrowser() *browser {
	return &browser{cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return w
}

func seedCart(store *memStore, clientID string) {
	c := cart.New("mdbbq")
	c = cart.Apply(c, cart.AddItem{Item: models.MenuItem{
		ID: "bulgogi", RestaurantID: "mdbbq", Name: "Korean Beef Bulgogi", UnitPrice: 24.99,
	}})
	c = cart.Apply(c, cart.IncreaseQuantity{ItemID: "bulgogi"})
	store.carts[clientID+":mdbbq"] = c
}

func clientID(b *browser) string {
	c, ok := b.cookies[middleware.ClientIDCookie]
	if !ok {
		return ""
	}
	return c.Value
}

func TestStartCheckout_EmptyCartRefused(t *testing.T) {
	r, _ := checkoutRouter(t)
	b := newBrowser()

	w := b.do(r, http.MethodPost, "/api/checkout/start", gin.H{"restaurant_id": "mdbbq"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Panier vide")
}

func TestCheckoutSession_ConsumesHandoffOnce(t *testing.T) {
	r, store := checkoutRouter(t)
	b := newBrowser()

	// premier passage pour obtenir le cookie client
	b.do(r, http.MethodPost, "/api/checkout/start", gin.H{"restaurant_id": "mdbbq"})
	seedCart(store, clientID(b))

	w := b.do(r, http.MethodPost, "/api/checkout/start", gin.H{"restaurant_id": "mdbbq"})
	require.Equal(t, http.StatusOK, w.Code)

	// première lecture : le snapshot arrive avec le récapitulatif
	w = b.do(r, http.MethodGet, "/api/checkout/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var session struct {
		RestaurantID string            `json:"restaurant_id"`
		Items        []models.CartLine `json:"items"`
		Summary      models.OrderSummary
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, "mdbbq", session.RestaurantID)
	require.Len(t, session.Items, 1)
	assert.Equal(t, 2, session.Items[0].Quantity)

	// le panier vivant n'a pas bougé
	assert.Len(t, store.carts[clientID(b)+":mdbbq"].Lines, 1)

	// relecture (refresh) : la copie de travail répond encore
	w = b.do(r, http.MethodGet, "/api/checkout/session", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutSession_WithoutHandoffRedirects(t *testing.T) {
	r, _ := checkoutRouter(t)
	b := newBrowser()

	w := b.do(r, http.MethodGet, "/api/checkout/session", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/choose", resp["redirect"])
}

func TestCheckoutField_NormalizesInput(t *testing.T) {
	r, store := checkoutRouter(t)
	b := newBrowser()

	b.do(r, http.MethodPost, "/api/checkout/start", gin.H{"restaurant_id": "mdbbq"})
	seedCart(store, clientID(b))
	b.do(r, http.MethodPost, "/api/checkout/start", gin.H{"restaurant_id": "mdbbq"})
	require.Equal(t, http.StatusOK, b.do(r, http.MethodGet, "/api/checkout/session", nil).Code)

	w := b.do(r, http.MethodPost, "/api/checkout/field", gin.H{
		"field": "card_number",
		"value": "4111111111111111",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "4111 1111 1111 1111", resp["value"])

	// la saisie survit à la relecture de la session
	w = b.do(r, http.MethodGet, "/api/checkout/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "4111 1111 1111 1111")
}

func TestSubmitCheckout_InvalidFormKeepsSession(t *testing.T) {
	r, store := checkoutRouter(t)
	b := newBrowser()

	b.do(r, http.MethodPost, "/api/checkout/start", gin.H{"restaurant_id": "mdbbq"})
	seedCart(store, clientID(b))
	b.do(r, http.MethodPost, "/api/checkout/start", gin.H{"restaurant_id": "mdbbq"})
	require.Equal(t, http.StatusOK, b.do(r, http.MethodGet, "/api/checkout/session", nil).Code)

	// formulaire incomplet : refus champ par champ, rien n'est consommé
	w := b.do(r, http.MethodPost, "/api/checkout/submit", gin.H{
		"name":  "Kim",
		"email": "pas-un-email",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Errors["email"])
	assert.NotEmpty(t, resp.Errors["phone"])

	// la session de checkout est toujours là
	assert.Equal(t, http.StatusOK, b.do(r, http.MethodGet, "/api/checkout/session", nil).Code)
	// et le panier vivant aussi
	assert.Len(t, store.carts[clientID(b)+":mdbbq"].Lines, 1)
}
