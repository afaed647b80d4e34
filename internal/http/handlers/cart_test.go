package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tilemart/storefront-backend/internal/data/repos/catalog"
	"github.com/tilemart/storefront-backend/internal/data/repos/testutil"
	types "github.com/tilemart/storefront-backend/internal/domain"
	"github.com/tilemart/storefront-backend/internal/http/middleware"
	"github.com/tilemart/storefront-backend/internal/services"
)

type cartTestEnv struct {
	router  *gin.Engine
	product *types.Product
	cookie  *http.Cookie
}

func newCartTestEnv(t *testing.T) *cartTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	productRepo := catalog.NewProductRepo(gdb, log)
	product := testutil.SeedProduct(t, context.Background(), gdb, "TIL-001", testutil.Price(t, "12.50"))

	cartService := services.NewCartService(log, services.NewMemoryCartStore(), productRepo)
	h := NewCartHandler(cartService)

	r := gin.New()
	r.Use(middleware.AttachRequestContext())
	r.GET("/api/cart", h.GetCart)
	r.POST("/api/cart/items", h.AddItem)
	r.PATCH("/api/cart/items/:productId", h.UpdateItem)
	r.DELETE("/api/cart/items/:productId", h.RemoveItem)
	r.DELETE("/api/cart", h.ClearCart)

	return &cartTestEnv{router: r, product: product}
}

func (e *cartTestEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			e.cookie = ck
		}
	}
	return w
}

type cartBody struct {
	Items []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var body cartBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
	return body
}

func TestCartEndpointsMintSessionCookie(t *testing.T) {
	env := newCartTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.cookie == nil {
		t.Fatalf("expected %s cookie to be minted", middleware.SessionCookie)
	}
	if _, err := uuid.Parse(env.cookie.Value); err != nil {
		t.Fatalf("cookie is not a uuid: %q", env.cookie.Value)
	}

	body := decodeCart(t, w)
	if len(body.Items) != 0 || body.Total != "0.00" {
		t.Fatalf("expected empty cart, got %+v", body)
	}
}

func TestCartAddUpdateRemoveFlow(t *testing.T) {
	env := newCartTestEnv(t)
	pid := env.product.ID.String()

	w := env.do(t, http.MethodPost, "/api/cart/items", gin.H{"product_id": pid, "quantity": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeCart(t, w)
	if body.ItemCount != 2 || body.Total != "25.00" {
		t.Fatalf("unexpected cart after add: %+v", body)
	}

	// Same cookie, cart survives across requests.
	w = env.do(t, http.MethodGet, "/api/cart", nil)
	if body = decodeCart(t, w); body.ItemCount != 2 {
		t.Fatalf("cart did not persist: %+v", body)
	}

	w = env.do(t, http.MethodPatch, "/api/cart/items/"+pid, gin.H{"quantity": 5})
	if body = decodeCart(t, w); body.ItemCount != 5 {
		t.Fatalf("update failed: %+v", body)
	}

	w = env.do(t, http.MethodDelete, "/api/cart/items/"+pid, nil)
	if body = decodeCart(t, w); body.ItemCount != 0 {
		t.Fatalf("remove failed: %+v", body)
	}
}

func TestCartClear(t *testing.T) {
	env := newCartTestEnv(t)

	env.do(t, http.MethodPost, "/api/cart/items", gin.H{"product_id": env.product.ID.String(), "quantity": 3})
	w := env.do(t, http.MethodDelete, "/api/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}

	w = env.do(t, http.MethodGet, "/api/cart", nil)
	if body := decodeCart(t, w); body.ItemCount != 0 {
		t.Fatalf("expected empty cart after clear: %+v", body)
	}
}

func TestCartAddRejectsBadInput(t *testing.T) {
	env := newCartTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/cart/items", gin.H{"product_id": "not-a-uuid"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/cart/items", gin.H{"product_id": uuid.NewString()})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCartSessionsDoNotLeak(t *testing.T) {
	env := newCartTestEnv(t)
	env.do(t, http.MethodPost, "/api/cart/items", gin.H{"product_id": env.product.ID.String(), "quantity": 1})

	// A fresh client with no cookie gets its own empty cart.
	env.cookie = nil
	w := env.do(t, http.MethodGet, "/api/cart", nil)
	if body := decodeCart(t, w); body.ItemCount != 0 {
		t.Fatalf("expected isolated session, got %+v", body)
	}
}

func TestCartItemRouteRejectsMalformedID(t *testing.T) {
	env := newCartTestEnv(t)
	for _, method := range []string{http.MethodPatch, http.MethodDelete} {
		var payload any
		if method == http.MethodPatch {
			payload = gin.H{"quantity": 1}
		}
		w := env.do(t, method, "/api/cart/items/garbage", payload)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", method, w.Code)
		}
	}
}
