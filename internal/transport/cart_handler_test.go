package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"hallever/internal/domain"
	"hallever/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type memProductStore struct {
	*memStore[*domain.Product]
}

func (m *memProductStore) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Product
	for _, p := range m.docs {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

type noopImageStore struct{}

func (noopImageStore) UploadImage(ctx context.Context, r io.Reader, contentType string) (string, error) {
	return "https://store.example.com/media/x.jpg", nil
}

func (noopImageStore) UploadFile(ctx context.Context, r io.Reader, contentType string) (string, error) {
	return "https://store.example.com/files/x.pdf", nil
}

func (noopImageStore) Delete(ctx context.Context, rawURL string) {}

func newCartRouter(t *testing.T) (*chi.Mux, *memStore[*domain.Order]) {
	t.Helper()

	products := &memProductStore{memStore: &memStore[*domain.Product]{}}
	seeded := &domain.Product{Name: "Fairy Light", Price: 100, Images: []string{"https://img/p1"}}
	seeded.SetDocumentID("p1")
	products.docs = append(products.docs, seeded)

	orders := &memStore[*domain.Order]{}

	productSvc := service.NewProductService(products, noopImageStore{}, zap.NewNop())
	orderSvc := service.NewOrderService(orders, zap.NewNop())
	cartSvc := service.NewCartService(newMemCartStore(), productSvc, orderSvc, zap.NewNop())

	r := chi.NewRouter()
	NewCartHandler(cartSvc, zap.NewNop()).RegisterRoutes(r)
	return r, orders
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body struct {
		Status string                 `json:"status"`
		Data   map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if body.Status != "success" {
		t.Fatalf("expected success envelope, got %s", w.Body.String())
	}
	return body.Data
}

func TestCartAddAndGet(t *testing.T) {
	r, _ := newCartRouter(t)

	w := doJSON(t, r, "POST", "/api/routes/cart/g1/items", AddCartItemRequest{ProductID: "p1", Quantity: 2})
	if w.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "GET", "/api/routes/cart/g1", nil)
	data := decodeEnvelope(t, w)
	items, ok := data["items"].([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("expected one cart line, got %v", data)
	}
	line := items[0].(map[string]interface{})
	if line["quantity"].(float64) != 2 || line["price"].(float64) != 100 {
		t.Errorf("unexpected line %v", line)
	}
}

func TestCartAddUnknownProductIs404(t *testing.T) {
	r, _ := newCartRouter(t)

	w := doJSON(t, r, "POST", "/api/routes/cart/g1/items", AddCartItemRequest{ProductID: "ghost", Quantity: 1})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["message"] == "" {
		t.Errorf("expected failure envelope with message, got %s", w.Body.String())
	}
}

func TestCartQuantityZeroRemovesLine(t *testing.T) {
	r, _ := newCartRouter(t)

	doJSON(t, r, "POST", "/api/routes/cart/g1/items", AddCartItemRequest{ProductID: "p1", Quantity: 1})
	w := doJSON(t, r, "PUT", "/api/routes/cart/g1/items/p1", UpdateCartItemRequest{Quantity: 0})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeEnvelope(t, doJSON(t, r, "GET", "/api/routes/cart/g1", nil))
	if items, ok := data["items"].([]interface{}); ok && len(items) != 0 {
		t.Errorf("expected empty cart, got %v", items)
	}
}

func TestCartCheckoutCreatesOrderAndClears(t *testing.T) {
	r, orders := newCartRouter(t)

	doJSON(t, r, "POST", "/api/routes/cart/g1/items", AddCartItemRequest{ProductID: "p1", Quantity: 2})

	w := doJSON(t, r, "POST", "/api/routes/cart/g1/checkout", CheckoutRequest{
		FormData: domain.OrderForm{FullName: "Asha", Email: "a@example.com", Phone: "1"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeEnvelope(t, w)
	if data["totalAmount"].(float64) != 200 {
		t.Errorf("expected order total 200, got %v", data["totalAmount"])
	}
	if len(orders.docs) != 1 {
		t.Fatalf("expected one stored order, got %d", len(orders.docs))
	}

	cartData := decodeEnvelope(t, doJSON(t, r, "GET", "/api/routes/cart/g1", nil))
	if items, ok := cartData["items"].([]interface{}); ok && len(items) != 0 {
		t.Errorf("expected cart cleared after checkout, got %v", items)
	}
}

func TestCartCheckoutEmptyIs400(t *testing.T) {
	r, _ := newCartRouter(t)

	w := doJSON(t, r, "POST", "/api/routes/cart/empty/checkout", CheckoutRequest{
		FormData: domain.OrderForm{FullName: "A", Email: "a@example.com", Phone: "1"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty checkout, got %d", w.Code)
	}
}
