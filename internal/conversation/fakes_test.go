package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"order_bot/internal/models"
	"order_bot/internal/session"

	"go.uber.org/zap"
)

type fakeCatalog struct {
	products []models.Product
	panics   bool
}

func (f *fakeCatalog) FetchMenu(ctx context.Context) []models.Product {
	if f.panics {
		panic("catalog exploded")
	}
	return f.products
}

type fakeOrders struct {
	mu        sync.Mutex
	saved     []*models.Order
	saveErr   error
	paidPhone []string
}

func (f *fakeOrders) SaveOrder(ctx context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, order)
	return nil
}

func (f *fakeOrders) ListOrders(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Order, 0, len(f.saved))
	for _, o := range f.saved {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrders) UpdateOrderStatus(ctx context.Context, phone string, status models.OrderStatus) (bool, error) {
	return false, errors.New("not implemented")
}

func (f *fakeOrders) MarkPaymentReceived(ctx context.Context, phone string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paidPhone = append(f.paidPhone, phone)
	return true, nil
}

type sentMessage struct {
	phone string
	body  string
}

type fakeMessenger struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (f *fakeMessenger) SendMessage(ctx context.Context, phone, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{phone: phone, body: message})
	return f.err
}

func (f *fakeMessenger) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].body
}

func (f *fakeMessenger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func testCatalog() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Hamburguesa", Price: 10, Category: "Comidas", Available: true},
		{ID: "2", Name: "Papas", Price: 5, Category: "Comidas", Available: true},
		{ID: "3", Name: "Gaseosa", Price: 3, Category: "Bebidas", Available: true},
	}
}

type harness struct {
	engine    *Engine
	sessions  *session.MemoryStore
	catalog   *fakeCatalog
	orders    *fakeOrders
	messenger *fakeMessenger
}

const customer = "+5491112345678"

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		sessions:  session.NewMemoryStore(),
		catalog:   &fakeCatalog{products: testCatalog()},
		orders:    &fakeOrders{},
		messenger: &fakeMessenger{},
	}
	h.engine = NewEngine(h.sessions, h.catalog, h.orders, h.messenger, zap.NewNop(), Options{
		BusinessName:       "La Esquina",
		PaymentLinkBaseURL: "https://pay.example.com/checkout",
		PaymentAlias:       "la.esquina.mp",
	})
	h.engine.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return h
}

func (h *harness) say(t *testing.T, body string) error {
	t.Helper()
	return h.engine.HandleInbound(context.Background(), Inbound{
		From:        "whatsapp:" + customer,
		ProfileName: "Ana",
		Body:        body,
	})
}

func (h *harness) session(t *testing.T) *models.Session {
	t.Helper()
	sess, err := h.sessions.Load(context.Background(), customer)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return sess
}
