package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

type OrderItem struct {
	ItemID     string `json:"item_id"`
	ItemNumber string `json:"item_number"`
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
	Price      int64  `json:"price"`
}

type OrderEvent struct {
	ID        string `json:"id"`
	EventName string `json:"event_name"`
}

type Order struct {
	ID               string      `json:"id"`
	OrderNumber      string      `json:"order_number"`
	ApplyEvent       *OrderEvent `json:"apply_event"`
	Items            []OrderItem `json:"order_items"`
	TotalAmount      int64       `json:"total_amount"`
	PaymentMethod    string      `json:"payment_method"`
	SubPaymentMethod string      `json:"sub_payment_method"`
	Status           string      `json:"status"`
	OrderDate        string      `json:"order_date"`
}

type OrderItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

type OrderCreateRequest struct {
	ApplyEventID     string             `json:"apply_event_id"`
	OrderItems       []OrderItemRequest `json:"order_items"`
	TotalAmount      int64              `json:"total_amount"`
	PaymentMethod    string             `json:"payment_method"`
	SubPaymentMethod string             `json:"sub_payment_method,omitempty"`
}

func mustDecodeOrder(t *testing.T, body []byte) Order {
	t.Helper()
	var v Order
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(Order) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeOrders(t *testing.T, body []byte) []Order {
	t.Helper()
	var v []Order
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal([]Order) failed: %v body=%s", err, string(body))
	}
	return v
}

func placeOrder(t *testing.T, c *TestClient, ctx context.Context, access string, req OrderCreateRequest) Order {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/orders", access, mustMarshal(t, req))
	requireStatus(t, resp, http.StatusCreated, body)
	return mustDecodeOrder(t, body)
}

// 商品と催事を作って注文できる状態まで整える
func setupEventWithItem(t *testing.T, c *TestClient, ctx context.Context, access string, stock int64) (Item, Event) {
	t.Helper()

	item := createItem(t, c, ctx, access, ItemSaveRequest{
		Name: "Order Beans", Category: "coffee", StockQuantity: stock, Price: 1000,
	})
	ev := createEvent(t, c, ctx, access, EventSaveRequest{
		EventName: "Order Popup", EventDate: eventDate(),
		EventItems: []EventItemRequest{{ItemID: item.ID, Quantity: stock}},
	})
	return item, ev
}

func Test_Orders_FullFlow_NumberFormat_StatusAndStock(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := registerAndLogin(t, c, ctx)

	item, ev := setupEventWithItem(t, c, ctx, access, 10)

	order := placeOrder(t, c, ctx, access, OrderCreateRequest{
		ApplyEventID:  ev.ID,
		OrderItems:    []OrderItemRequest{{ItemID: item.ID, Quantity: 4, Price: 1000}},
		TotalAmount:   4000,
		PaymentMethod: "cash",
	})

	//ORD-20250601-0042 のような形式であること
	if !strings.HasPrefix(order.OrderNumber, "ORD-") || len(order.OrderNumber) != len("ORD-20250601-0042") {
		t.Fatalf("unexpected order_number format: %s", order.OrderNumber)
	}
	if order.Status != "pending" {
		t.Fatalf("new order should be pending: %s", order.Status)
	}

	//pendingの間はavailable_stockは減らない
	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/apply-events", access, nil)
	requireStatus(t, resp, http.StatusOK, body)
	events := mustDecodeEvents(t, body)
	if events[0].EventItems[0].Item.AvailableStock != 10 {
		t.Fatalf("pending order should not reduce available_stock: got=%d", events[0].EventItems[0].Item.AvailableStock)
	}

	//completedにするとavailable_stockが減る
	patch := map[string]string{"status": "completed"}
	resp, body = c.doJSON(ctx, t, http.MethodPatch, "/api/orders/"+order.ID, access, mustMarshal(t, patch))
	requireStatus(t, resp, http.StatusOK, body)
	if got := mustDecodeOrder(t, body); got.Status != "completed" {
		t.Fatalf("status should be completed: %s", got.Status)
	}

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/apply-events", access, nil)
	requireStatus(t, resp, http.StatusOK, body)
	events = mustDecodeEvents(t, body)
	if events[0].EventItems[0].Item.AvailableStock != 6 {
		t.Fatalf("available_stock should be 6 after completion: got=%d", events[0].EventItems[0].Item.AvailableStock)
	}

	//sales_quantityはstatus不問なので注文直後から数える
	for _, it := range listItems(t, c, ctx, access) {
		if it.ID == item.ID && it.SalesQuantity != 4 {
			t.Fatalf("sales_quantity should be 4: got=%d", it.SalesQuantity)
		}
	}

	//注文一覧に含まれること
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/orders", access, nil)
	requireStatus(t, resp, http.StatusOK, body)
	found := false
	for _, o := range mustDecodeOrders(t, body) {
		if o.ID == order.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("order not found in list: %s", order.ID)
	}
}

func Test_Orders_PaymentMethodOtherRequiresSub(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := registerAndLogin(t, c, ctx)

	item, ev := setupEventWithItem(t, c, ctx, access, 5)

	req := OrderCreateRequest{
		ApplyEventID:  ev.ID,
		OrderItems:    []OrderItemRequest{{ItemID: item.ID, Quantity: 1, Price: 1000}},
		TotalAmount:   1000,
		PaymentMethod: "other",
	}
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/orders", access, mustMarshal(t, req))
	requireStatus(t, resp, http.StatusBadRequest, body)

	//kakaopayを付ければ通る
	req.SubPaymentMethod = "kakaopay"
	order := placeOrder(t, c, ctx, access, req)
	if order.SubPaymentMethod != "kakaopay" {
		t.Fatalf("sub_payment_method mismatch: %s", order.SubPaymentMethod)
	}
}

// 在庫を超える注文も通る（予約はしない設計）
func Test_Orders_OverStockIsAccepted(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := registerAndLogin(t, c, ctx)

	item, ev := setupEventWithItem(t, c, ctx, access, 3)

	order := placeOrder(t, c, ctx, access, OrderCreateRequest{
		ApplyEventID:  ev.ID,
		OrderItems:    []OrderItemRequest{{ItemID: item.ID, Quantity: 100, Price: 1000}},
		TotalAmount:   100000,
		PaymentMethod: "card",
	})

	//completedにしてもavailable_stockは0で止まる（負にならない）
	patch := map[string]string{"status": "completed"}
	resp, body := c.doJSON(ctx, t, http.MethodPatch, "/api/orders/"+order.ID, access, mustMarshal(t, patch))
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/apply-events", access, nil)
	requireStatus(t, resp, http.StatusOK, body)
	events := mustDecodeEvents(t, body)
	if events[0].EventItems[0].Item.AvailableStock != 0 {
		t.Fatalf("available_stock should clamp at 0: got=%d", events[0].EventItems[0].Item.AvailableStock)
	}
}

// 催事を消しても注文は残り、apply_event=nullになる
func Test_Orders_SurviveEventDeletion(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := registerAndLogin(t, c, ctx)

	item, ev := setupEventWithItem(t, c, ctx, access, 5)

	order := placeOrder(t, c, ctx, access, OrderCreateRequest{
		ApplyEventID:  ev.ID,
		OrderItems:    []OrderItemRequest{{ItemID: item.ID, Quantity: 2, Price: 1000}},
		TotalAmount:   2000,
		PaymentMethod: "transfer",
	})

	resp, body := c.doJSON(ctx, t, http.MethodDelete, "/api/apply-events/"+ev.ID, access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/orders", access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	for _, o := range mustDecodeOrders(t, body) {
		if o.ID != order.ID {
			continue
		}
		if o.ApplyEvent != nil {
			t.Fatalf("apply_event should be null after deletion: %v", o.ApplyEvent)
		}
		//スナップショットはそのまま
		if o.TotalAmount != 2000 || o.Items[0].Price != 1000 {
			t.Fatalf("snapshot should survive event deletion: %v", o)
		}
		return
	}
	t.Fatalf("order %s not found after event deletion", order.ID)
}

// 他人の注文のstatusは変えられない（404）
func Test_Orders_ForeignStatusUpdateIs404(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	accessA := registerAndLogin(t, c, ctx)
	accessB := registerAndLogin(t, c, ctx)

	item, ev := setupEventWithItem(t, c, ctx, accessA, 5)

	order := placeOrder(t, c, ctx, accessA, OrderCreateRequest{
		ApplyEventID:  ev.ID,
		OrderItems:    []OrderItemRequest{{ItemID: item.ID, Quantity: 1, Price: 1000}},
		TotalAmount:   1000,
		PaymentMethod: "cash",
	})

	patch := map[string]string{"status": "cancelled"}
	resp, body := c.doJSON(ctx, t, http.MethodPatch, "/api/orders/"+order.ID, accessB, mustMarshal(t, patch))
	requireStatus(t, resp, http.StatusNotFound, body)
}
