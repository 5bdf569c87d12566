package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

type EventItemDetail struct {
	ID             string `json:"id"`
	ItemNumber     string `json:"item_number"`
	Name           string `json:"name"`
	StockQuantity  int64  `json:"stock_quantity"`
	AvailableStock int64  `json:"available_stock"`
}

type EventItem struct {
	Item     *EventItemDetail `json:"item"`
	Quantity int64            `json:"quantity"`
}

type Event struct {
	ID         string      `json:"id"`
	EventName  string      `json:"event_name"`
	EventDate  string      `json:"event_date"`
	EventItems []EventItem `json:"event_items"`
}

type EventItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

type EventSaveRequest struct {
	EventName  string             `json:"event_name"`
	EventDate  string             `json:"event_date"`
	EventItems []EventItemRequest `json:"event_items"`
}

func mustDecodeEvent(t *testing.T, body []byte) Event {
	t.Helper()
	var v Event
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(Event) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeEvents(t *testing.T, body []byte) []Event {
	t.Helper()
	var v []Event
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal([]Event) failed: %v body=%s", err, string(body))
	}
	return v
}

func createEvent(t *testing.T, c *TestClient, ctx context.Context, access string, req EventSaveRequest) Event {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/apply-events", access, mustMarshal(t, req))
	requireStatus(t, resp, http.StatusCreated, body)
	return mustDecodeEvent(t, body)
}

func eventDate() string {
	return time.Now().AddDate(0, 1, 0).UTC().Format(time.RFC3339)
}

func Test_Events_CreateAndListNewestFirst(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := registerAndLogin(t, c, ctx)

	item := createItem(t, c, ctx, access, ItemSaveRequest{
		Name: "Event Beans", Category: "coffee", StockQuantity: 20, Price: 800,
	})

	first := createEvent(t, c, ctx, access, EventSaveRequest{
		EventName: "First Popup", EventDate: eventDate(),
		EventItems: []EventItemRequest{{ItemID: item.ID, Quantity: 5}},
	})
	second := createEvent(t, c, ctx, access, EventSaveRequest{
		EventName: "Second Popup", EventDate: eventDate(),
		EventItems: []EventItemRequest{{ItemID: item.ID, Quantity: 3}},
	})

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/apply-events", access, nil)
	requireStatus(t, resp, http.StatusOK, body)
	events := mustDecodeEvents(t, body)

	if len(events) < 2 {
		t.Fatalf("expected at least 2 events, got %d", len(events))
	}

	//新しい順
	if events[0].ID != second.ID || events[1].ID != first.ID {
		t.Fatalf("events not newest-first: got=[%s %s]", events[0].ID, events[1].ID)
	}

	//注文がないのでavailable_stockは名目在庫そのまま
	if events[0].EventItems[0].Item == nil {
		t.Fatalf("event item should be resolved: %v", events[0].EventItems[0])
	}
	if events[0].EventItems[0].Item.AvailableStock != 20 {
		t.Fatalf("available_stock should be 20, got=%d", events[0].EventItems[0].Item.AvailableStock)
	}
}

// 他人の商品を催事に割り当てようとすると400
func Test_Events_ForeignItemRejected(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	accessA := registerAndLogin(t, c, ctx)
	accessB := registerAndLogin(t, c, ctx)

	item := createItem(t, c, ctx, accessA, ItemSaveRequest{
		Name: "A's Beans", Category: "coffee", StockQuantity: 10, Price: 800,
	})

	req := EventSaveRequest{
		EventName: "B's Popup", EventDate: eventDate(),
		EventItems: []EventItemRequest{{ItemID: item.ID, Quantity: 1}},
	}
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/apply-events", accessB, mustMarshal(t, req))
	requireStatus(t, resp, http.StatusBadRequest, body)
}

// 商品を消しても催事の明細行は残り、item=nullになる
func Test_Events_DeletedItemShowsAsNull(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := registerAndLogin(t, c, ctx)

	item := createItem(t, c, ctx, access, ItemSaveRequest{
		Name: "Doomed", Category: "goods", StockQuantity: 5, Price: 300,
	})
	ev := createEvent(t, c, ctx, access, EventSaveRequest{
		EventName: "Orphan Popup", EventDate: eventDate(),
		EventItems: []EventItemRequest{{ItemID: item.ID, Quantity: 2}},
	})

	resp, body := c.doJSON(ctx, t, http.MethodDelete, "/api/items/"+item.ID, access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/apply-events", access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	for _, got := range mustDecodeEvents(t, body) {
		if got.ID != ev.ID {
			continue
		}
		if len(got.EventItems) != 1 {
			t.Fatalf("event items should survive item deletion: %v", got.EventItems)
		}
		if got.EventItems[0].Item != nil {
			t.Fatalf("deleted item should resolve to null: %v", got.EventItems[0].Item)
		}
		if got.EventItems[0].Quantity != 2 {
			t.Fatalf("quantity should survive: got=%d", got.EventItems[0].Quantity)
		}
		return
	}
	t.Fatalf("event %s not found in list", ev.ID)
}

// 更新は全置き換え
func Test_Events_UpdateReplacesItems(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := registerAndLogin(t, c, ctx)

	itemA := createItem(t, c, ctx, access, ItemSaveRequest{
		Name: "Keep", Category: "coffee", StockQuantity: 10, Price: 500,
	})
	itemB := createItem(t, c, ctx, access, ItemSaveRequest{
		Name: "Swap In", Category: "coffee", StockQuantity: 10, Price: 700,
	})

	ev := createEvent(t, c, ctx, access, EventSaveRequest{
		EventName: "Replace Me", EventDate: eventDate(),
		EventItems: []EventItemRequest{{ItemID: itemA.ID, Quantity: 4}},
	})

	update := EventSaveRequest{
		EventName: "Replaced", EventDate: eventDate(),
		EventItems: []EventItemRequest{{ItemID: itemB.ID, Quantity: 9}},
	}
	resp, body := c.doJSON(ctx, t, http.MethodPut, "/api/apply-events/"+ev.ID, access, mustMarshal(t, update))
	requireStatus(t, resp, http.StatusOK, body)

	updated := mustDecodeEvent(t, body)
	if updated.EventName != "Replaced" {
		t.Fatalf("event_name not updated: %s", updated.EventName)
	}
	if len(updated.EventItems) != 1 || updated.EventItems[0].Item == nil || updated.EventItems[0].Item.ID != itemB.ID {
		t.Fatalf("items should be fully replaced: %v", updated.EventItems)
	}
	if updated.EventItems[0].Quantity != 9 {
		t.Fatalf("quantity mismatch: got=%d", updated.EventItems[0].Quantity)
	}
}
