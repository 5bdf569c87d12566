package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/j99way99/my-inv-app/internal/domain/model"
	repo "github.com/j99way99/my-inv-app/internal/repository"
)

type EventUsecase struct {
	events repo.EventRepository
	items  repo.ItemRepository
	orders repo.OrderRepository
	idGen  IDGenerator
	clock  Clock
}

// DI
func NewEventUsecase(
	events repo.EventRepository,
	items repo.ItemRepository,
	orders repo.OrderRepository,
	idGen IDGenerator,
	clock Clock,
) *EventUsecase {
	return &EventUsecase{
		events: events,
		items:  items,
		orders: orders,
		idGen:  idGen,
		clock:  clock,
	}
}

type EventItemInput struct {
	ItemID   string
	Quantity int64
}

type SaveEventInput struct {
	EventName string
	EventDate time.Time
	Items     []EventItemInput
}

// 催事明細の出力。Itemは弱参照の解決結果で、商品が消されていればnil。
type EventItemOutput struct {
	Item     *EventItemDetail `json:"item"`
	Quantity int64            `json:"quantity"`
}

type EventItemDetail struct {
	ID            string `json:"id"`
	ItemNumber    string `json:"item_number"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	StockQuantity int64  `json:"stock_quantity"`
	Price         int64  `json:"price"`

	//completedの注文だけを差し引いた残り（0未満にはならない）
	AvailableStock int64 `json:"available_stock"`
}

type EventOutput struct {
	ID         string            `json:"id"`
	EventName  string            `json:"event_name"`
	EventDate  time.Time         `json:"event_date"`
	EventItems []EventItemOutput `json:"event_items"`
	CreatedAt  time.Time         `json:"created_at"`
}

func (u *EventUsecase) CreateEvent(ctx context.Context, ownerID string, in SaveEventInput) (EventOutput, error) {
	if ownerID == "" {
		return EventOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validateEventInput(ctx, ownerID, in); err != nil {
		return EventOutput{}, err
	}

	ev := model.ApplyEvent{
		ID:        u.idGen.NewID(),
		EventName: in.EventName,
		EventDate: in.EventDate,
		OwnerID:   ownerID,
		CreatedAt: u.clock.Now(),
	}
	rows := make([]model.EventItem, 0, len(in.Items))
	for _, it := range in.Items {
		rows = append(rows, model.EventItem{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
		})
	}

	created, err := u.events.Create(ctx, ev, rows)
	if err != nil {
		return EventOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildEventOutput(ctx, created)
}

// UpdateEvent は全置き換え。部分更新はしない。
func (u *EventUsecase) UpdateEvent(ctx context.Context, ownerID string, eventID string, in SaveEventInput) (EventOutput, error) {
	if ownerID == "" {
		return EventOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if eventID == "" {
		return EventOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.validateEventInput(ctx, ownerID, in); err != nil {
		return EventOutput{}, err
	}

	ev := model.ApplyEvent{
		ID:        eventID,
		EventName: in.EventName,
		EventDate: in.EventDate,
		OwnerID:   ownerID,
	}
	rows := make([]model.EventItem, 0, len(in.Items))
	for _, it := range in.Items {
		rows = append(rows, model.EventItem{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
		})
	}

	if err := u.events.Replace(ctx, ev, rows); err != nil {
		if err == repo.ErrNotFound {
			return EventOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return EventOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated, err := u.events.FindByID(ctx, ownerID, eventID)
	if err != nil {
		return EventOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildEventOutput(ctx, updated)
}

// DeleteEvent は無条件削除。催事を参照する注文が残っていても
// スナップショットはそのまま維持される。
func (u *EventUsecase) DeleteEvent(ctx context.Context, ownerID string, eventID string) error {
	if ownerID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if eventID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.events.Delete(ctx, ownerID, eventID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ListEvents は催事を新しい順に返す。各明細にはavailable_stockを付ける。
// available_stockは全オーナー横断のcompleted注文だけを差し引いた値。
func (u *EventUsecase) ListEvents(ctx context.Context, ownerID string) ([]EventOutput, error) {
	if ownerID == "" {
		return []EventOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	events, err := u.events.ListByOwner(ctx, ownerID)
	if err != nil {
		return []EventOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]EventOutput, 0, len(events))
	for _, ev := range events {
		out, err := u.buildEventOutput(ctx, ev)
		if err != nil {
			return []EventOutput{}, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

// 入力チェック。明細の商品は必ず自分の商品でなければならない。
func (u *EventUsecase) validateEventInput(ctx context.Context, ownerID string, in SaveEventInput) error {
	if strings.TrimSpace(in.EventName) == "" {
		return NewHTTPError(http.StatusBadRequest, "event_name is required")
	}
	if in.EventDate.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "event_date is required")
	}
	for _, it := range in.Items {
		if it.ItemID == "" {
			return NewHTTPError(http.StatusBadRequest, "item id is required")
		}
		if it.Quantity < 1 {
			return NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
		}
		if _, err := u.items.FindByID(ctx, ownerID, it.ItemID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "unknown item")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return nil
}

func (u *EventUsecase) buildEventOutput(ctx context.Context, ev model.ApplyEvent) (EventOutput, error) {
	rows, err := u.events.ListItems(ctx, ev.ID)
	if err != nil {
		return EventOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ItemID)
	}
	resolved, err := u.items.FindByIDs(ctx, ids)
	if err != nil {
		return EventOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outItems := make([]EventItemOutput, 0, len(rows))
	for _, row := range rows {
		out := EventItemOutput{Quantity: row.Quantity}

		if it, ok := resolved[row.ItemID]; ok {
			committedRows, err := u.orders.ListCompletedItemRowsByItem(ctx, it.ID)
			if err != nil {
				return EventOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
			committed := CommittedQuantity(committedRows, it.ID)

			out.Item = &EventItemDetail{
				ID:             it.ID,
				ItemNumber:     it.ItemNumber,
				Name:           it.Name,
				Category:       it.Category,
				StockQuantity:  it.StockQuantity,
				Price:          it.Price,
				AvailableStock: AvailableStock(it.StockQuantity, committed),
			}
		}
		outItems = append(outItems, out)
	}

	return EventOutput{
		ID:         ev.ID,
		EventName:  ev.EventName,
		EventDate:  ev.EventDate,
		EventItems: outItems,
		CreatedAt:  ev.CreatedAt,
	}, nil
}
