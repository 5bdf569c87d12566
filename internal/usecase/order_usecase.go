package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/j99way99/my-inv-app/internal/domain/model"
	repo "github.com/j99way99/my-inv-app/internal/repository"
)

// 注文番号の採番リトライ上限
const orderNumberMaxAttempts = 10

type OrderUsecase struct {
	orders repo.OrderRepository
	events repo.EventRepository
	items  repo.ItemRepository
	idGen  IDGenerator
	clock  Clock
	random RandomSource
}

// DI
func NewOrderUsecase(
	orders repo.OrderRepository,
	events repo.EventRepository,
	items repo.ItemRepository,
	idGen IDGenerator,
	clock Clock,
	random RandomSource,
) *OrderUsecase {
	return &OrderUsecase{
		orders: orders,
		events: events,
		items:  items,
		idGen:  idGen,
		clock:  clock,
		random: random,
	}
}

type OrderItemInput struct {
	ItemID   string
	Quantity int64
	Price    int64
}

type CreateOrderInput struct {
	ApplyEventID     string
	Items            []OrderItemInput
	TotalAmount      int64
	PaymentMethod    string
	SubPaymentMethod string
}

type OrderItemOutput struct {
	ItemID     string `json:"item_id"`
	ItemNumber string `json:"item_number,omitempty"`
	Name       string `json:"name,omitempty"`
	Quantity   int64  `json:"quantity"`
	Price      int64  `json:"price"`
}

type OrderEventOutput struct {
	ID        string    `json:"id"`
	EventName string    `json:"event_name"`
	EventDate time.Time `json:"event_date"`
}

type OrderOutput struct {
	ID               string            `json:"id"`
	OrderNumber      string            `json:"order_number"`
	ApplyEvent       *OrderEventOutput `json:"apply_event"`
	Items            []OrderItemOutput `json:"order_items"`
	TotalAmount      int64             `json:"total_amount"`
	PaymentMethod    string            `json:"payment_method"`
	SubPaymentMethod string            `json:"sub_payment_method,omitempty"`
	Status           string            `json:"status"`
	OrderDate        time.Time         `json:"order_date"`
}

// CreateOrder は注文をスナップショットとして保存する。
// total_amountの検算と在庫の引き当てはしない（どちらもクライアント任せ。
// 同時に同じ在庫を見た2つの注文は両方成立し得る）。
func (u *OrderUsecase) CreateOrder(ctx context.Context, ownerID string, in CreateOrderInput) (OrderOutput, error) {
	if ownerID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ApplyEventID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "apply_event is required")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order_items must not be empty")
	}
	for _, it := range in.Items {
		if it.ItemID == "" {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "item id is required")
		}
		if it.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
		}
		if it.Price < 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
		}
	}
	if !isValidPaymentMethod(in.PaymentMethod) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}
	//otherのときだけsub_payment_methodが必須
	if in.PaymentMethod == string(model.PaymentMethodOther) {
		if !isValidSubPaymentMethod(in.SubPaymentMethod) {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "sub_payment_method is required for payment_method=other")
		}
	} else if in.SubPaymentMethod != "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "sub_payment_method is only allowed for payment_method=other")
	}
	if in.TotalAmount < 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "total_amount must be >= 0")
	}

	//催事の存在＋所有チェック。他人の催事は「存在しない扱い」。
	ev, err := u.events.FindByID(ctx, ownerID, in.ApplyEventID)
	if err != nil {
		if err == repo.ErrNotFound {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//商品参照のチェック（価格はここでは見ない。スナップショットは入力値）
	for _, it := range in.Items {
		if _, err := u.items.FindByID(ctx, ownerID, it.ItemID); err != nil {
			if err == repo.ErrNotFound {
				return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "unknown item")
			}
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	now := u.clock.Now()
	orderNumber, err := u.generateOrderNumber(ctx, now)
	if err != nil {
		return OrderOutput{}, err
	}

	order := model.Order{
		ID:               u.idGen.NewID(),
		OrderNumber:      orderNumber,
		ApplyEventID:     in.ApplyEventID,
		TotalAmount:      in.TotalAmount,
		PaymentMethod:    model.PaymentMethod(in.PaymentMethod),
		SubPaymentMethod: model.SubPaymentMethod(in.SubPaymentMethod),
		Status:           model.OrderStatusPending,
		OrderDate:        now,
		OwnerID:          ownerID,
	}
	rows := make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		rows = append(rows, model.OrderItem{
			ItemID:            it.ItemID,
			Quantity:          it.Quantity,
			UnitPriceSnapshot: it.Price,
		})
	}

	created, err := u.orders.Create(ctx, order, rows)
	if err != nil {
		if err == repo.ErrDuplicate {
			//存在チェックの隙間で同じ番号が入った
			return OrderOutput{}, NewHTTPError(http.StatusConflict, "order number conflict")
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildOrderOutput(ctx, created, ev.EventName, ev.EventDate)
}

// ListOrders はowner配下の注文をorder_dateの降順で返す。
func (u *OrderUsecase) ListOrders(ctx context.Context, ownerID string) ([]OrderOutput, error) {
	if ownerID == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orders.ListByOwner(ctx, ownerID)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		//催事は消えているかもしれない（弱参照）
		var evName string
		var evDate time.Time
		if ev, err := u.events.FindByID(ctx, ownerID, o.ApplyEventID); err == nil {
			evName = ev.EventName
			evDate = ev.EventDate
		} else if err != repo.ErrNotFound {
			return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err := u.buildOrderOutput(ctx, o, evName, evDate)
		if err != nil {
			return []OrderOutput{}, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

// UpdateStatus はstatusだけを書き換える。遷移の制限はかけない。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, ownerID string, orderID string, status string) (OrderOutput, error) {
	if ownerID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !isValidOrderStatus(status) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	if err := u.orders.UpdateStatus(ctx, ownerID, orderID, model.OrderStatus(status)); err != nil {
		if err == repo.ErrNotFound {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	o, err := u.orders.FindByID(ctx, ownerID, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var evName string
	var evDate time.Time
	if ev, err := u.events.FindByID(ctx, ownerID, o.ApplyEventID); err == nil {
		evName = ev.EventName
		evDate = ev.EventDate
	}

	return u.buildOrderOutput(ctx, o, evName, evDate)
}

// generateOrderNumber はORD-YYYYMMDD-####を最大10回試す。
// 存在チェックと保存は別操作なので、隙間を突かれたら保存時の
// 一意制約で落ちる。10回全部衝突したらエラーにする
// （番号なしで保存はしない）。
func (u *OrderUsecase) generateOrderNumber(ctx context.Context, now time.Time) (string, error) {
	datePart := now.Format("20060102")

	for attempt := 0; attempt < orderNumberMaxAttempts; attempt++ {
		candidate := fmt.Sprintf("ORD-%s-%04d", datePart, u.random.IntN(10000))

		exists, err := u.orders.ExistsByOrderNumber(ctx, candidate)
		if err != nil {
			return "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", NewHTTPError(http.StatusConflict, "could not allocate order number")
}

func (u *OrderUsecase) buildOrderOutput(ctx context.Context, o model.Order, evName string, evDate time.Time) (OrderOutput, error) {
	rows, err := u.orders.ListItems(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ItemID)
	}
	resolved, err := u.items.FindByIDs(ctx, ids)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outItems := make([]OrderItemOutput, 0, len(rows))
	for _, row := range rows {
		out := OrderItemOutput{
			ItemID:   row.ItemID,
			Quantity: row.Quantity,
			Price:    row.UnitPriceSnapshot,
		}
		//商品が残っていれば表示用の情報を足す
		if it, ok := resolved[row.ItemID]; ok {
			out.ItemNumber = it.ItemNumber
			out.Name = it.Name
		}
		outItems = append(outItems, out)
	}

	out := OrderOutput{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		Items:            outItems,
		TotalAmount:      o.TotalAmount,
		PaymentMethod:    string(o.PaymentMethod),
		SubPaymentMethod: string(o.SubPaymentMethod),
		Status:           string(o.Status),
		OrderDate:        o.OrderDate,
	}
	if evName != "" {
		out.ApplyEvent = &OrderEventOutput{
			ID:        o.ApplyEventID,
			EventName: evName,
			EventDate: evDate,
		}
	}
	return out, nil
}

func isValidPaymentMethod(s string) bool {
	switch model.PaymentMethod(s) {
	case model.PaymentMethodCash, model.PaymentMethodCard, model.PaymentMethodTransfer, model.PaymentMethodOther:
		return true
	}
	return false
}

func isValidSubPaymentMethod(s string) bool {
	switch model.SubPaymentMethod(s) {
	case model.SubPaymentMethodKakaopay, model.SubPaymentMethodNaverpay:
		return true
	}
	return false
}

func isValidOrderStatus(s string) bool {
	switch model.OrderStatus(s) {
	case model.OrderStatusPending, model.OrderStatusCompleted, model.OrderStatusCancelled:
		return true
	}
	return false
}
