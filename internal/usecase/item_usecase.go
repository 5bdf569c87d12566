package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/j99way99/my-inv-app/internal/domain/model"
	repo "github.com/j99way99/my-inv-app/internal/repository"
)

// 商品番号カウンタの名前
const itemNumberCounter = "itemNumber"

type ItemUsecase struct {
	items    repo.ItemRepository
	orders   repo.OrderRepository
	counters repo.CounterRepository
	idGen    IDGenerator
	clock    Clock
}

// DI
func NewItemUsecase(
	items repo.ItemRepository,
	orders repo.OrderRepository,
	counters repo.CounterRepository,
	idGen IDGenerator,
	clock Clock,
) *ItemUsecase {
	return &ItemUsecase{
		items:    items,
		orders:   orders,
		counters: counters,
		idGen:    idGen,
		clock:    clock,
	}
}

type CreateItemInput struct {
	Name          string
	Category      string
	Description   string
	StockQuantity int64
	Price         int64
}

type ItemOutput struct {
	ID            string    `json:"id"`
	ItemNumber    string    `json:"item_number"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	StockQuantity int64     `json:"stock_quantity"`
	Price         int64     `json:"price"`
	SalesQuantity int64     `json:"sales_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *ItemUsecase) CreateItem(ctx context.Context, ownerID string, in CreateItemInput) (ItemOutput, error) {
	if ownerID == "" {
		return ItemOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return ItemOutput{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return ItemOutput{}, NewHTTPError(http.StatusBadRequest, "category is required")
	}
	if in.StockQuantity < 0 {
		return ItemOutput{}, NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}
	if in.Price < 0 {
		return ItemOutput{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	//採番はストレージ側でアトミックに行われる。失敗したらそのまま上へ。
	seq, err := u.counters.Next(ctx, itemNumberCounter)
	if err != nil {
		return ItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item := model.Item{
		ID:            u.idGen.NewID(),
		ItemNumber:    fmt.Sprintf("ITEM-%06d", seq),
		Name:          in.Name,
		Category:      in.Category,
		Description:   in.Description,
		StockQuantity: in.StockQuantity,
		Price:         in.Price,
		OwnerID:       ownerID,
		CreatedAt:     u.clock.Now(),
	}

	created, err := u.items.Create(ctx, item)
	if err != nil {
		if err == repo.ErrDuplicate {
			return ItemOutput{}, NewHTTPError(http.StatusConflict, "item number conflict")
		}
		return ItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := toItemOutput(created)
	return out, nil
}

// ListItems はowner配下の商品をsales_quantity付きで返す。
// 販売数はstatusを問わず全注文から集計する（cancelledも含む・上限なし）。
func (u *ItemUsecase) ListItems(ctx context.Context, ownerID string) ([]ItemOutput, error) {
	if ownerID == "" {
		return []ItemOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return []ItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ItemOutput, 0, len(items))
	for _, it := range items {
		rows, err := u.orders.ListItemRowsByItem(ctx, ownerID, it.ID)
		if err != nil {
			return []ItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out := toItemOutput(it)
		out.SalesQuantity = CommittedQuantity(rows, it.ID)
		outs = append(outs, out)
	}
	return outs, nil
}

type UpdateItemInput struct {
	Name          string
	Category      string
	Description   string
	StockQuantity int64
	Price         int64
}

func (u *ItemUsecase) UpdateItem(ctx context.Context, ownerID string, itemID string, in UpdateItemInput) (ItemOutput, error) {
	if ownerID == "" {
		return ItemOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID == "" {
		return ItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return ItemOutput{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return ItemOutput{}, NewHTTPError(http.StatusBadRequest, "category is required")
	}
	if in.StockQuantity < 0 {
		return ItemOutput{}, NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}
	if in.Price < 0 {
		return ItemOutput{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	item := model.Item{
		ID:            itemID,
		Name:          in.Name,
		Category:      in.Category,
		Description:   in.Description,
		StockQuantity: in.StockQuantity,
		Price:         in.Price,
		OwnerID:       ownerID,
	}
	if err := u.items.Update(ctx, item); err != nil {
		if err == repo.ErrNotFound {
			//他人の商品は「存在しない扱い」にする
			return ItemOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return ItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated, err := u.items.FindByID(ctx, ownerID, itemID)
	if err != nil {
		return ItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toItemOutput(updated), nil
}

// DeleteItem は無条件削除。参照している催事・注文があっても止めない。
// 注文側は数量・単価のスナップショットを持っているので壊れない。
func (u *ItemUsecase) DeleteItem(ctx context.Context, ownerID string, itemID string) error {
	if ownerID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.items.Delete(ctx, ownerID, itemID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func toItemOutput(it model.Item) ItemOutput {
	return ItemOutput{
		ID:            it.ID,
		ItemNumber:    it.ItemNumber,
		Name:          it.Name,
		Category:      it.Category,
		Description:   it.Description,
		StockQuantity: it.StockQuantity,
		Price:         it.Price,
		CreatedAt:     it.CreatedAt,
	}
}
