package repository

import (
	"context"

	"github.com/j99way99/my-inv-app/internal/domain/model"
)

type OrderRepository interface {
	//注文と明細をまとめて保存
	Create(ctx context.Context, o model.Order, items []model.OrderItem) (model.Order, error)

	//order_dateの降順
	ListByOwner(ctx context.Context, ownerID string) ([]model.Order, error)

	FindByID(ctx context.Context, ownerID string, orderID string) (model.Order, error)

	//position順の明細
	ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error)

	//statusのみ更新。owner不一致・不存在はErrNotFound。
	//遷移の制限はしない（任意のstatusから任意のstatusへ変えられる）。
	UpdateStatus(ctx context.Context, ownerID string, orderID string, status model.OrderStatus) error

	//注文番号の採番時の存在チェック用
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	//販売数集計用: owner配下の全注文（status不問）の該当商品明細
	ListItemRowsByItem(ctx context.Context, ownerID string, itemID string) ([]model.OrderItem, error)

	//在庫計算用: 全オーナー横断でcompletedの注文の該当商品明細
	ListCompletedItemRowsByItem(ctx context.Context, itemID string) ([]model.OrderItem, error)
}
