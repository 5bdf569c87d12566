package repository

import (
	"context"
	"errors"

	"github.com/j99way99/my-inv-app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反（item_number / order_number / username など）
var ErrDuplicate = errors.New("duplicate key")

// 商品の永続化（保存・取得）だけを約束。
// 読み書きはすべてowner単位に閉じる。
type ItemRepository interface {
	Create(ctx context.Context, item model.Item) (model.Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Item, error)
	FindByID(ctx context.Context, ownerID string, itemID string) (model.Item, error)

	//弱参照の解決用。見つからないIDは単に結果に含めない。
	FindByIDs(ctx context.Context, itemIDs []string) (map[string]model.Item, error)

	Update(ctx context.Context, item model.Item) error
	Delete(ctx context.Context, ownerID string, itemID string) error
}
