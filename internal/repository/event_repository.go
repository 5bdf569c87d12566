package repository

import (
	"context"

	"github.com/j99way99/my-inv-app/internal/domain/model"
)

type EventRepository interface {
	//催事と明細をまとめて保存
	Create(ctx context.Context, ev model.ApplyEvent, items []model.EventItem) (model.ApplyEvent, error)

	//全置き換え更新（owner不一致はErrNotFound）
	Replace(ctx context.Context, ev model.ApplyEvent, items []model.EventItem) error

	//無条件削除。参照している注文があっても止めない。
	Delete(ctx context.Context, ownerID string, eventID string) error

	//作成日時の降順
	ListByOwner(ctx context.Context, ownerID string) ([]model.ApplyEvent, error)

	FindByID(ctx context.Context, ownerID string, eventID string) (model.ApplyEvent, error)

	//position順の明細
	ListItems(ctx context.Context, eventID string) ([]model.EventItem, error)
}
