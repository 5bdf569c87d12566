package repository

import (
	"context"
	"errors"

	"github.com/j99way99/my-inv-app/internal/domain/model"
	repo "github.com/j99way99/my-inv-app/internal/repository"

	"gorm.io/gorm"
)

type ItemGormRepository struct {
	db *gorm.DB
}

func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: db}
}

func (r *ItemGormRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Item{}, repo.ErrDuplicate
		}
		return model.Item{}, err
	}
	return item, nil
}

func (r *ItemGormRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return []model.Item{}, err
	}
	return items, nil
}

func (r *ItemGormRepository) FindByID(ctx context.Context, ownerID string, itemID string) (model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", itemID, ownerID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (r *ItemGormRepository) FindByIDs(ctx context.Context, itemIDs []string) (map[string]model.Item, error) {
	out := make(map[string]model.Item, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *ItemGormRepository) Update(ctx context.Context, item model.Item) error {
	//item_numberは更新対象に含めない（採番は一度だけ）
	res := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ? AND owner_id = ?", item.ID, item.OwnerID).
		Updates(map[string]interface{}{
			"name":           item.Name,
			"category":       item.Category,
			"description":    item.Description,
			"stock_quantity": item.StockQuantity,
			"price":          item.Price,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ItemGormRepository) Delete(ctx context.Context, ownerID string, itemID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", itemID, ownerID).
		Delete(&model.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
