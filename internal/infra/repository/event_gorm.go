package repository

import (
	"context"
	"errors"

	"github.com/j99way99/my-inv-app/internal/domain/model"
	repo "github.com/j99way99/my-inv-app/internal/repository"

	"gorm.io/gorm"
)

type EventGormRepository struct {
	db *gorm.DB
}

func NewEventGormRepository(db *gorm.DB) *EventGormRepository {
	return &EventGormRepository{db: db}
}

func (r *EventGormRepository) Create(ctx context.Context, ev model.ApplyEvent, items []model.EventItem) (model.ApplyEvent, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ApplyEventID = ev.ID
			items[i].Position = i
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.ApplyEvent{}, err
	}
	return ev, nil
}

// Replace は催事本体と明細を丸ごと置き換える。
func (r *EventGormRepository) Replace(ctx context.Context, ev model.ApplyEvent, items []model.EventItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ApplyEvent{}).
			Where("id = ? AND owner_id = ?", ev.ID, ev.OwnerID).
			Updates(map[string]interface{}{
				"event_name": ev.EventName,
				"event_date": ev.EventDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		//明細は消して入れ直す
		if err := tx.Where("apply_event_id = ?", ev.ID).Delete(&model.EventItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].ApplyEventID = ev.ID
			items[i].Position = i
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *EventGormRepository) Delete(ctx context.Context, ownerID string, eventID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", eventID, ownerID).Delete(&model.ApplyEvent{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		//明細も道連れにする。注文側のスナップショットには触らない。
		return tx.Where("apply_event_id = ?", eventID).Delete(&model.EventItem{}).Error
	})
}

func (r *EventGormRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.ApplyEvent, error) {
	var events []model.ApplyEvent
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&events).Error
	if err != nil {
		return []model.ApplyEvent{}, err
	}
	return events, nil
}

func (r *EventGormRepository) FindByID(ctx context.Context, ownerID string, eventID string) (model.ApplyEvent, error) {
	var ev model.ApplyEvent
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", eventID, ownerID).
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ApplyEvent{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ApplyEvent{}, err
	}
	return ev, nil
}

func (r *EventGormRepository) ListItems(ctx context.Context, eventID string) ([]model.EventItem, error) {
	var items []model.EventItem
	err := r.db.WithContext(ctx).
		Where("apply_event_id = ?", eventID).
		Order("position asc").
		Find(&items).Error
	if err != nil {
		return []model.EventItem{}, err
	}
	return items, nil
}
