package repository

import (
	"context"

	"gorm.io/gorm"
)

type CounterGormRepository struct {
	db *gorm.DB
}

func NewCounterGormRepository(db *gorm.DB) *CounterGormRepository {
	return &CounterGormRepository{db: db}
}

// Next は名前付きカウンタを+1して新しい値を返す。
// upsertとRETURNINGを1文にまとめているので、同時に呼ばれても
// 同じ値が二度返ることはない（read-then-writeに分解してはいけない）。
func (r *CounterGormRepository) Next(ctx context.Context, name string) (int64, error) {
	var seq int64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO counters (name, seq) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		 RETURNING seq`,
		name,
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}
