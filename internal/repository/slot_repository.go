package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"study-dashboard/internal/model"
)

// SlotRepository is an opaque key/value store. Values are replaced whole;
// there is no partial write.
type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Get returns the value under key. ok is false when the key was never
// written.
func (r *SlotRepository) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	var slot model.Slot
	err = r.db.WithContext(ctx).Where(&model.Slot{Key: key}).First(&slot).Error
	switch {
	case err == nil:
		return slot.Value, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("find slot %q: %w", key, err)
	}
}

// Put overwrites the value under key.
func (r *SlotRepository) Put(ctx context.Context, key string, value []byte) error {
	slot := model.Slot{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	return nil
}
