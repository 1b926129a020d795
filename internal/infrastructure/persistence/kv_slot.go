package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVSlot is the GORM model for the kv_slots table. The sheet envelope lives
// in a single row keyed by a fixed envelope key; the whole value is replaced
// on every save, which is what makes the envelope atomic.
type KVSlot struct {
	Key       string `gorm:"primaryKey;type:varchar(255)"`
	Value     []byte
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (KVSlot) TableName() string {
	return "kv_slots"
}

// GormSlot implements the sheet store's durable slot on a kv_slots row
type GormSlot struct {
	db  *gorm.DB
	key string
}

// NewGormSlot creates a durable slot bound to the given envelope key
func NewGormSlot(db *gorm.DB, key string) *GormSlot {
	return &GormSlot{db: db, key: key}
}

// Load returns the stored envelope, or found=false when the slot is empty
func (s *GormSlot) Load(ctx context.Context) ([]byte, bool, error) {
	var rec KVSlot
	err := s.db.WithContext(ctx).First(&rec, "key = ?", s.key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Value, true, nil
}

// Save upserts the envelope under the slot's key
func (s *GormSlot) Save(ctx context.Context, data []byte) error {
	rec := KVSlot{Key: s.key, Value: data, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

// Delete discards the envelope
func (s *GormSlot) Delete(ctx context.Context) error {
	return s.db.WithContext(ctx).Delete(&KVSlot{}, "key = ?", s.key).Error
}
