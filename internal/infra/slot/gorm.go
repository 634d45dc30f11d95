package slot

import (
	"context"
	"errors"
	"time"

	repo "github.com/Yash24242424/cloneverse-express/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cart_slots テーブルの1行 = 1カート（中身はスナップショットのJSON）
type CartSlotRecord struct {
	SlotKey   string    `gorm:"primaryKey;type:varchar(128)"`
	Payload   []byte    `gorm:"type:bytea;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CartSlotRecord) TableName() string {
	return "cart_slots"
}

type GormSlot struct {
	db *gorm.DB
}

// DI
func NewGormSlot(db *gorm.DB) *GormSlot {
	return &GormSlot{db: db}
}

func (s *GormSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var rec CartSlotRecord
	err := s.db.WithContext(ctx).
		Where("slot_key = ?", key).
		Take(&rec).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.Payload, nil
}

// 同じキーは上書き（upsert）
func (s *GormSlot) Set(ctx context.Context, key string, payload []byte) error {
	rec := CartSlotRecord{
		SlotKey:   key,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&rec).Error
}

func (s *GormSlot) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("slot_key = ?", key).
		Delete(&CartSlotRecord{}).Error
}
