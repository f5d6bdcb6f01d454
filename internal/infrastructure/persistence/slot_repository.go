package persistence

import (
	"context"
	"errors"

	"github.com/armoryhq/backend/internal/domain/inventory"
	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSlotRepository implements SlotRepository using GORM.
// Slots are seeded by migration and never written at runtime.
type GormSlotRepository struct {
	db *gorm.DB
}

// NewGormSlotRepository creates a new GormSlotRepository
func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

// FindByID finds a slot by its ID
func (r *GormSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Slot, error) {
	var slot inventory.Slot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// FindAll returns all slots ordered by name
func (r *GormSlotRepository) FindAll(ctx context.Context) ([]inventory.Slot, error) {
	var slots []inventory.Slot
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// Count returns the number of slots
func (r *GormSlotRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.Slot{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
