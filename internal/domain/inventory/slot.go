package inventory

import (
	"strings"

	"github.com/armoryhq/backend/internal/domain/shared"
)

// Slot represents an equipment category an item occupies (head, chest, ...).
// Slots are seeded by migration and read-only at runtime; they supply the
// valid-slot domain for Item.SlotID.
type Slot struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Slot) TableName() string {
	return "slots"
}

// NewSlot creates a new slot
func NewSlot(name string) (*Slot, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Slot name cannot be empty")
	}
	return &Slot{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
