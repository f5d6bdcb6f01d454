package inventory

import (
	"context"

	"github.com/google/uuid"
)

// SlotRepository defines the read-only persistence contract for slots
type SlotRepository interface {
	// FindByID finds a slot by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Slot, error)

	// FindAll returns all slots ordered by name
	FindAll(ctx context.Context) ([]Slot, error)

	// Count returns the number of slots
	Count(ctx context.Context) (int64, error)
}
