package inventory

import (
	"context"

	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository defines the persistence contract for items.
// Implementations return shared.ErrNotFound when a lookup misses.
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByIDWithSlot finds an item by its ID with the slot reference populated
	FindByIDWithSlot(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindAll finds all items matching the filter, slot populated
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Insert persists a new item
	Insert(ctx context.Context, item *Item) error

	// Update replaces the stored fields of an existing item
	Update(ctx context.Context, item *Item) error

	// Delete removes an item by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of items
	Count(ctx context.Context) (int64, error)
}
