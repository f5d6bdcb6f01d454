package inventory

import (
	"context"

	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemInstanceRepository defines the persistence contract for stocked listings
type ItemInstanceRepository interface {
	// FindByID finds a listing by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ItemInstance, error)

	// FindAll finds all listings matching the filter, item and seller populated
	FindAll(ctx context.Context, filter shared.Filter) ([]ItemInstance, error)

	// FindByItem finds all listings referencing an item, seller populated
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]ItemInstance, error)

	// FindBySeller finds all listings stocked by a seller, item populated
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]ItemInstance, error)

	// CountByItem returns the number of listings referencing an item
	CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error)

	// Insert persists a new listing
	Insert(ctx context.Context, instance *ItemInstance) error

	// Update replaces the stored fields of an existing listing
	Update(ctx context.Context, instance *ItemInstance) error

	// Delete removes a listing by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of listings
	Count(ctx context.Context) (int64, error)

	// TotalStock returns the sum of stock counts across all listings
	TotalStock(ctx context.Context) (int64, error)
}
