package inventory

import (
	"context"

	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SellerRepository defines the persistence contract for sellers
type SellerRepository interface {
	// FindByID finds a seller by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Seller, error)

	// FindAll finds all sellers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Seller, error)

	// Insert persists a new seller
	Insert(ctx context.Context, seller *Seller) error

	// Update replaces the stored fields of an existing seller
	Update(ctx context.Context, seller *Seller) error

	// Delete removes a seller by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of sellers
	Count(ctx context.Context) (int64, error)
}
