package inventory

import (
	"time"

	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemInstance is a concrete stocked listing of an item by a seller.
// The existence of any instance referencing an item blocks that item's
// deletion.
type ItemInstance struct {
	shared.BaseEntity
	ItemID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Item       *Item     `gorm:"foreignKey:ItemID"`
	SellerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Seller     *Seller   `gorm:"foreignKey:SellerID"`
	StockCount int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ItemInstance) TableName() string {
	return "item_instances"
}

// NewItemInstance creates a new stocked listing
func NewItemInstance(itemID, sellerID uuid.UUID, stockCount int) (*ItemInstance, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Listing item is required")
	}
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Listing seller is required")
	}
	if stockCount < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock count cannot be negative")
	}
	return &ItemInstance{
		BaseEntity: shared.NewBaseEntity(),
		ItemID:     itemID,
		SellerID:   sellerID,
		StockCount: stockCount,
	}, nil
}

// SetStock replaces the stock count
func (ii *ItemInstance) SetStock(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock count cannot be negative")
	}
	ii.StockCount = count
	ii.UpdatedAt = time.Now()
	return nil
}
