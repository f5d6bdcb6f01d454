package persistence

import (
	"context"
	"errors"

	"github.com/armoryhq/backend/internal/domain/inventory"
	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormItemInstanceRepository implements ItemInstanceRepository using GORM
type GormItemInstanceRepository struct {
	db *gorm.DB
}

// NewGormItemInstanceRepository creates a new GormItemInstanceRepository
func NewGormItemInstanceRepository(db *gorm.DB) *GormItemInstanceRepository {
	return &GormItemInstanceRepository{db: db}
}

// FindByID finds a listing by its ID
func (r *GormItemInstanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ItemInstance, error) {
	var instance inventory.ItemInstance
	if err := r.db.WithContext(ctx).
		Preload("Item").Preload("Seller").
		First(&instance, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &instance, nil
}

// FindAll finds all listings matching the filter, item and seller populated
func (r *GormItemInstanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.ItemInstance, error) {
	var instances []inventory.ItemInstance
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.ItemInstance{}).Preload("Item").Preload("Seller"),
		filter, "created_at",
	)

	if err := query.Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

// FindByItem finds all listings referencing an item, seller populated
func (r *GormItemInstanceRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.ItemInstance, error) {
	var instances []inventory.ItemInstance
	if err := r.db.WithContext(ctx).
		Preload("Seller").
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

// FindBySeller finds all listings stocked by a seller, item populated
func (r *GormItemInstanceRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]inventory.ItemInstance, error) {
	var instances []inventory.ItemInstance
	if err := r.db.WithContext(ctx).
		Preload("Item").
		Where("seller_id = ?", sellerID).
		Order("created_at ASC").
		Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

// CountByItem returns the number of listings referencing an item
func (r *GormItemInstanceRepository) CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.ItemInstance{}).
		Where("item_id = ?", itemID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Insert persists a new listing
func (r *GormItemInstanceRepository) Insert(ctx context.Context, instance *inventory.ItemInstance) error {
	return r.db.WithContext(ctx).Create(instance).Error
}

// Update replaces the stored fields of an existing listing
func (r *GormItemInstanceRepository) Update(ctx context.Context, instance *inventory.ItemInstance) error {
	result := r.db.WithContext(ctx).Model(&inventory.ItemInstance{}).
		Where("id = ?", instance.ID).
		Updates(map[string]any{
			"stock_count": instance.StockCount,
			"updated_at":  instance.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a listing by ID
func (r *GormItemInstanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.ItemInstance{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of listings
func (r *GormItemInstanceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.ItemInstance{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TotalStock returns the sum of stock counts across all listings
func (r *GormItemInstanceRepository) TotalStock(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&inventory.ItemInstance{}).
		Select("COALESCE(SUM(stock_count), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
