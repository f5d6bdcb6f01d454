package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/armoryhq/backend/internal/domain/inventory"
	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSellerRepository implements SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// FindByID finds a seller by its ID
func (r *GormSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Seller, error) {
	var seller inventory.Seller
	if err := r.db.WithContext(ctx).First(&seller, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &seller, nil
}

// FindAll finds all sellers matching the filter
func (r *GormSellerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Seller, error) {
	var sellers []inventory.Seller
	query := applyFilter(r.db.WithContext(ctx).Model(&inventory.Seller{}), filter, "name")

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	if err := query.Find(&sellers).Error; err != nil {
		return nil, err
	}
	return sellers, nil
}

// Insert persists a new seller
func (r *GormSellerRepository) Insert(ctx context.Context, seller *inventory.Seller) error {
	return r.db.WithContext(ctx).Create(seller).Error
}

// Update replaces the stored fields of an existing seller
func (r *GormSellerRepository) Update(ctx context.Context, seller *inventory.Seller) error {
	result := r.db.WithContext(ctx).Model(&inventory.Seller{}).
		Where("id = ?", seller.ID).
		Updates(map[string]any{
			"name":       seller.Name,
			"updated_at": seller.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a seller by ID
func (r *GormSellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Seller{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of sellers
func (r *GormSellerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.Seller{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
