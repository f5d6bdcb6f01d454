package persistence

import (
	"context"
	"testing"

	"github.com/armoryhq/backend/internal/domain/inventory"
	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedListing(t *testing.T, db *gorm.DB, itemID, sellerID uuid.UUID, stock int) *inventory.ItemInstance {
	t.Helper()
	instance, err := inventory.NewItemInstance(itemID, sellerID, stock)
	require.NoError(t, err)
	require.NoError(t, NewGormItemInstanceRepository(db).Insert(context.Background(), instance))
	return instance
}

func TestItemInstanceRepositoryFindByIDPreloadsRefs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormItemInstanceRepository(db)

	slot := seedSlot(t, db, "Weapon")
	item := seedItem(t, db, "Longsword", slot.ID)
	seller := seedSeller(t, db, "Bazaar")
	listing := seedListing(t, db, item.ID, seller.ID, 5)

	found, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Item)
	require.NotNil(t, found.Seller)
	assert.Equal(t, "Longsword", found.Item.Name)
	assert.Equal(t, "Bazaar", found.Seller.Name)
	assert.Equal(t, 5, found.StockCount)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestItemInstanceRepositoryFindByItemAndSeller(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormItemInstanceRepository(db)

	slot := seedSlot(t, db, "Weapon")
	item := seedItem(t, db, "Longsword", slot.ID)
	other := seedItem(t, db, "Axe", slot.ID)
	seller := seedSeller(t, db, "Bazaar")

	seedListing(t, db, item.ID, seller.ID, 5)
	seedListing(t, db, item.ID, seller.ID, 2)
	seedListing(t, db, other.ID, seller.ID, 1)

	byItem, err := repo.FindByItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, byItem, 2)
	require.NotNil(t, byItem[0].Seller)

	bySeller, err := repo.FindBySeller(context.Background(), seller.ID)
	require.NoError(t, err)
	require.Len(t, bySeller, 3)
	require.NotNil(t, bySeller[0].Item)

	count, err := repo.CountByItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestItemInstanceRepositoryUpdateStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormItemInstanceRepository(db)

	slot := seedSlot(t, db, "Weapon")
	item := seedItem(t, db, "Longsword", slot.ID)
	seller := seedSeller(t, db, "Bazaar")
	listing := seedListing(t, db, item.ID, seller.ID, 5)

	require.NoError(t, listing.SetStock(9))
	require.NoError(t, repo.Update(context.Background(), listing))

	found, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, found.StockCount)
}

func TestItemInstanceRepositoryDeleteCountAndTotalStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormItemInstanceRepository(db)

	slot := seedSlot(t, db, "Weapon")
	item := seedItem(t, db, "Longsword", slot.ID)
	seller := seedSeller(t, db, "Bazaar")

	first := seedListing(t, db, item.ID, seller.ID, 5)
	seedListing(t, db, item.ID, seller.ID, 7)

	total, err := repo.TotalStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)

	require.NoError(t, repo.Delete(context.Background(), first.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), first.ID), shared.ErrNotFound)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	total, err = repo.TotalStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
}

func TestSlotRepositoryReads(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSlotRepository(db)

	head := seedSlot(t, db, "Head")
	seedSlot(t, db, "Chest")

	found, err := repo.FindByID(context.Background(), head.ID)
	require.NoError(t, err)
	assert.Equal(t, "Head", found.Name)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Chest", all[0].Name)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
