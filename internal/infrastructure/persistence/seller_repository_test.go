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

func seedSeller(t *testing.T, db *gorm.DB, name string) *inventory.Seller {
	t.Helper()
	seller, err := inventory.NewSeller(name)
	require.NoError(t, err)
	require.NoError(t, NewGormSellerRepository(db).Insert(context.Background(), seller))
	return seller
}

func TestSellerRepositoryInsertAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSellerRepository(db)

	seller := seedSeller(t, db, "Ye Olde Shoppe")

	found, err := repo.FindByID(context.Background(), seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ye Olde Shoppe", found.Name)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSellerRepositoryFindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSellerRepository(db)

	seedSeller(t, db, "Bazaar")
	seedSeller(t, db, "Auction House")

	all, err := repo.FindAll(context.Background(), shared.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Auction House", all[0].Name)

	matched, err := repo.FindAll(context.Background(), shared.Filter{Search: "bazaar"})
	require.NoError(t, err)
	assert.Len(t, matched, 1)
}

func TestSellerRepositoryUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSellerRepository(db)

	seller := seedSeller(t, db, "Bazaar")
	require.NoError(t, seller.Rename("Grand Bazaar"))
	require.NoError(t, repo.Update(context.Background(), seller))

	found, err := repo.FindByID(context.Background(), seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grand Bazaar", found.Name)

	ghost, err := inventory.NewSeller("Ghost")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Update(context.Background(), ghost), shared.ErrNotFound)
}

func TestSellerRepositoryDeleteAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSellerRepository(db)

	seller := seedSeller(t, db, "Bazaar")
	seedSeller(t, db, "Auction House")

	require.NoError(t, repo.Delete(context.Background(), seller.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), seller.ID), shared.ErrNotFound)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
