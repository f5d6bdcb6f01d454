package inventory

import (
	"context"

	"github.com/armoryhq/backend/internal/domain/inventory"
	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDWithSlot(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Insert(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSlotRepository is a mock implementation of inventory.SlotRepository
type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Slot), args.Error(1)
}

func (m *MockSlotRepository) FindAll(ctx context.Context) ([]inventory.Slot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.Slot), args.Error(1)
}

func (m *MockSlotRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSellerRepository is a mock implementation of inventory.SellerRepository
type MockSellerRepository struct {
	mock.Mock
}

func (m *MockSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Seller, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Seller), args.Error(1)
}

func (m *MockSellerRepository) Insert(ctx context.Context, seller *inventory.Seller) error {
	args := m.Called(ctx, seller)
	return args.Error(0)
}

func (m *MockSellerRepository) Update(ctx context.Context, seller *inventory.Seller) error {
	args := m.Called(ctx, seller)
	return args.Error(0)
}

func (m *MockSellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSellerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockItemInstanceRepository is a mock implementation of inventory.ItemInstanceRepository
type MockItemInstanceRepository struct {
	mock.Mock
}

func (m *MockItemInstanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ItemInstance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ItemInstance), args.Error(1)
}

func (m *MockItemInstanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.ItemInstance, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.ItemInstance), args.Error(1)
}

func (m *MockItemInstanceRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.ItemInstance, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]inventory.ItemInstance), args.Error(1)
}

func (m *MockItemInstanceRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]inventory.ItemInstance, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).([]inventory.ItemInstance), args.Error(1)
}

func (m *MockItemInstanceRepository) CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemInstanceRepository) Insert(ctx context.Context, instance *inventory.ItemInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockItemInstanceRepository) Update(ctx context.Context, instance *inventory.ItemInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockItemInstanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemInstanceRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemInstanceRepository) TotalStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockMediaStore is a mock implementation of MediaStore
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(UploadResult), args.Error(1)
}
