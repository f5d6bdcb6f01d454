package inventory

import (
	"context"
	"errors"
	"sync"

	"github.com/armoryhq/backend/internal/domain/inventory"
	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemReader serves the read-only item surfaces: list, detail and the
// data needed by the create/edit forms. Where a view needs two unrelated
// reads they are issued concurrently and joined.
type ItemReader struct {
	items     inventory.ItemRepository
	slots     inventory.SlotRepository
	instances inventory.ItemInstanceRepository
}

// NewItemReader creates a new ItemReader
func NewItemReader(
	items inventory.ItemRepository,
	slots inventory.SlotRepository,
	instances inventory.ItemInstanceRepository,
) *ItemReader {
	return &ItemReader{
		items:     items,
		slots:     slots,
		instances: instances,
	}
}

// List returns items with their slot populated
func (r *ItemReader) List(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	return r.items.FindAll(ctx, filter)
}

// Detail returns an item together with the listings referencing it.
// Returns shared.ErrNotFound when the item does not exist.
func (r *ItemReader) Detail(ctx context.Context, id uuid.UUID) (*inventory.Item, []inventory.ItemInstance, error) {
	var (
		wg       sync.WaitGroup
		item     *inventory.Item
		listings []inventory.ItemInstance
		itemErr  error
		listErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		item, itemErr = r.items.FindByIDWithSlot(ctx, id)
	}()
	go func() {
		defer wg.Done()
		listings, listErr = r.instances.FindByItem(ctx, id)
	}()
	wg.Wait()

	if itemErr != nil {
		return nil, nil, itemErr
	}
	if listErr != nil {
		return nil, nil, listErr
	}
	return item, listings, nil
}

// FormData returns the slot list backing the create form's slot select
func (r *ItemReader) FormData(ctx context.Context) ([]inventory.Slot, error) {
	return r.slots.FindAll(ctx)
}

// EditFormData returns the stored item and the slot list for the edit
// form. Returns shared.ErrNotFound when the item does not exist.
func (r *ItemReader) EditFormData(ctx context.Context, id uuid.UUID) (*inventory.Item, []inventory.Slot, error) {
	var (
		wg      sync.WaitGroup
		item    *inventory.Item
		slots   []inventory.Slot
		itemErr error
		slotErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		item, itemErr = r.items.FindByID(ctx, id)
	}()
	go func() {
		defer wg.Done()
		slots, slotErr = r.slots.FindAll(ctx)
	}()
	wg.Wait()

	if itemErr != nil {
		return nil, nil, itemErr
	}
	if slotErr != nil {
		return nil, nil, slotErr
	}
	return item, slots, nil
}

// DeleteConfirmation returns the item and its referencing listings for
// the delete confirmation page. A missing item is reported as a nil item
// so the handler can redirect to the list instead of rendering a 404.
func (r *ItemReader) DeleteConfirmation(ctx context.Context, id uuid.UUID) (*inventory.Item, []inventory.ItemInstance, error) {
	item, listings, err := r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return item, listings, nil
}
