package inventory

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"

	"github.com/armoryhq/backend/internal/domain/inventory"
	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Gate error messages. Deleting is refused for two distinct reasons and
// each gets its own message; the pipeline never reuses the code-mismatch
// message for the listing block.
const (
	MsgWrongSecurityCode     = "Wrong security code."
	MsgItemBlockedByListings = "Item still has stocked listings."
)

// View names handed to the presentation layer
const (
	ViewItemForm   = "item_form"
	ViewItemDelete = "item_delete"
)

// WriterConfig holds the explicit configuration of the write pipeline.
// The security code is a fixed shared secret gating mutating operations,
// injected at construction instead of read from ambient process state.
type WriterConfig struct {
	SecurityCode string
	MediaFolder  string
}

// ItemWriter orchestrates the item write pipeline: validation, image
// upload, persistence and the redirect/render decision for the create,
// update and delete flows.
type ItemWriter struct {
	items     inventory.ItemRepository
	slots     inventory.SlotRepository
	instances inventory.ItemInstanceRepository
	media     MediaStore
	cfg       WriterConfig
}

// NewItemWriter creates a new ItemWriter
func NewItemWriter(
	items inventory.ItemRepository,
	slots inventory.SlotRepository,
	instances inventory.ItemInstanceRepository,
	media MediaStore,
	cfg WriterConfig,
) *ItemWriter {
	return &ItemWriter{
		items:     items,
		slots:     slots,
		instances: instances,
		media:     media,
		cfg:       cfg,
	}
}

// Create validates the submitted form, uploads the image when one was
// supplied, persists the new item and redirects to its detail page.
// Validation failures re-render the form with the echoed candidate.
func (w *ItemWriter) Create(ctx context.Context, raw ItemForm) (Outcome, error) {
	// Length rules run on the submitted text; escaping happens after.
	errs := raw.Validate()
	form := raw.Sanitized()

	if len(errs) > 0 {
		slots, err := w.slots.FindAll(ctx)
		if err != nil {
			return Outcome{}, err
		}
		return Render(ViewItemForm, ViewData{
			"Form":   form,
			"Slots":  slots,
			"Errors": errs,
		}), nil
	}

	slotID, err := form.SlotID()
	if err != nil {
		return Outcome{}, err
	}

	item, err := inventory.NewItem(form.Name, form.Description, form.Quality, slotID)
	if err != nil {
		return Outcome{}, err
	}

	if form.File != nil {
		// Fresh key assigned by the store within the configured folder
		res, err := w.media.Upload(ctx, UploadInput{
			Data:        form.File.Data,
			ContentType: form.File.ContentType,
			Folder:      w.cfg.MediaFolder,
		})
		if err != nil {
			return Outcome{}, err
		}
		item.SetImageURL(res.PublicURL)
	}

	if err := w.items.Insert(ctx, item); err != nil {
		return Outcome{}, err
	}

	return Redirect("/items/" + item.ID.String()), nil
}

// Update replaces the stored fields of the item at id with the submitted
// candidate. The gate refuses the whole operation when validation fails
// or the security code does not match, re-rendering the form against the
// currently stored item without mutating anything.
func (w *ItemWriter) Update(ctx context.Context, id uuid.UUID, raw ItemForm, securityCode string) (Outcome, error) {
	errs := raw.Validate()
	form := raw.Sanitized()
	codeOK := w.codeMatches(securityCode)

	if len(errs) > 0 || !codeOK {
		item, slots, err := w.fetchItemAndSlots(ctx, id)
		if err != nil {
			return Outcome{}, err
		}
		if item == nil {
			return NotFound(), nil
		}

		gateError := ""
		if !codeOK {
			gateError = MsgWrongSecurityCode
		}
		return Render(ViewItemForm, ViewData{
			"Item":         item,
			"Form":         form,
			"Slots":        slots,
			"Errors":       errs,
			"SecurityCode": securityCode,
			"GateError":    gateError,
		}), nil
	}

	item, err := w.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return NotFound(), nil
		}
		return Outcome{}, err
	}

	slotID, err := form.SlotID()
	if err != nil {
		return Outcome{}, err
	}
	if err := item.Update(form.Name, form.Description, form.Quality, slotID); err != nil {
		return Outcome{}, err
	}

	if form.File != nil {
		// Re-upload keyed by the item's own id so the previously stored
		// image is overwritten and cached copies invalidated.
		res, err := w.media.Upload(ctx, UploadInput{
			Data:        form.File.Data,
			ContentType: form.File.ContentType,
			Folder:      w.cfg.MediaFolder,
			Key:         id.String(),
			Overwrite:   true,
			Invalidate:  true,
		})
		if err != nil {
			return Outcome{}, err
		}
		item.SetImageURL(res.PublicURL)
	}
	// Without a new file the existing image reference is retained.

	if err := w.items.Update(ctx, item); err != nil {
		return Outcome{}, err
	}

	return Redirect("/items/" + item.ID.String()), nil
}

// Delete removes the item at id. Deletion is refused while any listing
// references the item or when the security code does not match; refusal
// re-renders the confirmation page and mutates nothing.
func (w *ItemWriter) Delete(ctx context.Context, id uuid.UUID, securityCode string) (Outcome, error) {
	item, instances, err := w.fetchItemAndInstances(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if item == nil {
		return Redirect("/items"), nil
	}

	if len(instances) > 0 {
		return Render(ViewItemDelete, ViewData{
			"Item":         item,
			"Listings":     instances,
			"SecurityCode": securityCode,
			"GateError":    MsgItemBlockedByListings,
		}), nil
	}

	if !w.codeMatches(securityCode) {
		return Render(ViewItemDelete, ViewData{
			"Item":         item,
			"Listings":     instances,
			"SecurityCode": securityCode,
			"GateError":    MsgWrongSecurityCode,
		}), nil
	}

	if err := w.items.Delete(ctx, id); err != nil {
		return Outcome{}, err
	}

	return Redirect("/items"), nil
}

// codeMatches compares the caller-supplied code against the expected
// constant in constant time.
func (w *ItemWriter) codeMatches(code string) bool {
	return subtle.ConstantTimeCompare([]byte(code), []byte(w.cfg.SecurityCode)) == 1
}

// fetchItemAndSlots issues the two independent reads concurrently.
// A missing item is reported as a nil item, not an error.
func (w *ItemWriter) fetchItemAndSlots(ctx context.Context, id uuid.UUID) (*inventory.Item, []inventory.Slot, error) {
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
		item, itemErr = w.items.FindByID(ctx, id)
	}()
	go func() {
		defer wg.Done()
		slots, slotErr = w.slots.FindAll(ctx)
	}()
	wg.Wait()

	if itemErr != nil {
		if errors.Is(itemErr, shared.ErrNotFound) {
			item = nil
		} else {
			return nil, nil, itemErr
		}
	}
	if slotErr != nil {
		return nil, nil, slotErr
	}
	return item, slots, nil
}

// fetchItemAndInstances issues the two independent reads concurrently.
// A missing item is reported as a nil item, not an error.
func (w *ItemWriter) fetchItemAndInstances(ctx context.Context, id uuid.UUID) (*inventory.Item, []inventory.ItemInstance, error) {
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
		item, itemErr = w.items.FindByID(ctx, id)
	}()
	go func() {
		defer wg.Done()
		listings, listErr = w.instances.FindByItem(ctx, id)
	}()
	wg.Wait()

	if itemErr != nil {
		if errors.Is(itemErr, shared.ErrNotFound) {
			item = nil
		} else {
			return nil, nil, itemErr
		}
	}
	if listErr != nil {
		return nil, nil, listErr
	}
	return item, listings, nil
}

