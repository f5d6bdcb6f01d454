package inventory

import (
	"context"
	"errors"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/armoryhq/backend/internal/domain/inventory"
	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Listing form error messages
const (
	MsgListingItemEmpty   = "Item must not be empty."
	MsgListingSellerEmpty = "Seller must not be empty."
	MsgListingStockBad    = "Number of stocks must be a non-negative number."
)

// ViewListingForm is the create/edit form view for listings
const ViewListingForm = "listing_form"

// ListingForm holds the raw form fields of the listing create/edit forms
type ListingForm struct {
	Item   string
	Seller string
	Stock  string
}

// Sanitized returns a copy with every field trimmed and HTML-escaped
func (f ListingForm) Sanitized() ListingForm {
	f.Item = html.EscapeString(strings.TrimSpace(f.Item))
	f.Seller = html.EscapeString(strings.TrimSpace(f.Seller))
	f.Stock = html.EscapeString(strings.TrimSpace(f.Stock))
	return f
}

// Validate runs the listing field rules on the submitted values, producing
// errors as data. Like ItemForm.Validate it runs before escaping.
func (f ListingForm) Validate() FieldErrors {
	var errs FieldErrors

	if _, err := uuid.Parse(strings.TrimSpace(f.Item)); err != nil {
		errs = append(errs, FieldError{Field: "item", Message: MsgListingItemEmpty})
	}
	if _, err := uuid.Parse(strings.TrimSpace(f.Seller)); err != nil {
		errs = append(errs, FieldError{Field: "seller", Message: MsgListingSellerEmpty})
	}
	if n, err := strconv.Atoi(strings.TrimSpace(f.Stock)); err != nil || n < 0 {
		errs = append(errs, FieldError{Field: "stock", Message: MsgListingStockBad})
	}

	return errs
}

// ListingService handles CRUD for stocked listings (item instances)
type ListingService struct {
	instances inventory.ItemInstanceRepository
	items     inventory.ItemRepository
	sellers   inventory.SellerRepository
}

// NewListingService creates a new ListingService
func NewListingService(
	instances inventory.ItemInstanceRepository,
	items inventory.ItemRepository,
	sellers inventory.SellerRepository,
) *ListingService {
	return &ListingService{
		instances: instances,
		items:     items,
		sellers:   sellers,
	}
}

// List returns listings with item and seller populated
func (s *ListingService) List(ctx context.Context, filter shared.Filter) ([]inventory.ItemInstance, error) {
	return s.instances.FindAll(ctx, filter)
}

// Get returns a single listing. Returns shared.ErrNotFound when missing.
func (s *ListingService) Get(ctx context.Context, id uuid.UUID) (*inventory.ItemInstance, error) {
	return s.instances.FindByID(ctx, id)
}

// FormData returns the item and seller lists backing the form selects,
// fetched concurrently.
func (s *ListingService) FormData(ctx context.Context) ([]inventory.Item, []inventory.Seller, error) {
	var (
		wg        sync.WaitGroup
		items     []inventory.Item
		sellers   []inventory.Seller
		itemErr   error
		sellerErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		items, itemErr = s.items.FindAll(ctx, shared.DefaultFilter())
	}()
	go func() {
		defer wg.Done()
		sellers, sellerErr = s.sellers.FindAll(ctx, shared.DefaultFilter())
	}()
	wg.Wait()

	if itemErr != nil {
		return nil, nil, itemErr
	}
	if sellerErr != nil {
		return nil, nil, sellerErr
	}
	return items, sellers, nil
}

// Create validates and persists a new listing
func (s *ListingService) Create(ctx context.Context, raw ListingForm) (Outcome, error) {
	errs := raw.Validate()
	form := raw.Sanitized()

	if len(errs) > 0 {
		items, sellers, err := s.FormData(ctx)
		if err != nil {
			return Outcome{}, err
		}
		return Render(ViewListingForm, ViewData{
			"Form":    form,
			"Items":   items,
			"Sellers": sellers,
			"Errors":  errs,
		}), nil
	}

	itemID, _ := uuid.Parse(form.Item)
	sellerID, _ := uuid.Parse(form.Seller)
	stock, _ := strconv.Atoi(form.Stock)

	// The referenced item and seller must exist; a dangling reference can
	// only come from a tampered form.
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return NotFound(), nil
		}
		return Outcome{}, err
	}
	if _, err := s.sellers.FindByID(ctx, sellerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return NotFound(), nil
		}
		return Outcome{}, err
	}

	listing, err := inventory.NewItemInstance(itemID, sellerID, stock)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.instances.Insert(ctx, listing); err != nil {
		return Outcome{}, err
	}

	return Redirect("/listings"), nil
}

// UpdateStock replaces a listing's stock count
func (s *ListingService) UpdateStock(ctx context.Context, id uuid.UUID, rawStock string) (Outcome, error) {
	listing, err := s.instances.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return NotFound(), nil
		}
		return Outcome{}, err
	}

	stock, convErr := strconv.Atoi(strings.TrimSpace(rawStock))
	if convErr != nil || stock < 0 {
		return Render(ViewListingForm, ViewData{
			"Listing": listing,
			"Errors":  FieldErrors{{Field: "stock", Message: MsgListingStockBad}},
		}), nil
	}

	if err := listing.SetStock(stock); err != nil {
		return Outcome{}, err
	}
	if err := s.instances.Update(ctx, listing); err != nil {
		return Outcome{}, err
	}

	return Redirect("/listings"), nil
}

// Delete removes a listing
func (s *ListingService) Delete(ctx context.Context, id uuid.UUID) (Outcome, error) {
	if _, err := s.instances.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Redirect("/listings"), nil
		}
		return Outcome{}, err
	}

	if err := s.instances.Delete(ctx, id); err != nil {
		return Outcome{}, err
	}
	return Redirect("/listings"), nil
}
