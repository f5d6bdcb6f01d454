package inventory

import (
	"context"
	"crypto/subtle"
	"errors"
	"html"
	"strings"
	"sync"

	"github.com/armoryhq/backend/internal/domain/inventory"
	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MsgSellerBlockedByListings is returned when a seller still stocks listings
const MsgSellerBlockedByListings = "Seller still has stocked listings."

// Seller view names
const (
	ViewSellerForm   = "seller_form"
	ViewSellerDelete = "seller_delete"
)

// SellerService handles seller CRUD. Sellers carry no image and no
// validation beyond a non-empty name, so the flows are lighter than the
// item write pipeline while sharing its Outcome contract.
type SellerService struct {
	sellers   inventory.SellerRepository
	instances inventory.ItemInstanceRepository
	cfg       WriterConfig
}

// NewSellerService creates a new SellerService
func NewSellerService(
	sellers inventory.SellerRepository,
	instances inventory.ItemInstanceRepository,
	cfg WriterConfig,
) *SellerService {
	return &SellerService{
		sellers:   sellers,
		instances: instances,
		cfg:       cfg,
	}
}

// List returns sellers matching the filter
func (s *SellerService) List(ctx context.Context, filter shared.Filter) ([]inventory.Seller, error) {
	return s.sellers.FindAll(ctx, filter)
}

// Detail returns a seller together with the listings it stocks.
// Returns shared.ErrNotFound when the seller does not exist.
func (s *SellerService) Detail(ctx context.Context, id uuid.UUID) (*inventory.Seller, []inventory.ItemInstance, error) {
	var (
		wg        sync.WaitGroup
		seller    *inventory.Seller
		listings  []inventory.ItemInstance
		sellerErr error
		listErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		seller, sellerErr = s.sellers.FindByID(ctx, id)
	}()
	go func() {
		defer wg.Done()
		listings, listErr = s.instances.FindBySeller(ctx, id)
	}()
	wg.Wait()

	if sellerErr != nil {
		return nil, nil, sellerErr
	}
	if listErr != nil {
		return nil, nil, listErr
	}
	return seller, listings, nil
}

// Create validates and persists a new seller
func (s *SellerService) Create(ctx context.Context, rawName string) (Outcome, error) {
	name := html.EscapeString(strings.TrimSpace(rawName))
	if name == "" {
		return Render(ViewSellerForm, ViewData{
			"Name":   name,
			"Errors": FieldErrors{{Field: "name", Message: MsgNameEmpty}},
		}), nil
	}

	seller, err := inventory.NewSeller(name)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.sellers.Insert(ctx, seller); err != nil {
		return Outcome{}, err
	}

	return Redirect("/sellers/" + seller.ID.String()), nil
}

// Update renames an existing seller
func (s *SellerService) Update(ctx context.Context, id uuid.UUID, rawName string) (Outcome, error) {
	name := html.EscapeString(strings.TrimSpace(rawName))

	seller, err := s.sellers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return NotFound(), nil
		}
		return Outcome{}, err
	}

	if name == "" {
		return Render(ViewSellerForm, ViewData{
			"Seller": seller,
			"Name":   name,
			"Errors": FieldErrors{{Field: "name", Message: MsgNameEmpty}},
		}), nil
	}

	if err := seller.Rename(name); err != nil {
		return Outcome{}, err
	}
	if err := s.sellers.Update(ctx, seller); err != nil {
		return Outcome{}, err
	}

	return Redirect("/sellers/" + seller.ID.String()), nil
}

// Delete removes a seller. Deletion is refused while the seller stocks
// listings or when the security code does not match, mirroring the item
// delete guard.
func (s *SellerService) Delete(ctx context.Context, id uuid.UUID, securityCode string) (Outcome, error) {
	seller, listings, err := s.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Redirect("/sellers"), nil
		}
		return Outcome{}, err
	}

	if len(listings) > 0 {
		return Render(ViewSellerDelete, ViewData{
			"Seller":       seller,
			"Listings":     listings,
			"SecurityCode": securityCode,
			"GateError":    MsgSellerBlockedByListings,
		}), nil
	}

	if subtle.ConstantTimeCompare([]byte(securityCode), []byte(s.cfg.SecurityCode)) != 1 {
		return Render(ViewSellerDelete, ViewData{
			"Seller":       seller,
			"Listings":     listings,
			"SecurityCode": securityCode,
			"GateError":    MsgWrongSecurityCode,
		}), nil
	}

	if err := s.sellers.Delete(ctx, id); err != nil {
		return Outcome{}, err
	}

	return Redirect("/sellers"), nil
}
