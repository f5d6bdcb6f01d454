package handler

import (
	"net/http"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// ListingHandler serves the stocked listing pages
type ListingHandler struct {
	BaseHandler
	listings *inventoryapp.ListingService
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(views PageRenderer, listings *inventoryapp.ListingService) *ListingHandler {
	return &ListingHandler{
		BaseHandler: BaseHandler{views: views},
		listings:    listings,
	}
}

// RegisterRoutes registers the listing routes
func (h *ListingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	listings := rg.Group("/listings")
	{
		listings.GET("", h.List)
		listings.GET("/new", h.NewForm)
		listings.POST("", h.Create)
		listings.POST("/:id", h.UpdateStock)
		listings.POST("/:id/delete", h.Delete)
	}
}

// List renders the listing table
func (h *ListingHandler) List(c *gin.Context) {
	listings, err := h.listings.List(c.Request.Context(), listFilter(c))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "listings", inventoryapp.ViewData{
		"Listings": listings,
	})
}

// NewForm renders the create form with the item and seller selects
func (h *ListingHandler) NewForm(c *gin.Context) {
	items, sellers, err := h.listings.FormData(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "listing_form", inventoryapp.ViewData{
		"Form":    inventoryapp.ListingForm{},
		"Items":   items,
		"Sellers": sellers,
	})
}

// Create persists a new listing
func (h *ListingHandler) Create(c *gin.Context) {
	outcome, err := h.listings.Create(c.Request.Context(), inventoryapp.ListingForm{
		Item:   c.PostForm("item"),
		Seller: c.PostForm("seller"),
		Stock:  c.PostForm("stock"),
	})
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.dispatch(c, outcome)
}

// UpdateStock replaces a listing's stock count
func (h *ListingHandler) UpdateStock(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	outcome, err := h.listings.UpdateStock(c.Request.Context(), id, c.PostForm("stock"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.dispatch(c, outcome)
}

// Delete removes a listing
func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	outcome, err := h.listings.Delete(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.dispatch(c, outcome)
}
