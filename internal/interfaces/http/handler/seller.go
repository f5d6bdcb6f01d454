package handler

import (
	"net/http"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// SellerHandler serves the seller pages
type SellerHandler struct {
	BaseHandler
	sellers *inventoryapp.SellerService
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(views PageRenderer, sellers *inventoryapp.SellerService) *SellerHandler {
	return &SellerHandler{
		BaseHandler: BaseHandler{views: views},
		sellers:     sellers,
	}
}

// RegisterRoutes registers the seller routes
func (h *SellerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sellers := rg.Group("/sellers")
	{
		sellers.GET("", h.List)
		sellers.GET("/new", h.NewForm)
		sellers.POST("", h.Create)
		sellers.GET("/:id", h.Detail)
		sellers.GET("/:id/edit", h.EditForm)
		sellers.POST("/:id", h.Update)
		sellers.GET("/:id/delete", h.ConfirmDelete)
		sellers.POST("/:id/delete", h.Delete)
	}
}

// List renders the seller table
func (h *SellerHandler) List(c *gin.Context) {
	sellers, err := h.sellers.List(c.Request.Context(), listFilter(c))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "sellers", inventoryapp.ViewData{
		"Sellers": sellers,
		"Search":  c.Query("q"),
	})
}

// Detail renders a seller with the listings it stocks
func (h *SellerHandler) Detail(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	seller, listings, err := h.sellers.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "seller_detail", inventoryapp.ViewData{
		"Seller":   seller,
		"Listings": listings,
	})
}

// NewForm renders the empty create form
func (h *SellerHandler) NewForm(c *gin.Context) {
	h.views.Render(c, http.StatusOK, "seller_form", inventoryapp.ViewData{})
}

// Create persists a new seller
func (h *SellerHandler) Create(c *gin.Context) {
	outcome, err := h.sellers.Create(c.Request.Context(), c.PostForm("name"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.dispatch(c, outcome)
}

// EditForm renders the rename form
func (h *SellerHandler) EditForm(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	seller, _, err := h.sellers.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "seller_form", inventoryapp.ViewData{
		"Seller": seller,
		"Name":   seller.Name,
	})
}

// Update renames a seller
func (h *SellerHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	outcome, err := h.sellers.Update(c.Request.Context(), id, c.PostForm("name"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.dispatch(c, outcome)
}

// ConfirmDelete renders the delete confirmation page
func (h *SellerHandler) ConfirmDelete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	seller, listings, err := h.sellers.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "seller_delete", inventoryapp.ViewData{
		"Seller":   seller,
		"Listings": listings,
	})
}

// Delete removes a seller behind the security code gate
func (h *SellerHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	outcome, err := h.sellers.Delete(c.Request.Context(), id, c.PostForm("security_code"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.dispatch(c, outcome)
}
