package handler

import (
	"errors"
	"io"
	"net/http"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// ItemHandler serves the item pages and the item write pipeline
type ItemHandler struct {
	BaseHandler
	reader *inventoryapp.ItemReader
	writer *inventoryapp.ItemWriter
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(views PageRenderer, reader *inventoryapp.ItemReader, writer *inventoryapp.ItemWriter) *ItemHandler {
	return &ItemHandler{
		BaseHandler: BaseHandler{views: views},
		reader:      reader,
		writer:      writer,
	}
}

// RegisterRoutes registers the item routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.GET("", h.List)
		items.GET("/new", h.NewForm)
		items.POST("", h.Create)
		items.GET("/:id", h.Detail)
		items.GET("/:id/edit", h.EditForm)
		items.POST("/:id", h.Update)
		items.GET("/:id/delete", h.ConfirmDelete)
		items.POST("/:id/delete", h.Delete)
	}
}

// List renders the item table
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.reader.List(c.Request.Context(), listFilter(c))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "items", inventoryapp.ViewData{
		"Items":  items,
		"Search": c.Query("q"),
	})
}

// Detail renders a single item with the listings referencing it
func (h *ItemHandler) Detail(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	item, listings, err := h.reader.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "item_detail", inventoryapp.ViewData{
		"Item":     item,
		"Listings": listings,
	})
}

// NewForm renders the empty create form
func (h *ItemHandler) NewForm(c *gin.Context) {
	slots, err := h.reader.FormData(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "item_form", inventoryapp.ViewData{
		"Form":  inventoryapp.ItemForm{},
		"Slots": slots,
	})
}

// Create runs the create pipeline
func (h *ItemHandler) Create(c *gin.Context) {
	form, err := h.bindForm(c)
	if err != nil {
		h.serverError(c, err)
		return
	}

	outcome, err := h.writer.Create(c.Request.Context(), form)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.dispatch(c, outcome)
}

// EditForm renders the edit form populated with the stored item
func (h *ItemHandler) EditForm(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	item, slots, err := h.reader.EditFormData(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "item_form", inventoryapp.ViewData{
		"Item": item,
		"Form": inventoryapp.ItemForm{
			Name:        item.Name,
			Description: item.Description,
			Quality:     item.Quality,
			Slot:        item.SlotID.String(),
		},
		"Slots": slots,
	})
}

// Update runs the update pipeline with the security code gate
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	form, err := h.bindForm(c)
	if err != nil {
		h.serverError(c, err)
		return
	}

	outcome, err := h.writer.Update(c.Request.Context(), id, form, c.PostForm("security_code"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.dispatch(c, outcome)
}

// ConfirmDelete renders the delete confirmation page.
// A missing item redirects to the list rather than rendering a 404.
func (h *ItemHandler) ConfirmDelete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	item, listings, err := h.reader.DeleteConfirmation(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if item == nil {
		c.Redirect(http.StatusSeeOther, "/items")
		return
	}
	h.views.Render(c, http.StatusOK, "item_delete", inventoryapp.ViewData{
		"Item":     item,
		"Listings": listings,
	})
}

// Delete runs the delete pipeline with the security code gate
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	outcome, err := h.writer.Delete(c.Request.Context(), id, c.PostForm("security_code"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.dispatch(c, outcome)
}

// bindForm reads the item fields and the optional image upload.
// A file input left empty by the browser arrives as an empty part and
// counts as no file. A file part that is present but cannot be read is a
// request failure, not a no-image submit.
func (h *ItemHandler) bindForm(c *gin.Context) (inventoryapp.ItemForm, error) {
	form := inventoryapp.ItemForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Quality:     c.PostForm("quality"),
		Slot:        c.PostForm("slot"),
	}

	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return form, nil
		}
		return form, err
	}
	if header == nil || header.Filename == "" || header.Size == 0 {
		return form, nil
	}

	file, err := header.Open()
	if err != nil {
		return form, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return form, err
	}
	if len(data) == 0 {
		return form, nil
	}

	form.File = &inventoryapp.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	return form, nil
}
