// Package handler contains the gin handlers for the web interface.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	"github.com/armoryhq/backend/internal/domain/shared"
	"github.com/armoryhq/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PageRenderer renders a named page with a data bag
type PageRenderer interface {
	Render(c *gin.Context, status int, name string, data inventoryapp.ViewData)
}

// BaseHandler provides outcome dispatch and error pages shared by all handlers
type BaseHandler struct {
	views PageRenderer
}

// dispatch maps a pipeline outcome onto the HTTP response:
// redirects use 303 so the browser re-requests with GET, re-renders
// answer 200 with the page carrying the errors, and a missing target
// gets the 404 page.
func (h *BaseHandler) dispatch(c *gin.Context, outcome inventoryapp.Outcome) {
	switch outcome.Kind {
	case inventoryapp.OutcomeRedirect:
		c.Redirect(http.StatusSeeOther, outcome.Location)
	case inventoryapp.OutcomeRender:
		h.views.Render(c, http.StatusOK, outcome.View, outcome.Data)
	case inventoryapp.OutcomeNotFound:
		h.notFound(c)
	default:
		h.serverError(c, errors.New("unhandled outcome kind"))
	}
}

func (h *BaseHandler) notFound(c *gin.Context) {
	h.views.Render(c, http.StatusNotFound, "not_found", inventoryapp.ViewData{})
}

func (h *BaseHandler) serverError(c *gin.Context, err error) {
	logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
	h.views.Render(c, http.StatusInternalServerError, "error", inventoryapp.ViewData{})
}

// fail renders the page matching the error class
func (h *BaseHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		h.notFound(c)
		return
	}
	h.serverError(c, err)
}

// parseID reads the :id path parameter. A malformed ID renders the 404
// page, the same as an unknown one.
func (h *BaseHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return uuid.Nil, false
	}
	return id, true
}

// listFilter builds the list filter from query parameters
func listFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	filter.Search = c.Query("q")
	return filter
}
