package collections

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/datejar/internal/jar"
	"github.com/xyz-asif/datejar/internal/pkg/response"
)

type Handler struct {
	ctrl *jar.Controller
}

func NewHandler(ctrl *jar.Controller) *Handler {
	return &Handler{ctrl: ctrl}
}

// List godoc
// @Summary List collections
// @Tags collections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /collections/ [get]
func (h *Handler) List(c *gin.Context) {
	response.Success(c, gin.H{
		"collections": h.ctrl.Collections(),
		"offline":     h.ctrl.Offline(),
	})
}

// Create godoc
// @Summary Create a collection
// @Tags collections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCollectionRequest true "Collection data"
// @Success 201 {object} response.SuccessResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /collections/ [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		response.ValidationFailed(c, "name is required")
		return
	}

	col, err := h.ctrl.AddCollection(c.Request.Context(), req.Name)
	if err != nil {
		response.Conflict(c, err.Error())
		return
	}
	response.Created(c, col)
}

// Rename godoc
// @Summary Rename a collection
// @Description Rename the collection and rewrite the type of every idea in it. A partial remote failure leaves the local state renamed and degrades the session to offline persistence.
// @Tags collections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Collection ID"
// @Param request body RenameCollectionRequest true "New name"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /collections/{id} [put]
func (h *Handler) Rename(c *gin.Context) {
	var req RenameCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		response.ValidationFailed(c, "name is required")
		return
	}

	err := h.ctrl.RenameCollection(c.Request.Context(), c.Param("id"), req.Name)
	h.cascadeResult(c, err)
}

// Delete godoc
// @Summary Delete a collection
// @Description Delete the collection and every idea in it. The last remaining collection cannot be deleted.
// @Tags collections
// @Produce json
// @Security BearerAuth
// @Param id path string true "Collection ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /collections/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	err := h.ctrl.DeleteCollection(c.Request.Context(), c.Param("id"))
	if errors.Is(err, jar.ErrLastCollection) {
		response.Conflict(c, "Cannot delete the last collection")
		return
	}
	h.cascadeResult(c, err)
}

// cascadeResult maps the outcome of a rename/delete cascade. A partial remote
// failure is not an error for the caller: the local state already holds the
// result and the session continues on local persistence.
func (h *Handler) cascadeResult(c *gin.Context, err error) {
	var cascade *jar.CascadeError
	switch {
	case err == nil:
		response.Success(c, gin.H{
			"collections": h.ctrl.Collections(),
			"offline":     h.ctrl.Offline(),
		})
	case errors.As(err, &cascade):
		response.Success(c, gin.H{
			"collections": h.ctrl.Collections(),
			"offline":     true,
			"warning":     cascade.Error(),
		})
	case errors.Is(err, jar.ErrCollectionNotFound):
		response.NotFound(c, "Collection not found")
	default:
		response.InternalServerError(c, "Failed to update collection")
	}
}
