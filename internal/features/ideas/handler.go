package ideas

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/datejar/internal/jar"
	"github.com/xyz-asif/datejar/internal/localstore"
	"github.com/xyz-asif/datejar/internal/pkg/response"
)

type Handler struct {
	ctrl  *jar.Controller
	store *localstore.Store
}

func NewHandler(ctrl *jar.Controller, store *localstore.Store) *Handler {
	return &Handler{ctrl: ctrl, store: store}
}

// activeCollection resolves the collection the request operates on, falling
// back to the locally remembered one.
func (h *Handler) activeCollection(c *gin.Context) string {
	if name := c.Query("collection"); name != "" {
		return name
	}
	name, err := h.store.LoadActiveCollection()
	if err != nil || name == "" {
		return jar.DefaultCollection
	}
	return name
}

// List godoc
// @Summary List visible ideas
// @Description List the ideas of a collection with status, category, cost and duration filters applied
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param collection query string false "Collection name"
// @Param status query string false "all, active, completed or favorites"
// @Param category query string false "Category filter"
// @Param cost query string false "Cost tier filter"
// @Param duration query string false "Duration filter"
// @Success 200 {object} response.SuccessResponse
// @Router /ideas/ [get]
func (h *Handler) List(c *gin.Context) {
	active := h.activeCollection(c)

	status := jar.Status(c.DefaultQuery("status", string(jar.StatusAll)))
	filter := jar.Filter{
		Status:   status,
		Category: c.Query("category"),
		Cost:     jar.CostLevel(c.Query("cost")),
		Duration: c.Query("duration"),
	}

	all := h.ctrl.Ideas()
	view := jar.VisibleIdeas(all, active, filter)

	custom, err := h.store.LoadCustomCategories()
	if err != nil {
		custom = nil
	}

	response.Success(c, gin.H{
		"ideas":      view,
		"categories": jar.CategoryOptions(all, active, custom),
		"durations":  jar.DurationOptions(all, active),
		"offline":    h.ctrl.Offline(),
	})
}

// Create godoc
// @Summary Create a new idea
// @Description Add an idea to a collection; the record is stored optimistically and confirmed against the remote store
// @Tags ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIdeaRequest true "Idea creation data"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /ideas/ [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateCreateIdea(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	idea := h.ctrl.CreateIdea(c.Request.Context(), req.Draft(c.GetString("email")))
	response.Created(c, idea)
}

// Update godoc
// @Summary Update an idea
// @Description Apply a partial update; absent fields keep their value
// @Tags ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Param request body UpdateIdeaRequest true "Fields to change"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /ideas/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateUpdateIdea(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	patch := req.Patch()
	if patch.IsZero() {
		response.BadRequest(c, "No fields to update")
		return
	}

	idea, err := h.ctrl.UpdateIdea(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.NotFound(c, "Idea not found")
		return
	}
	response.Success(c, idea)
}

// Delete godoc
// @Summary Delete an idea
// @Description Remove an idea; the removal is immediate and not rolled back on remote failure
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /ideas/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.ctrl.DeleteIdea(c.Request.Context(), c.Param("id")); err != nil {
		response.NotFound(c, "Idea not found")
		return
	}
	response.Success(c, gin.H{"message": "Idea deleted successfully"})
}

// Toggle godoc
// @Summary Toggle completion
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /ideas/{id}/toggle [post]
func (h *Handler) Toggle(c *gin.Context) {
	h.flip(c, func(idea jar.Idea) jar.IdeaPatch {
		completed := !idea.Completed
		return jar.IdeaPatch{Completed: &completed}
	})
}

// Favorite godoc
// @Summary Toggle favorite
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /ideas/{id}/favorite [post]
func (h *Handler) Favorite(c *gin.Context) {
	h.flip(c, func(idea jar.Idea) jar.IdeaPatch {
		favorite := !idea.IsFavorite
		return jar.IdeaPatch{IsFavorite: &favorite}
	})
}

func (h *Handler) flip(c *gin.Context, patchFor func(jar.Idea) jar.IdeaPatch) {
	id := c.Param("id")

	var current *jar.Idea
	for _, idea := range h.ctrl.Ideas() {
		if idea.ID.String() == id {
			i := idea
			current = &i
			break
		}
	}
	if current == nil {
		response.NotFound(c, "Idea not found")
		return
	}

	idea, err := h.ctrl.UpdateIdea(c.Request.Context(), id, patchFor(*current))
	if err != nil {
		response.NotFound(c, "Idea not found")
		return
	}
	response.Success(c, idea)
}

// Reorder godoc
// @Summary Reorder ideas
// @Description Move the item at fromIndex to toIndex within the filtered view and renumber the visible items
// @Tags ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReorderRequest true "View context and indices"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /ideas/reorder [post]
func (h *Handler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	active := req.Collection
	if active == "" {
		active = h.activeCollection(c)
	}

	view, err := h.ctrl.Reorder(c.Request.Context(), active, req.Filter(), *req.FromIndex, *req.ToIndex)
	if err != nil {
		if errors.Is(err, jar.ErrBadIndex) {
			response.BadRequest(c, "Reorder index out of range")
			return
		}
		response.InternalServerError(c, "Failed to reorder ideas")
		return
	}
	response.Success(c, gin.H{"ideas": view})
}

// Shuffle godoc
// @Summary Draw a random idea
// @Description Pick uniformly at random among the open ideas of the collection
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param collection query string false "Collection name"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /ideas/shuffle [get]
func (h *Handler) Shuffle(c *gin.Context) {
	idea, err := h.ctrl.Shuffle(h.activeCollection(c))
	if err != nil {
		response.NotFound(c, "No open ideas in this collection")
		return
	}
	response.Success(c, idea)
}

// Planner godoc
// @Summary Planner view
// @Description Bucket the collection's ideas into unplanned plus the next twelve months
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param collection query string false "Collection name"
// @Success 200 {object} response.SuccessResponse
// @Router /ideas/planner [get]
func (h *Handler) Planner(c *gin.Context) {
	view := jar.Planner(h.ctrl.Ideas(), h.activeCollection(c), time.Now())
	response.Success(c, view)
}
