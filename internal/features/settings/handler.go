// Package settings serves the device-local preferences: UI settings, custom
// categories and the remembered active collection. None of these touch the
// remote store.
package settings

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/datejar/internal/localstore"
	"github.com/xyz-asif/datejar/internal/pkg/response"
)

type Handler struct {
	store *localstore.Store
}

func NewHandler(store *localstore.Store) *Handler {
	return &Handler{store: store}
}

// CategoriesRequest replaces the custom category list.
type CategoriesRequest struct {
	Categories []string `json:"categories" binding:"required"`
}

// ActiveCollectionRequest remembers the collection the user works in.
type ActiveCollectionRequest struct {
	Name string `json:"name" binding:"required" example:"Gerichte"`
}

// Get godoc
// @Summary Read local preferences
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /settings/ [get]
func (h *Handler) Get(c *gin.Context) {
	prefs, err := h.store.LoadSettings()
	if err != nil {
		response.InternalServerError(c, "Failed to read settings")
		return
	}
	categories, err := h.store.LoadCustomCategories()
	if err != nil {
		response.InternalServerError(c, "Failed to read categories")
		return
	}
	active, err := h.store.LoadActiveCollection()
	if err != nil {
		response.InternalServerError(c, "Failed to read active collection")
		return
	}

	response.Success(c, gin.H{
		"settings":         prefs,
		"customCategories": categories,
		"activeCollection": active,
	})
}

// Update godoc
// @Summary Replace local preferences
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body localstore.Settings true "Preferences"
// @Success 200 {object} response.SuccessResponse
// @Router /settings/ [put]
func (h *Handler) Update(c *gin.Context) {
	var prefs localstore.Settings
	if err := c.ShouldBindJSON(&prefs); err != nil {
		response.BindJSONError(c, err)
		return
	}
	if err := h.store.SaveSettings(prefs); err != nil {
		response.InternalServerError(c, "Failed to save settings")
		return
	}
	response.Success(c, prefs)
}

// UpdateCategories godoc
// @Summary Replace the custom category list
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoriesRequest true "Custom categories"
// @Success 200 {object} response.SuccessResponse
// @Router /settings/categories [put]
func (h *Handler) UpdateCategories(c *gin.Context) {
	var req CategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	if err := h.store.SaveCustomCategories(req.Categories); err != nil {
		response.InternalServerError(c, "Failed to save categories")
		return
	}
	response.Success(c, gin.H{"categories": req.Categories})
}

// UpdateActiveCollection godoc
// @Summary Remember the active collection
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ActiveCollectionRequest true "Collection name"
// @Success 200 {object} response.SuccessResponse
// @Router /settings/collection [put]
func (h *Handler) UpdateActiveCollection(c *gin.Context) {
	var req ActiveCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	if err := h.store.SaveActiveCollection(req.Name); err != nil {
		response.InternalServerError(c, "Failed to save active collection")
		return
	}
	response.Success(c, gin.H{"activeCollection": req.Name})
}
