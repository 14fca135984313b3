package suggest

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/datejar/internal/jar"
	"github.com/xyz-asif/datejar/internal/pkg/response"
)

type Handler struct {
	ctrl   *jar.Controller
	client *Client
}

func NewHandler(ctrl *jar.Controller, client *Client) *Handler {
	return &Handler{ctrl: ctrl, client: client}
}

// AcceptRequest inserts chosen suggestions into a collection.
type AcceptRequest struct {
	Collection string          `json:"collection" example:"Aktivitäten"`
	Ideas      []GeneratedIdea `json:"ideas" binding:"required"`
}

// Suggest godoc
// @Summary Generate date-idea suggestions
// @Description Ask the model for fresh suggestions, avoiding the titles already in the jar
// @Tags suggest
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /suggest/ [post]
func (h *Handler) Suggest(c *gin.Context) {
	var titles []string
	for _, idea := range h.ctrl.Ideas() {
		titles = append(titles, idea.Title)
	}

	ideas, err := h.client.GenerateIdeas(c.Request.Context(), titles)
	if err != nil {
		response.Error(c, 502, "Suggestion service unavailable", "SUGGEST_FAILED")
		return
	}
	response.Success(c, gin.H{"suggestions": ideas})
}

// Accept godoc
// @Summary Accept suggestions
// @Description Insert the chosen suggestions as ideas of the given collection
// @Tags suggest
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AcceptRequest true "Suggestions to accept"
// @Success 201 {object} response.SuccessResponse
// @Router /suggest/accept [post]
func (h *Handler) Accept(c *gin.Context) {
	var req AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	if len(req.Ideas) == 0 {
		response.ValidationFailed(c, "at least one idea is required")
		return
	}
	if req.Collection == "" {
		req.Collection = jar.DefaultCollection
	}

	created := make([]jar.Idea, 0, len(req.Ideas))
	for _, g := range req.Ideas {
		idea := h.ctrl.CreateIdea(c.Request.Context(), jar.Idea{
			Title:       g.Title,
			Category:    g.Category,
			Description: g.Description,
			Location:    g.Location,
			Duration:    g.Duration,
			Cost:        jar.CostLevel(g.Cost),
			CreatedBy:   jar.AICreatedBy,
			Type:        req.Collection,
		})
		created = append(created, idea)
	}

	response.Created(c, gin.H{"ideas": created, "offline": h.ctrl.Offline()})
}
