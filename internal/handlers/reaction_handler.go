package handlers

import (
	"net/http"

	"github.com/devhasib/buzznet/backend/internal/models"
	"github.com/devhasib/buzznet/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles emoji reactions on posts, comments and replies
type ReactionHandler struct {
	reactionRepository repositories.ReactionRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionRepo repositories.ReactionRepository) *ReactionHandler {
	return &ReactionHandler{reactionRepository: reactionRepo}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/reactions/:item_type/:item_id", h.ToggleReaction)
	g.GET("/reactions/:item_type/:item_id", h.GetReactions)
}

// ToggleReaction toggles the current user's emoji reaction on an item. Two
// sequential identical calls net to the original state.
func (h *ReactionHandler) ToggleReaction(c echo.Context) error {
	uid := currentUID(c)
	itemType := c.Param("item_type")
	itemID := c.Param("item_id")

	if !models.ValidReactionItemType(itemType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown reaction item type")
	}

	var req models.ToggleReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Emoji keys live alongside the bucket metadata fields; the metadata
	// names themselves are off limits.
	switch req.Emoji {
	case "_id", "itemId", "parentId":
		return echo.NewHTTPError(http.StatusBadRequest, "Reserved emoji name")
	}

	ctx := c.Request().Context()
	if err := h.reactionRepository.ToggleReaction(ctx, itemType, itemID, uid, req.Emoji, req.ParentID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reactions, err := h.reactionRepository.GetReactions(ctx, itemType, itemID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reactions)
}

// GetReactions returns the emoji-to-users map for an item; an item nobody has
// reacted to yields an empty map
func (h *ReactionHandler) GetReactions(c echo.Context) error {
	itemType := c.Param("item_type")
	if !models.ValidReactionItemType(itemType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown reaction item type")
	}

	reactions, err := h.reactionRepository.GetReactions(c.Request().Context(), itemType, c.Param("item_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reactions)
}
