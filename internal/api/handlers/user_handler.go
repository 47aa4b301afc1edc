package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/api/middleware"
	"github.com/Marga-Ghale/ora-boards-backend/internal/models"
	"github.com/Marga-Ghale/ora-boards-backend/internal/service"
)

// ============================================
// User Handler
// ============================================

type UserHandler struct {
	userService service.UserService
	log         *zap.Logger
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) UpdateCurrentUser(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), userID, req.FullName, req.AvatarURL)
	if err != nil {
		respondError(c, h.log, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	stats, err := h.userService.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, models.UserStatsResponse{
		TotalBoards:    stats.TotalBoards,
		StarredBoards:  stats.StarredBoards,
		TotalCards:     stats.TotalCards,
		CompletedCards: stats.CompletedCards,
		OverdueCards:   stats.OverdueCards,
	})
}
