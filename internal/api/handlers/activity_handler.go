package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/api/middleware"
	"github.com/Marga-Ghale/ora-boards-backend/internal/service"
)

// ============================================
// Activity Handler
// ============================================

type ActivityHandler struct {
	activityService service.ActivityService
	log             *zap.Logger
}

func (h *ActivityHandler) ListByBoard(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	entries, err := h.activityService.ListByBoard(c.Request.Context(), userID, c.Param("id"), limit)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch activity")
		return
	}

	c.JSON(http.StatusOK, toActivityResponses(entries))
}

func (h *ActivityHandler) ListByCard(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	entries, err := h.activityService.ListByCard(c.Request.Context(), userID, c.Param("id"), limit)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch activity")
		return
	}

	c.JSON(http.StatusOK, toActivityResponses(entries))
}

// queryLimit reads ?limit=; absent means the service default.
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return limit, true
}
