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
// Column Handler
// ============================================

type ColumnHandler struct {
	columnService service.ColumnService
	log           *zap.Logger
}

// ListByBoard handles GET /columns/board/:boardId?archived=true
func (h *ColumnHandler) ListByBoard(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	includeArchived := c.Query("archived") == "true"
	columns, err := h.columnService.ListByBoard(c.Request.Context(), userID, c.Param("boardId"), includeArchived)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch columns")
		return
	}

	response := make([]models.ColumnResponse, len(columns))
	for i, col := range columns {
		response[i] = toColumnResponse(col)
	}
	c.JSON(http.StatusOK, response)
}

func (h *ColumnHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateColumnRequest
	if !bindJSON(c, &req) {
		return
	}

	column, err := h.columnService.Create(c.Request.Context(), userID, req.BoardID, req.Title)
	if err != nil {
		respondError(c, h.log, err, "Failed to create column")
		return
	}

	c.JSON(http.StatusCreated, toColumnResponse(column))
}

func (h *ColumnHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateColumnRequest
	if !bindJSON(c, &req) {
		return
	}

	column, err := h.columnService.Update(c.Request.Context(), userID, c.Param("id"), service.UpdateColumnRequest{
		Title:      req.Title,
		Position:   req.Position,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to update column")
		return
	}

	c.JSON(http.StatusOK, toColumnResponse(column))
}

func (h *ColumnHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.columnService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete column")
		return
	}

	c.Status(http.StatusNoContent)
}
