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
// Checklist Handler
// ============================================

type ChecklistHandler struct {
	checklistService service.ChecklistService
	log              *zap.Logger
}

func (h *ChecklistHandler) ListByCard(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	items, err := h.checklistService.ListByCard(c.Request.Context(), userID, c.Param("cardId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch checklist")
		return
	}

	response := make([]models.ChecklistItemResponse, len(items))
	for i, it := range items {
		response[i] = toChecklistItemResponse(it)
	}
	c.JSON(http.StatusOK, response)
}

func (h *ChecklistHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateChecklistItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.checklistService.Create(c.Request.Context(), userID, req.CardID, req.Text)
	if err != nil {
		respondError(c, h.log, err, "Failed to create checklist item")
		return
	}

	c.JSON(http.StatusCreated, toChecklistItemResponse(item))
}

func (h *ChecklistHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateChecklistItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.checklistService.Update(c.Request.Context(), userID, c.Param("id"), service.UpdateChecklistItemRequest{
		Text:      req.Text,
		Completed: req.Completed,
		Position:  req.Position,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to update checklist item")
		return
	}

	c.JSON(http.StatusOK, toChecklistItemResponse(item))
}

func (h *ChecklistHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.checklistService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete checklist item")
		return
	}

	c.Status(http.StatusNoContent)
}
