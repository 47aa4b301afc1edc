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
// Label Handler
// ============================================

type LabelHandler struct {
	labelService service.LabelService
	log          *zap.Logger
}

func (h *LabelHandler) ListByBoard(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	labels, err := h.labelService.ListByBoard(c.Request.Context(), userID, c.Param("boardId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch labels")
		return
	}

	response := make([]models.LabelResponse, len(labels))
	for i, l := range labels {
		response[i] = toLabelResponse(l)
	}
	c.JSON(http.StatusOK, response)
}

func (h *LabelHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateLabelRequest
	if !bindJSON(c, &req) {
		return
	}

	label, err := h.labelService.Create(c.Request.Context(), userID, req.BoardID, req.Name, req.Color)
	if err != nil {
		respondError(c, h.log, err, "Failed to create label")
		return
	}

	c.JSON(http.StatusCreated, toLabelResponse(label))
}

func (h *LabelHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateLabelRequest
	if !bindJSON(c, &req) {
		return
	}

	label, err := h.labelService.Update(c.Request.Context(), userID, c.Param("id"), req.Name, req.Color)
	if err != nil {
		respondError(c, h.log, err, "Failed to update label")
		return
	}

	c.JSON(http.StatusOK, toLabelResponse(label))
}

func (h *LabelHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.labelService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete label")
		return
	}

	c.Status(http.StatusNoContent)
}

// ============================================
// Card Label Handler
// ============================================

type CardLabelHandler struct {
	cardLabelService service.CardLabelService
	log              *zap.Logger
}

func (h *CardLabelHandler) ListByCard(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	labels, err := h.cardLabelService.ListByCard(c.Request.Context(), userID, c.Param("cardId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch card labels")
		return
	}

	response := make([]models.CardLabelResponse, len(labels))
	for i, l := range labels {
		response[i] = models.CardLabelResponse{ID: l.ID, Name: l.Name, Color: l.Color}
	}
	c.JSON(http.StatusOK, response)
}

func (h *CardLabelHandler) Assign(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.AssignLabelRequest
	if !bindJSON(c, &req) {
		return
	}

	cl, err := h.cardLabelService.Assign(c.Request.Context(), userID, req.CardID, req.LabelID)
	if err != nil {
		respondError(c, h.log, err, "Failed to assign label")
		return
	}

	c.JSON(http.StatusCreated, models.CardLabelAssignmentResponse{
		ID:        cl.ID,
		CardID:    cl.CardID,
		LabelID:   cl.LabelID,
		CreatedAt: cl.CreatedAt,
	})
}

func (h *CardLabelHandler) Unassign(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	err := h.cardLabelService.Unassign(c.Request.Context(), userID, c.Param("cardId"), c.Param("labelId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to remove label")
		return
	}

	c.Status(http.StatusNoContent)
}
