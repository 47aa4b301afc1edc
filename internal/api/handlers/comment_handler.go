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
// Comment Handler
// ============================================

type CommentHandler struct {
	commentService service.CommentService
	log            *zap.Logger
}

func (h *CommentHandler) ListByCard(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListByCard(c.Request.Context(), userID, c.Param("cardId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch comments")
		return
	}

	response := make([]models.CommentResponse, len(comments))
	for i, cm := range comments {
		response[i] = toCommentDetailResponse(cm)
	}
	c.JSON(http.StatusOK, response)
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), userID, req.CardID, req.Content)
	if err != nil {
		respondError(c, h.log, err, "Failed to create comment")
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		respondError(c, h.log, err, "Failed to update comment")
		return
	}

	c.JSON(http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete comment")
		return
	}

	c.Status(http.StatusNoContent)
}
