package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/api/middleware"
	"github.com/Marga-Ghale/ora-boards-backend/internal/models"
	"github.com/Marga-Ghale/ora-boards-backend/internal/service"
)

// ============================================
// Board Handler
// ============================================

type BoardHandler struct {
	boardService service.BoardService
	log          *zap.Logger
}

// List handles GET /boards?closed=true|false
func (h *BoardHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var closed *bool
	if raw := c.Query("closed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "closed must be true or false"})
			return
		}
		closed = &v
	}

	boards, err := h.boardService.List(c.Request.Context(), userID, closed)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch boards")
		return
	}

	response := make([]models.BoardResponse, len(boards))
	for i, b := range boards {
		response[i] = toBoardResponse(b)
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boardService.Create(c.Request.Context(), userID, service.CreateBoardRequest{
		Title:       req.Title,
		Description: req.Description,
		Background:  toServiceBackground(req.Background),
		Visibility:  req.Visibility,
		WorkspaceID: req.WorkspaceID,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to create board")
		return
	}

	c.JSON(http.StatusCreated, toBoardResponse(board))
}

func (h *BoardHandler) Get(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	board, err := h.boardService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch board")
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boardService.Update(c.Request.Context(), userID, c.Param("id"), service.UpdateBoardRequest{
		Title:       req.Title,
		Description: req.Description,
		Background:  toServiceBackground(req.Background),
		Visibility:  req.Visibility,
		WorkspaceID: req.WorkspaceID,
		IsClosed:    req.IsClosed,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to update board")
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.boardService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete board")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) ToggleStar(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	member, err := h.boardService.ToggleStar(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to star board")
		return
	}

	c.JSON(http.StatusOK, models.StarResponse{BoardID: member.BoardID, IsStarred: member.IsStarred})
}

func (h *BoardHandler) View(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	view, err := h.boardService.View(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to load board")
		return
	}

	c.JSON(http.StatusOK, toBoardViewResponse(view))
}

func (h *BoardHandler) Stats(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	stats, err := h.boardService.Stats(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch board stats")
		return
	}

	c.JSON(http.StatusOK, models.BoardStatsResponse{
		TotalColumns:   stats.TotalColumns,
		TotalCards:     stats.TotalCards,
		CompletedCards: stats.CompletedCards,
		OverdueCards:   stats.OverdueCards,
		TotalMembers:   stats.TotalMembers,
		TotalLabels:    stats.TotalLabels,
	})
}

func toServiceBackground(bg *models.Background) *service.Background {
	if bg == nil {
		return nil
	}
	return &service.Background{Type: bg.Type, Value: bg.Value}
}
