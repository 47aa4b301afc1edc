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
// Board Member Handler
// ============================================

type BoardMemberHandler struct {
	memberService service.BoardMemberService
	log           *zap.Logger
}

func (h *BoardMemberHandler) ListByBoard(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	members, err := h.memberService.ListByBoard(c.Request.Context(), userID, c.Param("boardId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch board members")
		return
	}

	response := make([]models.BoardMemberResponse, len(members))
	for i, m := range members {
		response[i] = toBoardMemberDetailResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardMemberHandler) Add(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.AddBoardMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.Add(c.Request.Context(), userID, service.AddBoardMemberRequest{
		BoardID: req.BoardID,
		UserID:  req.UserID,
		Role:    req.Role,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to add board member")
		return
	}

	c.JSON(http.StatusCreated, toBoardMemberResponse(member))
}

func (h *BoardMemberHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateBoardMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), userID, c.Param("id"), req.Role, req.IsStarred)
	if err != nil {
		respondError(c, h.log, err, "Failed to update board member")
		return
	}

	c.JSON(http.StatusOK, toBoardMemberResponse(member))
}

func (h *BoardMemberHandler) Remove(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.memberService.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to remove board member")
		return
	}

	c.Status(http.StatusNoContent)
}
