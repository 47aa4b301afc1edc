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
// Card Handler
// ============================================

type CardHandler struct {
	cardService service.CardService
	log         *zap.Logger
}

func (h *CardHandler) ListByColumn(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	cards, err := h.cardService.ListByColumn(c.Request.Context(), userID, c.Param("columnId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch cards")
		return
	}

	response := make([]models.CardResponse, len(cards))
	for i, card := range cards {
		response[i] = toCardResponse(card)
	}
	c.JSON(http.StatusOK, response)
}

func (h *CardHandler) Get(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	card, err := h.cardService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch card")
		return
	}

	c.JSON(http.StatusOK, toCardResponse(card))
}

func (h *CardHandler) Details(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	details, err := h.cardService.Details(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch card details")
		return
	}

	c.JSON(http.StatusOK, toCardDetailsResponse(details))
}

func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cardService.Create(c.Request.Context(), userID, service.CreateCardRequest{
		ColumnID:    req.ColumnID,
		BoardID:     req.BoardID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CoverColor:  req.CoverColor,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to create card")
		return
	}

	c.JSON(http.StatusCreated, toCardResponse(card))
}

func (h *CardHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cardService.Update(c.Request.Context(), userID, c.Param("id"), service.UpdateCardRequest{
		Title:        req.Title,
		Description:  req.Description,
		Position:     req.Position,
		ColumnID:     req.ColumnID,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		IsCompleted:  req.IsCompleted,
		IsArchived:   req.IsArchived,
		CoverColor:   req.CoverColor,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to update card")
		return
	}

	c.JSON(http.StatusOK, toCardResponse(card))
}

func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.cardService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete card")
		return
	}

	c.Status(http.StatusNoContent)
}

// ============================================
// Card Members
// ============================================

func (h *CardHandler) ListMembers(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	members, err := h.cardService.ListMembers(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch card members")
		return
	}

	response := make([]models.CardMemberResponse, len(members))
	for i, m := range members {
		response[i] = toCardMemberDetailResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

func (h *CardHandler) AddMember(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.AddCardMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.cardService.AddMember(c.Request.Context(), userID, c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, h.log, err, "Failed to add card member")
		return
	}

	c.JSON(http.StatusCreated, toCardMemberResponse(member))
}

func (h *CardHandler) RemoveMember(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.cardService.RemoveMember(c.Request.Context(), userID, c.Param("id"), c.Param("userId")); err != nil {
		respondError(c, h.log, err, "Failed to remove card member")
		return
	}

	c.Status(http.StatusNoContent)
}
