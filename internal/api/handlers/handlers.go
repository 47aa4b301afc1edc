package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth        *AuthHandler
	User        *UserHandler
	Workspace   *WorkspaceHandler
	Board       *BoardHandler
	Column      *ColumnHandler
	Card        *CardHandler
	Label       *LabelHandler
	CardLabel   *CardLabelHandler
	BoardMember *BoardMemberHandler
	Checklist   *ChecklistHandler
	Comment     *CommentHandler
	Activity    *ActivityHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services, log *zap.Logger) *Handlers {
	return &Handlers{
		Auth:        &AuthHandler{authService: services.Auth, log: log},
		User:        &UserHandler{userService: services.User, log: log},
		Workspace:   &WorkspaceHandler{workspaceService: services.Workspace, log: log},
		Board:       &BoardHandler{boardService: services.Board, log: log},
		Column:      &ColumnHandler{columnService: services.Column, log: log},
		Card:        &CardHandler{cardService: services.Card, log: log},
		Label:       &LabelHandler{labelService: services.Label, log: log},
		CardLabel:   &CardLabelHandler{cardLabelService: services.CardLabel, log: log},
		BoardMember: &BoardMemberHandler{memberService: services.BoardMember, log: log},
		Checklist:   &ChecklistHandler{checklistService: services.Checklist, log: log},
		Comment:     &CommentHandler{commentService: services.Comment, log: log},
		Activity:    &ActivityHandler{activityService: services.Activity, log: log},
	}
}

// ============================================
// Error Responses
// ============================================

// respondError writes the status matching a service error. Unexpected errors
// are logged and answered with fallback so no internal detail leaks.
func respondError(c *gin.Context, log *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error(fallback,
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindJSON binds the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
