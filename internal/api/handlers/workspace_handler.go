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
// Workspace Handler
// ============================================

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
	log              *zap.Logger
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	workspaces, err := h.workspaceService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch workspaces")
		return
	}

	response := make([]models.WorkspaceResponse, len(workspaces))
	for i, ws := range workspaces {
		response[i] = toWorkspaceResponse(ws)
	}
	c.JSON(http.StatusOK, response)
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	ws, err := h.workspaceService.Create(c.Request.Context(), userID, service.CreateWorkspaceRequest{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Visibility:  req.Visibility,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to create workspace")
		return
	}

	c.JSON(http.StatusCreated, toWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	ws, err := h.workspaceService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch workspace")
		return
	}

	c.JSON(http.StatusOK, toWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	ws, err := h.workspaceService.Update(c.Request.Context(), userID, c.Param("id"), service.UpdateWorkspaceRequest{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Visibility:  req.Visibility,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to update workspace")
		return
	}

	c.JSON(http.StatusOK, toWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete workspace")
		return
	}

	c.Status(http.StatusNoContent)
}
