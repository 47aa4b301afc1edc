package service

import (
	"context"
	"strings"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

// ============================================
// Workspace Service
// ============================================

type CreateWorkspaceRequest struct {
	Name        string
	Description *string
	Type        string
	Visibility  string
}

type UpdateWorkspaceRequest struct {
	Name        *string
	Description *string
	Type        *string
	Visibility  *string
}

type WorkspaceService interface {
	Create(ctx context.Context, userID string, req CreateWorkspaceRequest) (*repository.Workspace, error)
	List(ctx context.Context, userID string) ([]*repository.Workspace, error)
	Get(ctx context.Context, userID, id string) (*repository.Workspace, error)
	Update(ctx context.Context, userID, id string, req UpdateWorkspaceRequest) (*repository.Workspace, error)
	Delete(ctx context.Context, userID, id string) error
}

type workspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	boardRepo     repository.BoardRepository
	views         *viewCache
}

func NewWorkspaceService(workspaceRepo repository.WorkspaceRepository, boardRepo repository.BoardRepository, views *viewCache) WorkspaceService {
	return &workspaceService{workspaceRepo: workspaceRepo, boardRepo: boardRepo, views: views}
}

func (s *workspaceService) Create(ctx context.Context, userID string, req CreateWorkspaceRequest) (*repository.Workspace, error) {
	name, err := requireText("name", req.Name, types.MaxWorkspaceName)
	if err != nil {
		return nil, err
	}

	ws := &repository.Workspace{
		Name:        name,
		Description: trimOptional(req.Description),
		Type:        types.WorkspacePersonal,
		Visibility:  types.VisibilityPrivate,
		CreatedBy:   userID,
	}
	if req.Type != "" {
		if !types.IsValidWorkspaceType(req.Type) {
			return nil, invalid("invalid workspace type %q", req.Type)
		}
		ws.Type = req.Type
	}
	if req.Visibility != "" {
		if !types.IsValidWorkspaceVisibility(req.Visibility) {
			return nil, invalid("invalid workspace visibility %q", req.Visibility)
		}
		ws.Visibility = req.Visibility
	}

	if err := s.workspaceRepo.Create(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) List(ctx context.Context, userID string) ([]*repository.Workspace, error) {
	return s.workspaceRepo.FindByOwner(ctx, userID)
}

// Get only returns workspaces the caller created.
func (s *workspaceService) Get(ctx context.Context, userID, id string) (*repository.Workspace, error) {
	ws, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ws == nil || ws.CreatedBy != userID {
		return nil, notFound("workspace")
	}
	return ws, nil
}

func (s *workspaceService) Update(ctx context.Context, userID, id string, req UpdateWorkspaceRequest) (*repository.Workspace, error) {
	ws, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name, err := requireText("name", *req.Name, types.MaxWorkspaceName)
		if err != nil {
			return nil, err
		}
		ws.Name = name
	}
	if req.Description != nil {
		ws.Description = trimOptional(req.Description)
	}
	if req.Type != nil {
		if !types.IsValidWorkspaceType(*req.Type) {
			return nil, invalid("invalid workspace type %q", *req.Type)
		}
		ws.Type = *req.Type
	}
	if req.Visibility != nil {
		if !types.IsValidWorkspaceVisibility(*req.Visibility) {
			return nil, invalid("invalid workspace visibility %q", *req.Visibility)
		}
		ws.Visibility = *req.Visibility
	}

	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		return nil, storeError(err, "workspace")
	}
	return ws, nil
}

// Delete removes the workspace; its boards are detached, not deleted.
func (s *workspaceService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	boards, err := s.boardRepo.FindByWorkspace(ctx, id)
	if err != nil {
		return err
	}

	if err := s.workspaceRepo.Delete(ctx, id); err != nil {
		return storeError(err, "workspace")
	}

	boardIDs := make([]string, len(boards))
	for i, b := range boards {
		boardIDs[i] = b.ID
	}
	s.views.invalidate(ctx, boardIDs...)
	return nil
}

// trimOptional trims an optional text field; blank becomes nil.
func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
