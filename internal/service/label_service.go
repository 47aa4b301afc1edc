package service

import (
	"context"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

// ============================================
// Label Service
// ============================================

type LabelService interface {
	ListByBoard(ctx context.Context, userID, boardID string) ([]*repository.Label, error)
	Create(ctx context.Context, userID, boardID, name, color string) (*repository.Label, error)
	Update(ctx context.Context, userID, id string, name, color *string) (*repository.Label, error)
	Delete(ctx context.Context, userID, id string) error
}

type labelService struct {
	labelRepo repository.LabelRepository
	access    *boardAccess
	views     *viewCache
}

func NewLabelService(labelRepo repository.LabelRepository, access *boardAccess, views *viewCache) LabelService {
	return &labelService{labelRepo: labelRepo, access: access, views: views}
}

func (s *labelService) ListByBoard(ctx context.Context, userID, boardID string) ([]*repository.Label, error) {
	if _, err := s.access.board(ctx, userID, boardID, accessRead); err != nil {
		return nil, err
	}
	return s.labelRepo.FindByBoardID(ctx, boardID)
}

func (s *labelService) Create(ctx context.Context, userID, boardID, name, color string) (*repository.Label, error) {
	name, err := requireText("name", name, types.MaxLabelName)
	if err != nil {
		return nil, err
	}
	if !types.IsValidHexColor(color) {
		return nil, invalid("color must be #RRGGBB")
	}
	if _, err := s.access.board(ctx, userID, boardID, accessWrite); err != nil {
		return nil, err
	}

	label := &repository.Label{BoardID: boardID, Name: name, Color: color}
	if err := s.labelRepo.Create(ctx, label); err != nil {
		return nil, storeError(err, "label "+name)
	}
	s.views.invalidate(ctx, boardID)
	return label, nil
}

func (s *labelService) Update(ctx context.Context, userID, id string, name, color *string) (*repository.Label, error) {
	label, err := s.access.label(ctx, userID, id, accessWrite)
	if err != nil {
		return nil, err
	}

	if name != nil {
		n, err := requireText("name", *name, types.MaxLabelName)
		if err != nil {
			return nil, err
		}
		label.Name = n
	}
	if color != nil {
		if !types.IsValidHexColor(*color) {
			return nil, invalid("color must be #RRGGBB")
		}
		label.Color = *color
	}

	if err := s.labelRepo.Update(ctx, label); err != nil {
		return nil, storeError(err, "label "+label.Name)
	}
	s.views.invalidate(ctx, label.BoardID)
	return label, nil
}

func (s *labelService) Delete(ctx context.Context, userID, id string) error {
	label, err := s.access.label(ctx, userID, id, accessWrite)
	if err != nil {
		return err
	}
	if err := s.labelRepo.Delete(ctx, id); err != nil {
		return storeError(err, "label")
	}
	s.views.invalidate(ctx, label.BoardID)
	return nil
}
