package service

import (
	"context"

	"github.com/Marga-Ghale/ora-boards-backend/internal/ordering"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

// ============================================
// Column Service
// ============================================

type UpdateColumnRequest struct {
	Title      *string
	Position   *int
	IsArchived *bool
}

type ColumnService interface {
	ListByBoard(ctx context.Context, userID, boardID string, includeArchived bool) ([]*repository.Column, error)
	Create(ctx context.Context, userID, boardID, title string) (*repository.Column, error)
	Update(ctx context.Context, userID, id string, req UpdateColumnRequest) (*repository.Column, error)
	Delete(ctx context.Context, userID, id string) error
}

type columnService struct {
	columnRepo repository.ColumnRepository
	access     *boardAccess
	views      *viewCache
	activity   *activityLog
}

func NewColumnService(columnRepo repository.ColumnRepository, access *boardAccess, views *viewCache, activity *activityLog) ColumnService {
	return &columnService{columnRepo: columnRepo, access: access, views: views, activity: activity}
}

func (s *columnService) ListByBoard(ctx context.Context, userID, boardID string, includeArchived bool) ([]*repository.Column, error) {
	if _, err := s.access.board(ctx, userID, boardID, accessRead); err != nil {
		return nil, err
	}
	columns, err := s.columnRepo.FindByBoardID(ctx, boardID, includeArchived)
	if err != nil {
		return nil, err
	}
	ordering.SortByPosition(columns)
	return columns, nil
}

func (s *columnService) Create(ctx context.Context, userID, boardID, title string) (*repository.Column, error) {
	title, err := requireText("title", title, types.MaxColumnTitle)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.board(ctx, userID, boardID, accessWrite); err != nil {
		return nil, err
	}

	column := &repository.Column{BoardID: boardID, Title: title}
	err = ordering.AppendWithRetry(ctx, ordering.DefaultAttempts, func(ctx context.Context) error {
		return s.columnRepo.Append(ctx, column)
	})
	if err != nil {
		return nil, appendError(err, "board")
	}
	s.views.invalidate(ctx, boardID)
	s.record(ctx, userID, types.ActionCreateColumn, column)
	return column, nil
}

func (s *columnService) Update(ctx context.Context, userID, id string, req UpdateColumnRequest) (*repository.Column, error) {
	column, err := s.access.column(ctx, userID, id, accessWrite)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := requireText("title", *req.Title, types.MaxColumnTitle)
		if err != nil {
			return nil, err
		}
		column.Title = title
	}
	if req.Position != nil {
		if *req.Position < 0 {
			return nil, invalid("position must not be negative")
		}
		column.Position = *req.Position
	}
	if req.IsArchived != nil {
		column.IsArchived = *req.IsArchived
	}

	if err := s.columnRepo.Update(ctx, column); err != nil {
		return nil, positionError(err, "column")
	}
	s.views.invalidate(ctx, column.BoardID)
	s.record(ctx, userID, types.ActionUpdateColumn, column)
	return column, nil
}

func (s *columnService) Delete(ctx context.Context, userID, id string) error {
	column, err := s.access.column(ctx, userID, id, accessWrite)
	if err != nil {
		return err
	}
	if err := s.columnRepo.Delete(ctx, id); err != nil {
		return storeError(err, "column")
	}
	s.views.invalidate(ctx, column.BoardID)
	s.record(ctx, userID, types.ActionDeleteColumn, column)
	return nil
}

func (s *columnService) record(ctx context.Context, userID, action string, column *repository.Column) {
	columnID := column.ID
	s.activity.record(ctx, &repository.Activity{
		BoardID:    column.BoardID,
		UserID:     userID,
		ActionType: action,
		EntityType: types.EntityColumn,
		EntityID:   &columnID,
		Details:    repository.ActivityDetails{"columnTitle": column.Title},
	})
}
