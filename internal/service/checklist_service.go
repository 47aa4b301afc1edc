package service

import (
	"context"

	"github.com/Marga-Ghale/ora-boards-backend/internal/ordering"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
)

// ============================================
// Checklist Service
// ============================================

const maxChecklistText = 500

type UpdateChecklistItemRequest struct {
	Text      *string
	Completed *bool
	Position  *int
}

type ChecklistService interface {
	ListByCard(ctx context.Context, userID, cardID string) ([]*repository.ChecklistItem, error)
	Create(ctx context.Context, userID, cardID, text string) (*repository.ChecklistItem, error)
	Update(ctx context.Context, userID, id string, req UpdateChecklistItemRequest) (*repository.ChecklistItem, error)
	Delete(ctx context.Context, userID, id string) error
}

type checklistService struct {
	checklistRepo repository.ChecklistRepository
	access        *boardAccess
}

func NewChecklistService(checklistRepo repository.ChecklistRepository, access *boardAccess) ChecklistService {
	return &checklistService{checklistRepo: checklistRepo, access: access}
}

func (s *checklistService) ListByCard(ctx context.Context, userID, cardID string) ([]*repository.ChecklistItem, error) {
	if _, err := s.access.card(ctx, userID, cardID, accessRead); err != nil {
		return nil, err
	}
	items, err := s.checklistRepo.FindByCardID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	ordering.SortByPosition(items)
	return items, nil
}

func (s *checklistService) Create(ctx context.Context, userID, cardID, text string) (*repository.ChecklistItem, error) {
	text, err := requireText("text", text, maxChecklistText)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.card(ctx, userID, cardID, accessWrite); err != nil {
		return nil, err
	}

	item := &repository.ChecklistItem{CardID: cardID, Text: text}
	err = ordering.AppendWithRetry(ctx, ordering.DefaultAttempts, func(ctx context.Context) error {
		return s.checklistRepo.Append(ctx, item)
	})
	if err != nil {
		return nil, appendError(err, "card")
	}
	return item, nil
}

func (s *checklistService) Update(ctx context.Context, userID, id string, req UpdateChecklistItemRequest) (*repository.ChecklistItem, error) {
	item, _, err := s.access.checklistItem(ctx, userID, id, accessWrite)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		text, err := requireText("text", *req.Text, maxChecklistText)
		if err != nil {
			return nil, err
		}
		item.Text = text
	}
	if req.Completed != nil {
		item.Completed = *req.Completed
	}
	if req.Position != nil {
		if *req.Position < 0 {
			return nil, invalid("position must not be negative")
		}
		item.Position = *req.Position
	}

	if err := s.checklistRepo.Update(ctx, item); err != nil {
		return nil, positionError(err, "checklist item")
	}
	return item, nil
}

func (s *checklistService) Delete(ctx context.Context, userID, id string) error {
	if _, _, err := s.access.checklistItem(ctx, userID, id, accessWrite); err != nil {
		return err
	}
	return storeError(s.checklistRepo.Delete(ctx, id), "checklist item")
}
