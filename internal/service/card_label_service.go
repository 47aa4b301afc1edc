package service

import (
	"context"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
)

// ============================================
// Card Label Service
// ============================================

type CardLabelService interface {
	// ListByCard returns the card's labels in assignment order.
	ListByCard(ctx context.Context, userID, cardID string) ([]*repository.Label, error)
	Assign(ctx context.Context, userID, cardID, labelID string) (*repository.CardLabel, error)
	Unassign(ctx context.Context, userID, cardID, labelID string) error
}

type cardLabelService struct {
	cardLabelRepo repository.CardLabelRepository
	access        *boardAccess
	views         *viewCache
}

func NewCardLabelService(cardLabelRepo repository.CardLabelRepository, access *boardAccess, views *viewCache) CardLabelService {
	return &cardLabelService{cardLabelRepo: cardLabelRepo, access: access, views: views}
}

func (s *cardLabelService) ListByCard(ctx context.Context, userID, cardID string) ([]*repository.Label, error) {
	if _, err := s.access.card(ctx, userID, cardID, accessRead); err != nil {
		return nil, err
	}
	return s.cardLabelRepo.FindLabelsByCardID(ctx, cardID)
}

// Assign attaches a label to a card. Both must exist and share a board.
func (s *cardLabelService) Assign(ctx context.Context, userID, cardID, labelID string) (*repository.CardLabel, error) {
	if cardID == "" || labelID == "" {
		return nil, invalid("cardId and labelId are required")
	}

	// A label on a board the caller cannot read reads as missing.
	label, err := s.access.label(ctx, userID, labelID, accessRead)
	if err != nil {
		return nil, err
	}
	card, err := s.access.card(ctx, userID, cardID, accessWrite)
	if err != nil {
		return nil, err
	}
	if label.BoardID != card.BoardID {
		return nil, invalid("label belongs to a different board")
	}

	cl := &repository.CardLabel{CardID: cardID, LabelID: labelID}
	if err := s.cardLabelRepo.Create(ctx, cl); err != nil {
		return nil, storeError(err, "label assignment")
	}
	s.views.invalidate(ctx, card.BoardID)
	return cl, nil
}

func (s *cardLabelService) Unassign(ctx context.Context, userID, cardID, labelID string) error {
	card, err := s.access.card(ctx, userID, cardID, accessWrite)
	if err != nil {
		return err
	}
	if err := s.cardLabelRepo.Delete(ctx, cardID, labelID); err != nil {
		return storeError(err, "label assignment")
	}
	s.views.invalidate(ctx, card.BoardID)
	return nil
}
