package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/ordering"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

// ============================================
// Card Service
// ============================================

type CreateCardRequest struct {
	ColumnID string
	// BoardID is optional and must match the column's board when given.
	BoardID     *string
	Title       string
	Description *string
	DueDate     *time.Time
	CoverColor  *string
}

// UpdateCardRequest is a merge patch. An empty CoverColor or Description
// clears the field; ClearDueDate removes the due date.
type UpdateCardRequest struct {
	Title        *string
	Description  *string
	Position     *int
	ColumnID     *string
	DueDate      *time.Time
	ClearDueDate bool
	IsCompleted  *bool
	IsArchived   *bool
	CoverColor   *string
}

// CardDetails is a card with everything hanging off it.
type CardDetails struct {
	Card       *repository.Card
	Labels     []*repository.Label
	Members    []*repository.CardMemberDetail
	Checklist  []*repository.ChecklistItem
	Comments   []*repository.CommentDetail
	Activities []*repository.ActivityDetail
}

type CardService interface {
	ListByColumn(ctx context.Context, userID, columnID string) ([]*repository.Card, error)
	Get(ctx context.Context, userID, id string) (*repository.Card, error)
	// Details returns comments and activity newest first.
	Details(ctx context.Context, userID, id string) (*CardDetails, error)
	Create(ctx context.Context, userID string, req CreateCardRequest) (*repository.Card, error)
	Update(ctx context.Context, userID, id string, req UpdateCardRequest) (*repository.Card, error)
	Delete(ctx context.Context, userID, id string) error

	ListMembers(ctx context.Context, userID, cardID string) ([]*repository.CardMemberDetail, error)
	AddMember(ctx context.Context, userID, cardID, memberUserID string) (*repository.CardMember, error)
	RemoveMember(ctx context.Context, userID, cardID, memberUserID string) error
}

type cardService struct {
	cardRepo       repository.CardRepository
	cardMemberRepo repository.CardMemberRepository
	cardLabelRepo  repository.CardLabelRepository
	checklistRepo  repository.ChecklistRepository
	commentRepo    repository.CommentRepository
	activityRepo   repository.ActivityRepository
	boardMembers   repository.BoardMemberRepository
	access         *boardAccess
	views          *viewCache
	activity       *activityLog
	log            *zap.Logger
}

func NewCardService(repos *repository.Repositories, access *boardAccess, views *viewCache, activity *activityLog, log *zap.Logger) CardService {
	return &cardService{
		cardRepo:       repos.CardRepo,
		cardMemberRepo: repos.CardMemberRepo,
		cardLabelRepo:  repos.CardLabelRepo,
		checklistRepo:  repos.ChecklistRepo,
		commentRepo:    repos.CommentRepo,
		activityRepo:   repos.ActivityRepo,
		boardMembers:   repos.BoardMemberRepo,
		access:         access,
		views:          views,
		activity:       activity,
		log:            log,
	}
}

func (s *cardService) ListByColumn(ctx context.Context, userID, columnID string) ([]*repository.Card, error) {
	if _, err := s.access.column(ctx, userID, columnID, accessRead); err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.FindByColumnID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	ordering.SortByPosition(cards)
	return cards, nil
}

func (s *cardService) Get(ctx context.Context, userID, id string) (*repository.Card, error) {
	return s.access.card(ctx, userID, id, accessRead)
}

func (s *cardService) Details(ctx context.Context, userID, id string) (*CardDetails, error) {
	card, err := s.access.card(ctx, userID, id, accessRead)
	if err != nil {
		return nil, err
	}

	details := &CardDetails{Card: card}
	if details.Labels, err = s.cardLabelRepo.FindLabelsByCardID(ctx, id); err != nil {
		return nil, err
	}
	if details.Members, err = s.cardMemberRepo.FindByCardID(ctx, id); err != nil {
		return nil, err
	}
	if details.Checklist, err = s.checklistRepo.FindByCardID(ctx, id); err != nil {
		return nil, err
	}
	ordering.SortByPosition(details.Checklist)
	if details.Comments, err = s.commentRepo.FindByCardID(ctx, id); err != nil {
		return nil, err
	}
	if details.Activities, err = s.activityRepo.FindByCardID(ctx, id, DefaultActivityLimit); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *cardService) Create(ctx context.Context, userID string, req CreateCardRequest) (*repository.Card, error) {
	title, err := requireText("title", req.Title, types.MaxCardTitle)
	if err != nil {
		return nil, err
	}
	if req.ColumnID == "" {
		return nil, invalid("columnId is required")
	}
	if err := validateCoverColor(req.CoverColor); err != nil {
		return nil, err
	}

	column, err := s.access.column(ctx, userID, req.ColumnID, accessWrite)
	if err != nil {
		return nil, err
	}
	if req.BoardID != nil && *req.BoardID != "" && *req.BoardID != column.BoardID {
		return nil, invalid("boardId does not match the column's board")
	}

	card := &repository.Card{
		ColumnID:    column.ID,
		Title:       title,
		Description: trimOptional(req.Description),
		DueDate:     req.DueDate,
		CoverColor:  trimOptional(req.CoverColor),
		CreatedBy:   userID,
	}
	err = ordering.AppendWithRetry(ctx, ordering.DefaultAttempts, func(ctx context.Context) error {
		return s.cardRepo.Append(ctx, card)
	})
	if err != nil {
		return nil, appendError(err, "column")
	}
	s.views.invalidate(ctx, card.BoardID)
	s.activity.card(ctx, userID, types.ActionCreateCard, card, repository.ActivityDetails{
		"cardTitle": card.Title,
		"columnId":  card.ColumnID,
	})
	return card, nil
}

func (s *cardService) Update(ctx context.Context, userID, id string, req UpdateCardRequest) (*repository.Card, error) {
	card, err := s.access.card(ctx, userID, id, accessWrite)
	if err != nil {
		return nil, err
	}
	fromBoard := card.BoardID
	fromColumn := card.ColumnID
	wasCompleted, wasArchived := card.IsCompleted, card.IsArchived

	if req.Title != nil {
		title, err := requireText("title", *req.Title, types.MaxCardTitle)
		if err != nil {
			return nil, err
		}
		card.Title = title
	}
	if req.Description != nil {
		card.Description = trimOptional(req.Description)
	}
	if req.ClearDueDate {
		card.DueDate = nil
	} else if req.DueDate != nil {
		card.DueDate = req.DueDate
	}
	if req.IsCompleted != nil {
		card.IsCompleted = *req.IsCompleted
	}
	if req.IsArchived != nil {
		card.IsArchived = *req.IsArchived
	}
	if req.CoverColor != nil {
		if err := validateCoverColor(req.CoverColor); err != nil {
			return nil, err
		}
		card.CoverColor = trimOptional(req.CoverColor)
	}
	if req.Position != nil {
		if *req.Position < 0 {
			return nil, invalid("position must not be negative")
		}
		card.Position = *req.Position
	}

	moving := req.ColumnID != nil && *req.ColumnID != card.ColumnID
	if moving {
		if _, err := s.access.column(ctx, userID, *req.ColumnID, accessWrite); err != nil {
			return nil, err
		}
		card.ColumnID = *req.ColumnID
	}

	if moving && req.Position == nil {
		err = s.cardRepo.MoveToColumn(ctx, card)
	} else {
		err = s.cardRepo.Update(ctx, card)
	}
	if err != nil {
		return nil, positionError(err, "card")
	}

	if card.BoardID != fromBoard {
		s.log.Debug("card moved across boards",
			zap.String("cardId", card.ID),
			zap.String("from", fromBoard),
			zap.String("to", card.BoardID),
		)
	}
	s.views.invalidate(ctx, fromBoard, card.BoardID)
	s.recordUpdate(ctx, userID, card, fromColumn, wasCompleted, wasArchived)
	return card, nil
}

// recordUpdate logs the most specific actions an update amounts to.
func (s *cardService) recordUpdate(ctx context.Context, userID string, card *repository.Card, fromColumn string, wasCompleted, wasArchived bool) {
	logged := false
	if card.ColumnID != fromColumn {
		s.activity.card(ctx, userID, types.ActionMoveCard, card, repository.ActivityDetails{
			"cardTitle":    card.Title,
			"fromColumnId": fromColumn,
			"toColumnId":   card.ColumnID,
		})
		logged = true
	}
	if card.IsCompleted && !wasCompleted {
		s.activity.card(ctx, userID, types.ActionCompleteCard, card, repository.ActivityDetails{"cardTitle": card.Title})
		logged = true
	}
	if card.IsArchived && !wasArchived {
		s.activity.card(ctx, userID, types.ActionArchiveCard, card, repository.ActivityDetails{"cardTitle": card.Title})
		logged = true
	}
	if !logged {
		s.activity.card(ctx, userID, types.ActionUpdateCard, card, repository.ActivityDetails{"cardTitle": card.Title})
	}
}

func (s *cardService) Delete(ctx context.Context, userID, id string) error {
	card, err := s.access.card(ctx, userID, id, accessWrite)
	if err != nil {
		return err
	}
	if err := s.cardRepo.Delete(ctx, id); err != nil {
		return storeError(err, "card")
	}
	s.views.invalidate(ctx, card.BoardID)

	// the card row is gone, so the entry only names it
	s.activity.record(ctx, &repository.Activity{
		BoardID:    card.BoardID,
		UserID:     userID,
		ActionType: types.ActionDeleteCard,
		EntityType: types.EntityCard,
		EntityID:   &card.ID,
		Details:    repository.ActivityDetails{"cardTitle": card.Title},
	})
	return nil
}

func (s *cardService) ListMembers(ctx context.Context, userID, cardID string) ([]*repository.CardMemberDetail, error) {
	if _, err := s.access.card(ctx, userID, cardID, accessRead); err != nil {
		return nil, err
	}
	return s.cardMemberRepo.FindByCardID(ctx, cardID)
}

// AddMember assigns a board member to the card.
func (s *cardService) AddMember(ctx context.Context, userID, cardID, memberUserID string) (*repository.CardMember, error) {
	if memberUserID == "" {
		return nil, invalid("userId is required")
	}
	card, err := s.access.card(ctx, userID, cardID, accessWrite)
	if err != nil {
		return nil, err
	}

	membership, err := s.boardMembers.FindByBoardAndUser(ctx, card.BoardID, memberUserID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, invalid("user is not a member of this board")
	}

	member := &repository.CardMember{CardID: cardID, UserID: memberUserID}
	if err := s.cardMemberRepo.Create(ctx, member); err != nil {
		return nil, storeError(err, "card member")
	}
	s.views.invalidate(ctx, card.BoardID)
	return member, nil
}

func (s *cardService) RemoveMember(ctx context.Context, userID, cardID, memberUserID string) error {
	card, err := s.access.card(ctx, userID, cardID, accessWrite)
	if err != nil {
		return err
	}
	if err := s.cardMemberRepo.Delete(ctx, cardID, memberUserID); err != nil {
		return storeError(err, "card member")
	}
	s.views.invalidate(ctx, card.BoardID)
	return nil
}

func validateCoverColor(color *string) error {
	if color == nil {
		return nil
	}
	if c := trimOptional(color); c != nil && !types.IsValidHexColor(*c) {
		return invalid("coverColor must be #RRGGBB")
	}
	return nil
}
