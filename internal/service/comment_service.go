package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

// ============================================
// Comment Service
// ============================================

const commentPreviewLength = 50

type CommentService interface {
	ListByCard(ctx context.Context, userID, cardID string) ([]*repository.CommentDetail, error)
	Create(ctx context.Context, userID, cardID, content string) (*repository.Comment, error)
	// Update is reserved for the author.
	Update(ctx context.Context, userID, id, content string) (*repository.Comment, error)
	// Delete is allowed for the author and for board managers.
	Delete(ctx context.Context, userID, id string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	access      *boardAccess
	activity    *activityLog
}

func NewCommentService(commentRepo repository.CommentRepository, access *boardAccess, activity *activityLog) CommentService {
	return &commentService{commentRepo: commentRepo, access: access, activity: activity}
}

func (s *commentService) ListByCard(ctx context.Context, userID, cardID string) ([]*repository.CommentDetail, error) {
	if _, err := s.access.card(ctx, userID, cardID, accessRead); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByCardID(ctx, cardID)
}

func (s *commentService) Create(ctx context.Context, userID, cardID, content string) (*repository.Comment, error) {
	if cardID == "" {
		return nil, invalid("cardId is required")
	}
	content, err := requireText("content", content, types.MaxComment)
	if err != nil {
		return nil, err
	}
	card, err := s.access.card(ctx, userID, cardID, accessWrite)
	if err != nil {
		return nil, err
	}

	comment := &repository.Comment{CardID: cardID, UserID: userID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, storeError(err, "card")
	}

	commentID := comment.ID
	s.activity.record(ctx, &repository.Activity{
		BoardID:    card.BoardID,
		CardID:     &card.ID,
		UserID:     userID,
		ActionType: types.ActionAddComment,
		EntityType: types.EntityComment,
		EntityID:   &commentID,
		Details:    repository.ActivityDetails{"commentPreview": preview(content)},
	})
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, userID, id, content string) (*repository.Comment, error) {
	content, err := requireText("content", content, types.MaxComment)
	if err != nil {
		return nil, err
	}
	comment, err := s.find(ctx, userID, id, accessRead)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, forbidden("only the author can edit a comment")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, storeError(err, "comment")
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, userID, id string) error {
	comment, err := s.find(ctx, userID, id, accessRead)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		_, err := s.access.card(ctx, userID, comment.CardID, accessManage)
		if errors.Is(err, ErrForbidden) {
			return forbidden("only the author or a board admin can delete a comment")
		}
		if err != nil {
			return err
		}
	}
	return storeError(s.commentRepo.Delete(ctx, id), "comment")
}

// find loads a comment the caller can see on its card's board.
func (s *commentService) find(ctx context.Context, userID, id string, need accessLevel) (*repository.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, notFound("comment")
	}
	if _, err := s.access.card(ctx, userID, comment.CardID, need); err != nil {
		return nil, hide(err, "comment")
	}
	return comment, nil
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= commentPreviewLength {
		return content
	}
	return string([]rune(content)[:commentPreviewLength]) + "..."
}
