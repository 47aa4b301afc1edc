package service

import (
	"context"
	"strings"
	"time"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

// ============================================
// User Service
// ============================================

type UserStats struct {
	TotalBoards    int
	StarredBoards  int
	TotalCards     int
	CompletedCards int
	OverdueCards   int
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*repository.User, error)
	Update(ctx context.Context, id string, fullName, avatarURL *string) (*repository.User, error)
	Stats(ctx context.Context, userID string) (*UserStats, error)
}

type userService struct {
	userRepo   repository.UserRepository
	boardRepo  repository.BoardRepository
	memberRepo repository.BoardMemberRepository
	cardRepo   repository.CardRepository
	views      *viewCache
	now        func() time.Time
}

func NewUserService(
	userRepo repository.UserRepository,
	boardRepo repository.BoardRepository,
	memberRepo repository.BoardMemberRepository,
	cardRepo repository.CardRepository,
	views *viewCache,
) UserService {
	return &userService{
		userRepo:   userRepo,
		boardRepo:  boardRepo,
		memberRepo: memberRepo,
		cardRepo:   cardRepo,
		views:      views,
		now:        time.Now,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user")
	}
	return user, nil
}

// Update changes the display fields. A new full name re-derives the initials.
// Board views embed these fields, so every board the user belongs to is
// evicted.
func (s *userService) Update(ctx context.Context, id string, fullName, avatarURL *string) (*repository.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fullName != nil {
		name, err := requireText("fullName", *fullName, 255)
		if err != nil {
			return nil, err
		}
		user.FullName = name
		user.Initials = types.Initials(name)
	}
	if avatarURL != nil {
		if url := strings.TrimSpace(*avatarURL); url == "" {
			user.AvatarURL = nil
		} else {
			user.AvatarURL = &url
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, storeError(err, "user")
	}

	memberships, err := s.memberRepo.FindByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	boardIDs := make([]string, len(memberships))
	for i, m := range memberships {
		boardIDs[i] = m.BoardID
	}
	s.views.invalidate(ctx, boardIDs...)
	return user, nil
}

func (s *userService) Stats(ctx context.Context, userID string) (*UserStats, error) {
	stats := &UserStats{}

	boards, err := s.boardRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, b := range boards {
		if !b.IsClosed {
			stats.TotalBoards++
		}
	}

	memberships, err := s.memberRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, m := range memberships {
		if m.IsStarred {
			stats.StarredBoards++
		}
	}

	cards, err := s.cardRepo.FindByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for _, c := range cards {
		if c.IsArchived {
			continue
		}
		stats.TotalCards++
		if c.IsCompleted {
			stats.CompletedCards++
		} else if isOverdue(c, now) {
			stats.OverdueCards++
		}
	}
	return stats, nil
}

func isOverdue(c *repository.Card, now time.Time) bool {
	return !c.IsCompleted && c.DueDate != nil && c.DueDate.Before(now)
}
