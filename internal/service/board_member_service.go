package service

import (
	"context"
	"fmt"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

// ============================================
// Board Member Service
// ============================================

type AddBoardMemberRequest struct {
	BoardID string
	UserID  string
	Role    string
}

type BoardMemberService interface {
	ListByBoard(ctx context.Context, userID, boardID string) ([]*repository.BoardMemberDetail, error)
	Add(ctx context.Context, userID string, req AddBoardMemberRequest) (*repository.BoardMember, error)
	// Update changes a membership's role (managers only) or star flag (the
	// member themselves).
	Update(ctx context.Context, userID, id string, role *string, isStarred *bool) (*repository.BoardMember, error)
	// Remove deletes a membership. Members may always remove themselves.
	Remove(ctx context.Context, userID, id string) error
}

type boardMemberService struct {
	memberRepo repository.BoardMemberRepository
	userRepo   repository.UserRepository
	access     *boardAccess
	views      *viewCache
	activity   *activityLog
}

func NewBoardMemberService(
	memberRepo repository.BoardMemberRepository,
	userRepo repository.UserRepository,
	access *boardAccess,
	views *viewCache,
	activity *activityLog,
) BoardMemberService {
	return &boardMemberService{memberRepo: memberRepo, userRepo: userRepo, access: access, views: views, activity: activity}
}

var errCreatorMembership = fmt.Errorf("%w: the board creator must stay an owner", ErrConflict)

func (s *boardMemberService) ListByBoard(ctx context.Context, userID, boardID string) ([]*repository.BoardMemberDetail, error) {
	if _, err := s.access.board(ctx, userID, boardID, accessRead); err != nil {
		return nil, err
	}
	return s.memberRepo.FindByBoardID(ctx, boardID)
}

func (s *boardMemberService) Add(ctx context.Context, userID string, req AddBoardMemberRequest) (*repository.BoardMember, error) {
	if req.BoardID == "" || req.UserID == "" {
		return nil, invalid("boardId and userId are required")
	}
	role := req.Role
	if role == "" {
		role = types.RoleMember
	}
	if !types.IsValidBoardRole(role) {
		return nil, invalid("invalid role %q", role)
	}

	if _, err := s.access.board(ctx, userID, req.BoardID, accessManage); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user")
	}

	member := &repository.BoardMember{BoardID: req.BoardID, UserID: req.UserID, Role: role}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, storeError(err, "board member")
	}
	s.views.invalidate(ctx, req.BoardID)
	s.activity.record(ctx, &repository.Activity{
		BoardID:    member.BoardID,
		UserID:     userID,
		ActionType: types.ActionAddBoardMember,
		EntityType: types.EntityMember,
		EntityID:   &member.ID,
		Details:    repository.ActivityDetails{"memberName": user.FullName, "role": role},
	})
	return member, nil
}

func (s *boardMemberService) Update(ctx context.Context, userID, id string, role *string, isStarred *bool) (*repository.BoardMember, error) {
	member, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	need := accessRead
	if role != nil {
		need = accessManage
	}
	board, err := s.access.board(ctx, userID, member.BoardID, need)
	if err != nil {
		return nil, hide(err, "board member")
	}

	if role != nil {
		if !types.IsValidBoardRole(*role) {
			return nil, invalid("invalid role %q", *role)
		}
		if member.UserID == board.CreatedBy && *role != types.RoleOwner {
			return nil, errCreatorMembership
		}
		member.Role = *role
	}
	if isStarred != nil {
		if member.UserID != userID {
			return nil, forbidden("you can only star boards for yourself")
		}
		member.IsStarred = *isStarred
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, storeError(err, "board member")
	}
	s.views.invalidate(ctx, member.BoardID)
	return member, nil
}

func (s *boardMemberService) Remove(ctx context.Context, userID, id string) error {
	member, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	need := accessManage
	if member.UserID == userID {
		need = accessRead
	}
	board, err := s.access.board(ctx, userID, member.BoardID, need)
	if err != nil {
		return hide(err, "board member")
	}
	if member.UserID == board.CreatedBy {
		return errCreatorMembership
	}

	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return storeError(err, "board member")
	}
	s.views.invalidate(ctx, member.BoardID)
	s.activity.record(ctx, &repository.Activity{
		BoardID:    member.BoardID,
		UserID:     userID,
		ActionType: types.ActionRemoveBoardMember,
		EntityType: types.EntityMember,
		EntityID:   &member.ID,
		Details:    repository.ActivityDetails{"userId": member.UserID},
	})
	return nil
}

func (s *boardMemberService) find(ctx context.Context, id string) (*repository.BoardMember, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, notFound("board member")
	}
	return member, nil
}
