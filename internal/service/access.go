package service

import (
	"context"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

type accessLevel int

const (
	accessRead accessLevel = iota
	accessWrite
	accessManage
)

// boardAccess resolves a resource to its board and checks the caller
// against it. The creator can do everything and members act according to
// their role. Non-members may read public boards, and workspace-visible
// boards when they own the workspace. Callers with no relation to a board
// get ErrNotFound so its existence is not revealed.
type boardAccess struct {
	boardRepo     repository.BoardRepository
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.BoardMemberRepository
	columnRepo    repository.ColumnRepository
	cardRepo      repository.CardRepository
	labelRepo     repository.LabelRepository
	checklistRepo repository.ChecklistRepository
}

func (a *boardAccess) board(ctx context.Context, userID, boardID string, need accessLevel) (*repository.Board, error) {
	board, err := a.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, notFound("board")
	}
	if board.CreatedBy == userID {
		return board, nil
	}

	member, err := a.memberRepo.FindByBoardAndUser(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		visible, err := a.visibleToNonMember(ctx, userID, board)
		if err != nil {
			return nil, err
		}
		if !visible {
			return nil, notFound("board")
		}
		if need == accessRead {
			return board, nil
		}
		return nil, forbidden("only board members can modify this board")
	}

	switch need {
	case accessWrite:
		if !types.CanEdit(member.Role) {
			return nil, forbidden("your role cannot modify this board")
		}
	case accessManage:
		if !types.CanManageMembers(member.Role) {
			return nil, forbidden("your role cannot manage board members")
		}
	}
	return board, nil
}

func (a *boardAccess) visibleToNonMember(ctx context.Context, userID string, board *repository.Board) (bool, error) {
	switch board.Visibility {
	case types.VisibilityPublic:
		return true, nil
	case types.VisibilityWorkspace:
		if board.WorkspaceID == nil {
			return false, nil
		}
		ws, err := a.workspaceRepo.FindByID(ctx, *board.WorkspaceID)
		if err != nil {
			return false, err
		}
		return ws != nil && ws.CreatedBy == userID, nil
	}
	return false, nil
}

func (a *boardAccess) column(ctx context.Context, userID, columnID string, need accessLevel) (*repository.Column, error) {
	column, err := a.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, notFound("column")
	}
	if _, err := a.board(ctx, userID, column.BoardID, need); err != nil {
		return nil, hide(err, "column")
	}
	return column, nil
}

func (a *boardAccess) card(ctx context.Context, userID, cardID string, need accessLevel) (*repository.Card, error) {
	card, err := a.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, notFound("card")
	}
	if _, err := a.board(ctx, userID, card.BoardID, need); err != nil {
		return nil, hide(err, "card")
	}
	return card, nil
}

func (a *boardAccess) label(ctx context.Context, userID, labelID string, need accessLevel) (*repository.Label, error) {
	label, err := a.labelRepo.FindByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, notFound("label")
	}
	if _, err := a.board(ctx, userID, label.BoardID, need); err != nil {
		return nil, hide(err, "label")
	}
	return label, nil
}

func (a *boardAccess) checklistItem(ctx context.Context, userID, itemID string, need accessLevel) (*repository.ChecklistItem, *repository.Card, error) {
	item, err := a.checklistRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, notFound("checklist item")
	}
	card, err := a.card(ctx, userID, item.CardID, need)
	if err != nil {
		return nil, nil, hide(err, "checklist item")
	}
	return item, card, nil
}

// hide renames a hidden board's not-found error after the requested resource.
func hide(err error, resource string) error {
	if isNotFound(err) {
		return notFound(resource)
	}
	return err
}
