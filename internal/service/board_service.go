package service

import (
	"context"
	"strings"
	"time"

	"github.com/Marga-Ghale/ora-boards-backend/internal/ordering"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

// ============================================
// Board Service
// ============================================

type Background struct {
	Type  string
	Value string
}

type CreateBoardRequest struct {
	Title       string
	Description *string
	Background  *Background
	Visibility  string
	WorkspaceID *string
}

// UpdateBoardRequest is a merge patch. An empty WorkspaceID detaches the
// board from its workspace.
type UpdateBoardRequest struct {
	Title       *string
	Description *string
	Background  *Background
	Visibility  *string
	WorkspaceID *string
	IsClosed    *bool
}

// BoardView is the denormalized read model served by GET /boards/:id/view.
type BoardView struct {
	Board   *repository.Board               `json:"board"`
	Members []*repository.BoardMemberDetail `json:"members"`
	Columns []ColumnView                    `json:"columns"`
	Labels  []*repository.Label             `json:"labels"`
}

type ColumnView struct {
	Column *repository.Column `json:"column"`
	Cards  []CardView         `json:"cards"`
}

type CardView struct {
	Card    *repository.Card               `json:"card"`
	Labels  []*repository.CardLabelDetail  `json:"labels"`
	Members []*repository.CardMemberDetail `json:"members"`
}

type BoardStats struct {
	TotalColumns   int
	TotalCards     int
	CompletedCards int
	OverdueCards   int
	TotalMembers   int
	TotalLabels    int
}

type BoardService interface {
	// List returns the caller's boards, optionally filtered by closed state.
	List(ctx context.Context, userID string, closed *bool) ([]*repository.Board, error)
	Create(ctx context.Context, userID string, req CreateBoardRequest) (*repository.Board, error)
	Get(ctx context.Context, userID, id string) (*repository.Board, error)
	Update(ctx context.Context, userID, id string, req UpdateBoardRequest) (*repository.Board, error)
	Delete(ctx context.Context, userID, id string) error
	ToggleStar(ctx context.Context, userID, id string) (*repository.BoardMember, error)
	View(ctx context.Context, userID, id string) (*BoardView, error)
	Stats(ctx context.Context, userID, id string) (*BoardStats, error)
}

type boardService struct {
	repos    *repository.Repositories
	access   *boardAccess
	views    *viewCache
	activity *activityLog
	now      func() time.Time
}

func NewBoardService(repos *repository.Repositories, access *boardAccess, views *viewCache, activity *activityLog) BoardService {
	return &boardService{repos: repos, access: access, views: views, activity: activity, now: time.Now}
}

func (s *boardService) List(ctx context.Context, userID string, closed *bool) ([]*repository.Board, error) {
	boards, err := s.repos.BoardRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if closed == nil {
		return boards, nil
	}

	filtered := make([]*repository.Board, 0, len(boards))
	for _, b := range boards {
		if b.IsClosed == *closed {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

func (s *boardService) Create(ctx context.Context, userID string, req CreateBoardRequest) (*repository.Board, error) {
	title, err := requireText("title", req.Title, types.MaxBoardTitle)
	if err != nil {
		return nil, err
	}

	board := &repository.Board{
		Title:           title,
		Description:     trimOptional(req.Description),
		BackgroundType:  types.DefaultBackgroundType,
		BackgroundValue: types.DefaultBackgroundValue,
		Visibility:      types.VisibilityPrivate,
		CreatedBy:       userID,
	}
	if req.Background != nil {
		if err := applyBackground(board, *req.Background); err != nil {
			return nil, err
		}
	}
	if req.Visibility != "" {
		if !types.IsValidVisibility(req.Visibility) {
			return nil, invalid("invalid visibility %q", req.Visibility)
		}
		board.Visibility = req.Visibility
	}
	if req.WorkspaceID != nil && *req.WorkspaceID != "" {
		if err := s.checkWorkspace(ctx, userID, *req.WorkspaceID); err != nil {
			return nil, err
		}
		board.WorkspaceID = req.WorkspaceID
	}

	owner := &repository.BoardMember{UserID: userID, Role: types.RoleOwner}
	if err := s.repos.BoardRepo.Create(ctx, board, owner); err != nil {
		return nil, storeError(err, "user")
	}
	s.activity.record(ctx, &repository.Activity{
		BoardID:    board.ID,
		UserID:     userID,
		ActionType: types.ActionCreateBoard,
		EntityType: types.EntityBoard,
		EntityID:   &board.ID,
		Details:    repository.ActivityDetails{"boardTitle": board.Title},
	})
	return board, nil
}

func (s *boardService) Get(ctx context.Context, userID, id string) (*repository.Board, error) {
	return s.access.board(ctx, userID, id, accessRead)
}

// owned returns the board only when the caller created it.
func (s *boardService) owned(ctx context.Context, userID, id string) (*repository.Board, error) {
	board, err := s.repos.BoardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if board == nil || board.CreatedBy != userID {
		return nil, notFound("board")
	}
	return board, nil
}

func (s *boardService) Update(ctx context.Context, userID, id string, req UpdateBoardRequest) (*repository.Board, error) {
	board, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := requireText("title", *req.Title, types.MaxBoardTitle)
		if err != nil {
			return nil, err
		}
		board.Title = title
	}
	if req.Description != nil {
		board.Description = trimOptional(req.Description)
	}
	if req.Background != nil {
		if err := applyBackground(board, *req.Background); err != nil {
			return nil, err
		}
	}
	if req.Visibility != nil {
		if !types.IsValidVisibility(*req.Visibility) {
			return nil, invalid("invalid visibility %q", *req.Visibility)
		}
		board.Visibility = *req.Visibility
	}
	if req.WorkspaceID != nil {
		if *req.WorkspaceID == "" {
			board.WorkspaceID = nil
		} else {
			if err := s.checkWorkspace(ctx, userID, *req.WorkspaceID); err != nil {
				return nil, err
			}
			wsID := *req.WorkspaceID
			board.WorkspaceID = &wsID
		}
	}
	if req.IsClosed != nil {
		board.IsClosed = *req.IsClosed
	}

	if err := s.repos.BoardRepo.Update(ctx, board); err != nil {
		return nil, storeError(err, "board")
	}
	s.views.invalidate(ctx, board.ID)
	return board, nil
}

func (s *boardService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repos.BoardRepo.Delete(ctx, id); err != nil {
		return storeError(err, "board")
	}
	s.views.invalidate(ctx, id)
	return nil
}

// ToggleStar flips the caller's star flag. Stars live on the membership row,
// so only members can star a board.
func (s *boardService) ToggleStar(ctx context.Context, userID, id string) (*repository.BoardMember, error) {
	if _, err := s.access.board(ctx, userID, id, accessRead); err != nil {
		return nil, err
	}
	member, err := s.repos.BoardMemberRepo.FindByBoardAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, forbidden("only board members can star a board")
	}

	member.IsStarred = !member.IsStarred
	if err := s.repos.BoardMemberRepo.Update(ctx, member); err != nil {
		return nil, storeError(err, "board member")
	}
	s.views.invalidate(ctx, id)
	return member, nil
}

func (s *boardService) View(ctx context.Context, userID, id string) (*BoardView, error) {
	if _, err := s.access.board(ctx, userID, id, accessRead); err != nil {
		return nil, err
	}

	cached := &BoardView{}
	if s.views.get(ctx, id, cached) {
		return cached, nil
	}

	view, err := s.buildView(ctx, id)
	if err != nil {
		return nil, err
	}
	s.views.set(ctx, id, view)
	return view, nil
}

func (s *boardService) buildView(ctx context.Context, boardID string) (*BoardView, error) {
	board, err := s.repos.BoardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, notFound("board")
	}

	members, err := s.repos.BoardMemberRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	columns, err := s.repos.ColumnRepo.FindByBoardID(ctx, boardID, false)
	if err != nil {
		return nil, err
	}
	cards, err := s.repos.CardRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	labels, err := s.repos.LabelRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	byColumn := make(map[string][]*repository.Card)
	cardIDs := make([]string, 0, len(cards))
	for _, c := range cards {
		if c.IsArchived {
			continue
		}
		byColumn[c.ColumnID] = append(byColumn[c.ColumnID], c)
		cardIDs = append(cardIDs, c.ID)
	}

	cardLabels, err := s.repos.CardLabelRepo.FindByCardIDs(ctx, cardIDs)
	if err != nil {
		return nil, err
	}
	labelsByCard := make(map[string][]*repository.CardLabelDetail)
	for _, cl := range cardLabels {
		labelsByCard[cl.CardID] = append(labelsByCard[cl.CardID], cl)
	}

	cardMembers, err := s.repos.CardMemberRepo.FindByCardIDs(ctx, cardIDs)
	if err != nil {
		return nil, err
	}
	membersByCard := make(map[string][]*repository.CardMemberDetail)
	for _, cm := range cardMembers {
		membersByCard[cm.CardID] = append(membersByCard[cm.CardID], cm)
	}

	view := &BoardView{
		Board:   board,
		Members: members,
		Columns: make([]ColumnView, 0, len(columns)),
		Labels:  labels,
	}
	for _, col := range columns {
		colCards := byColumn[col.ID]
		ordering.SortByPosition(colCards)

		cv := ColumnView{Column: col, Cards: make([]CardView, 0, len(colCards))}
		for _, c := range colCards {
			cv.Cards = append(cv.Cards, CardView{
				Card:    c,
				Labels:  nonNil(labelsByCard[c.ID]),
				Members: nonNil(membersByCard[c.ID]),
			})
		}
		view.Columns = append(view.Columns, cv)
	}
	return view, nil
}

func (s *boardService) Stats(ctx context.Context, userID, id string) (*BoardStats, error) {
	if _, err := s.access.board(ctx, userID, id, accessRead); err != nil {
		return nil, err
	}

	columns, err := s.repos.ColumnRepo.FindByBoardID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	cards, err := s.repos.CardRepo.FindByBoardID(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.repos.BoardMemberRepo.FindByBoardID(ctx, id)
	if err != nil {
		return nil, err
	}
	labels, err := s.repos.LabelRepo.FindByBoardID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := &BoardStats{
		TotalColumns: len(columns),
		TotalMembers: len(members),
		TotalLabels:  len(labels),
	}
	openColumns := make(map[string]bool, len(columns))
	for _, c := range columns {
		openColumns[c.ID] = true
	}
	now := s.now()
	for _, c := range cards {
		if c.IsArchived || !openColumns[c.ColumnID] {
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

func (s *boardService) checkWorkspace(ctx context.Context, userID, workspaceID string) error {
	ws, err := s.repos.WorkspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if ws == nil || ws.CreatedBy != userID {
		return invalid("workspace %s does not exist", workspaceID)
	}
	return nil
}

func applyBackground(board *repository.Board, bg Background) error {
	if !types.IsValidBackgroundType(bg.Type) {
		return invalid("invalid background type %q", bg.Type)
	}
	value := strings.TrimSpace(bg.Value)
	if value == "" {
		return invalid("background value is required")
	}
	if bg.Type == types.BackgroundColor && !types.IsValidHexColor(value) {
		return invalid("background color must be #RRGGBB")
	}
	board.BackgroundType = bg.Type
	board.BackgroundValue = value
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
