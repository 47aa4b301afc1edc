package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Board model
type Board struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     *string   `json:"description,omitempty" db:"description"`
	BackgroundType  string    `json:"backgroundType" db:"background_type"`
	BackgroundValue string    `json:"backgroundValue" db:"background_value"`
	Visibility      string    `json:"visibility" db:"visibility"`
	IsClosed        bool      `json:"isClosed" db:"is_closed"`
	CreatedBy       string    `json:"createdBy" db:"created_by"`
	WorkspaceID     *string   `json:"workspaceId,omitempty" db:"workspace_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// BoardRepository interface
type BoardRepository interface {
	// Create inserts the board and, when owner is non-nil, the owner's
	// membership in the same transaction.
	Create(ctx context.Context, board *Board, owner *BoardMember) error
	FindByID(ctx context.Context, id string) (*Board, error)
	// FindByUser returns boards the user created or is a member of, newest first.
	FindByUser(ctx context.Context, userID string) ([]*Board, error)
	FindByWorkspace(ctx context.Context, workspaceID string) ([]*Board, error)
	Update(ctx context.Context, board *Board) error
	Delete(ctx context.Context, id string) error
}

type boardRepository struct {
	db *sqlx.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *sqlx.DB) BoardRepository {
	return &boardRepository{db: db}
}

const boardColumns = `id, title, description, background_type, background_value, visibility,
	is_closed, created_by, workspace_id, created_at, updated_at`

// Create inserts a new board together with its owner membership
func (r *boardRepository) Create(ctx context.Context, board *Board, owner *BoardMember) error {
	query := `
		INSERT INTO boards (
			title, description, background_type, background_value, visibility, is_closed, created_by, workspace_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			board.Title,
			board.Description,
			board.BackgroundType,
			board.BackgroundValue,
			board.Visibility,
			board.IsClosed,
			board.CreatedBy,
			board.WorkspaceID,
		).Scan(&board.ID, &board.CreatedAt, &board.UpdatedAt)
		if err != nil {
			return translateError(err)
		}
		if owner == nil {
			return nil
		}

		owner.BoardID = board.ID
		return insertBoardMember(ctx, tx, owner)
	})
}

// FindByID retrieves a board by ID
func (r *boardRepository) FindByID(ctx context.Context, id string) (*Board, error) {
	board := &Board{}
	err := r.db.GetContext(ctx, board, `SELECT `+boardColumns+` FROM boards WHERE id = $1`, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return board, nil
}

func (r *boardRepository) FindByUser(ctx context.Context, userID string) ([]*Board, error) {
	query := `
		SELECT b.id, b.title, b.description, b.background_type, b.background_value, b.visibility,
			b.is_closed, b.created_by, b.workspace_id, b.created_at, b.updated_at
		FROM boards b
		LEFT JOIN board_members m ON m.board_id = b.id AND m.user_id = $1
		WHERE b.created_by = $1 OR m.user_id IS NOT NULL
		ORDER BY b.created_at DESC`

	var boards []*Board
	if err := r.db.SelectContext(ctx, &boards, query, userID); err != nil {
		return nil, err
	}
	return boards, nil
}

// FindByWorkspace lists the boards attached to a workspace
func (r *boardRepository) FindByWorkspace(ctx context.Context, workspaceID string) ([]*Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE workspace_id = $1 ORDER BY created_at DESC`

	var boards []*Board
	if err := r.db.SelectContext(ctx, &boards, query, workspaceID); err != nil {
		return nil, err
	}
	return boards, nil
}

// Update overwrites the mutable fields of a board
func (r *boardRepository) Update(ctx context.Context, board *Board) error {
	query := `
		UPDATE boards SET
			title = $2,
			description = $3,
			background_type = $4,
			background_value = $5,
			visibility = $6,
			is_closed = $7,
			workspace_id = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		board.ID,
		board.Title,
		board.Description,
		board.BackgroundType,
		board.BackgroundValue,
		board.Visibility,
		board.IsClosed,
		board.WorkspaceID,
	).Scan(&board.UpdatedAt)
	return translateError(err)
}

// Delete removes a board; columns, cards, labels and members go with it (ON DELETE CASCADE)
func (r *boardRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}
