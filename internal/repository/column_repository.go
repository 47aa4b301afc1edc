package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Column model
type Column struct {
	ID         string    `json:"id" db:"id"`
	BoardID    string    `json:"boardId" db:"board_id"`
	Title      string    `json:"title" db:"title"`
	Position   int       `json:"position" db:"position"`
	IsArchived bool      `json:"isArchived" db:"is_archived"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

func (c *Column) GetPosition() int { return c.Position }

// ColumnRepository interface
type ColumnRepository interface {
	// Append inserts the column at max(position)+1 of its board in one statement.
	Append(ctx context.Context, column *Column) error
	FindByID(ctx context.Context, id string) (*Column, error)
	FindByBoardID(ctx context.Context, boardID string, includeArchived bool) ([]*Column, error)
	Update(ctx context.Context, column *Column) error
	Delete(ctx context.Context, id string) error
}

type columnRepository struct {
	db *sqlx.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *sqlx.DB) ColumnRepository {
	return &columnRepository{db: db}
}

// Append inserts a new column after the last one on the board
func (r *columnRepository) Append(ctx context.Context, column *Column) error {
	query := `
		INSERT INTO board_columns (board_id, title, position, is_archived)
		VALUES (
			$1, $2,
			COALESCE((SELECT MAX(position) + 1 FROM board_columns WHERE board_id = $1), 0),
			FALSE
		) RETURNING id, position, is_archived, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, column.BoardID, column.Title).
		Scan(&column.ID, &column.Position, &column.IsArchived, &column.CreatedAt, &column.UpdatedAt)
	return translateError(err)
}

// FindByID retrieves a column by ID
func (r *columnRepository) FindByID(ctx context.Context, id string) (*Column, error) {
	query := `
		SELECT id, board_id, title, position, is_archived, created_at, updated_at
		FROM board_columns WHERE id = $1`

	column := &Column{}
	err := r.db.GetContext(ctx, column, query, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return column, nil
}

// FindByBoardID retrieves the columns of a board ordered by position
func (r *columnRepository) FindByBoardID(ctx context.Context, boardID string, includeArchived bool) ([]*Column, error) {
	query := `
		SELECT id, board_id, title, position, is_archived, created_at, updated_at
		FROM board_columns
		WHERE board_id = $1 AND ($2 OR is_archived = FALSE)
		ORDER BY position ASC, created_at ASC`

	var columns []*Column
	if err := r.db.SelectContext(ctx, &columns, query, boardID, includeArchived); err != nil {
		return nil, err
	}
	return columns, nil
}

// Update overwrites title, position and archive flag; siblings are not renumbered
func (r *columnRepository) Update(ctx context.Context, column *Column) error {
	query := `
		UPDATE board_columns SET
			title = $2,
			position = $3,
			is_archived = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		column.ID,
		column.Title,
		column.Position,
		column.IsArchived,
	).Scan(&column.UpdatedAt)
	return translateError(err)
}

// Delete removes a column and its cards
func (r *columnRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM board_columns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}
