package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Label model
type Label struct {
	ID        string    `json:"id" db:"id"`
	BoardID   string    `json:"boardId" db:"board_id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// LabelRepository interface
type LabelRepository interface {
	Create(ctx context.Context, label *Label) error
	FindByID(ctx context.Context, id string) (*Label, error)
	FindByBoardID(ctx context.Context, boardID string) ([]*Label, error)
	FindByName(ctx context.Context, boardID, name string) (*Label, error)
	Update(ctx context.Context, label *Label) error
	Delete(ctx context.Context, id string) error
}

type labelRepository struct {
	db *sqlx.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *sqlx.DB) LabelRepository {
	return &labelRepository{db: db}
}

// Create inserts a new label; a name already used on the board yields ErrDuplicate
func (r *labelRepository) Create(ctx context.Context, label *Label) error {
	query := `
		INSERT INTO labels (board_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, label.BoardID, label.Name, label.Color).
		Scan(&label.ID, &label.CreatedAt, &label.UpdatedAt)
	return translateError(err)
}

// FindByID retrieves a label by ID
func (r *labelRepository) FindByID(ctx context.Context, id string) (*Label, error) {
	query := `SELECT id, board_id, name, color, created_at, updated_at FROM labels WHERE id = $1`

	label := &Label{}
	err := r.db.GetContext(ctx, label, query, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return label, nil
}

// FindByBoardID retrieves the labels of a board ordered by name
func (r *labelRepository) FindByBoardID(ctx context.Context, boardID string) ([]*Label, error) {
	query := `
		SELECT id, board_id, name, color, created_at, updated_at
		FROM labels WHERE board_id = $1
		ORDER BY name ASC`

	var labels []*Label
	if err := r.db.SelectContext(ctx, &labels, query, boardID); err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *labelRepository) FindByName(ctx context.Context, boardID, name string) (*Label, error) {
	query := `
		SELECT id, board_id, name, color, created_at, updated_at
		FROM labels WHERE board_id = $1 AND name = $2`

	label := &Label{}
	err := r.db.GetContext(ctx, label, query, boardID, name)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return label, nil
}

// Update overwrites name and color
func (r *labelRepository) Update(ctx context.Context, label *Label) error {
	query := `
		UPDATE labels SET name = $2, color = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, label.ID, label.Name, label.Color).Scan(&label.UpdatedAt)
	return translateError(err)
}

// Delete removes a label and its card assignments
func (r *labelRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}
