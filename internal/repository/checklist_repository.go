package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// ChecklistItem model
type ChecklistItem struct {
	ID        string    `json:"id" db:"id"`
	CardID    string    `json:"cardId" db:"card_id"`
	Text      string    `json:"text" db:"text"`
	Completed bool      `json:"completed" db:"completed"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (i *ChecklistItem) GetPosition() int { return i.Position }

// ChecklistRepository interface
type ChecklistRepository interface {
	Append(ctx context.Context, item *ChecklistItem) error
	FindByID(ctx context.Context, id string) (*ChecklistItem, error)
	FindByCardID(ctx context.Context, cardID string) ([]*ChecklistItem, error)
	Update(ctx context.Context, item *ChecklistItem) error
	Delete(ctx context.Context, id string) error
}

type checklistRepository struct {
	db *sqlx.DB
}

// NewChecklistRepository creates a new ChecklistRepository
func NewChecklistRepository(db *sqlx.DB) ChecklistRepository {
	return &checklistRepository{db: db}
}

// Append inserts an item after the last item of its card
func (r *checklistRepository) Append(ctx context.Context, item *ChecklistItem) error {
	query := `
		INSERT INTO checklist_items (card_id, text, completed, position)
		VALUES (
			$1, $2, FALSE,
			COALESCE((SELECT MAX(position) + 1 FROM checklist_items WHERE card_id = $1), 0)
		) RETURNING id, completed, position, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, item.CardID, item.Text).
		Scan(&item.ID, &item.Completed, &item.Position, &item.CreatedAt, &item.UpdatedAt)
	return translateError(err)
}

// FindByID retrieves an item by ID
func (r *checklistRepository) FindByID(ctx context.Context, id string) (*ChecklistItem, error) {
	query := `
		SELECT id, card_id, text, completed, position, created_at, updated_at
		FROM checklist_items WHERE id = $1`

	item := &ChecklistItem{}
	err := r.db.GetContext(ctx, item, query, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// FindByCardID retrieves the items of a card ordered by position
func (r *checklistRepository) FindByCardID(ctx context.Context, cardID string) ([]*ChecklistItem, error) {
	query := `
		SELECT id, card_id, text, completed, position, created_at, updated_at
		FROM checklist_items WHERE card_id = $1
		ORDER BY position ASC, created_at ASC`

	var items []*ChecklistItem
	if err := r.db.SelectContext(ctx, &items, query, cardID); err != nil {
		return nil, err
	}
	return items, nil
}

// Update overwrites text, completion and position
func (r *checklistRepository) Update(ctx context.Context, item *ChecklistItem) error {
	query := `
		UPDATE checklist_items SET
			text = $2,
			completed = $3,
			position = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, item.ID, item.Text, item.Completed, item.Position).
		Scan(&item.UpdatedAt)
	return translateError(err)
}

// Delete removes an item
func (r *checklistRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM checklist_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}
