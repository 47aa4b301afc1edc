package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// CardLabel is the join row between a card and a label
type CardLabel struct {
	ID        string    `json:"id" db:"id"`
	CardID    string    `json:"cardId" db:"card_id"`
	LabelID   string    `json:"labelId" db:"label_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CardLabelDetail is an assigned label resolved for display
type CardLabelDetail struct {
	CardID  string `db:"card_id"`
	LabelID string `db:"label_id"`
	Name    string `db:"name"`
	Color   string `db:"color"`
}

// CardLabelRepository interface
type CardLabelRepository interface {
	Create(ctx context.Context, cardLabel *CardLabel) error
	Delete(ctx context.Context, cardID, labelID string) error
	// FindLabelsByCardID resolves a card's labels in assignment order.
	FindLabelsByCardID(ctx context.Context, cardID string) ([]*Label, error)
	FindByCardIDs(ctx context.Context, cardIDs []string) ([]*CardLabelDetail, error)
}

type cardLabelRepository struct {
	db *sqlx.DB
}

// NewCardLabelRepository creates a new CardLabelRepository
func NewCardLabelRepository(db *sqlx.DB) CardLabelRepository {
	return &cardLabelRepository{db: db}
}

// Create assigns a label; assigning the same label twice yields ErrDuplicate
func (r *cardLabelRepository) Create(ctx context.Context, cardLabel *CardLabel) error {
	query := `
		INSERT INTO card_labels (card_id, label_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query, cardLabel.CardID, cardLabel.LabelID).
		Scan(&cardLabel.ID, &cardLabel.CreatedAt)
	return translateError(err)
}

// Delete removes one assignment
func (r *cardLabelRepository) Delete(ctx context.Context, cardID, labelID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM card_labels WHERE card_id = $1 AND label_id = $2`, cardID, labelID)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}

func (r *cardLabelRepository) FindLabelsByCardID(ctx context.Context, cardID string) ([]*Label, error) {
	query := `
		SELECT l.id, l.board_id, l.name, l.color, l.created_at, l.updated_at
		FROM card_labels cl
		JOIN labels l ON l.id = cl.label_id
		WHERE cl.card_id = $1
		ORDER BY cl.created_at ASC`

	var labels []*Label
	if err := r.db.SelectContext(ctx, &labels, query, cardID); err != nil {
		return nil, err
	}
	return labels, nil
}

// FindByCardIDs loads the labels of many cards in one query
func (r *cardLabelRepository) FindByCardIDs(ctx context.Context, cardIDs []string) ([]*CardLabelDetail, error) {
	if len(cardIDs) == 0 {
		return []*CardLabelDetail{}, nil
	}

	query := `
		SELECT cl.card_id, cl.label_id, l.name, l.color
		FROM card_labels cl
		JOIN labels l ON l.id = cl.label_id
		WHERE cl.card_id = ANY($1)
		ORDER BY cl.created_at ASC`

	var details []*CardLabelDetail
	if err := r.db.SelectContext(ctx, &details, query, pq.Array(cardIDs)); err != nil {
		return nil, err
	}
	return details, nil
}
