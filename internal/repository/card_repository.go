package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Card model
type Card struct {
	ID                string     `json:"id" db:"id"`
	ColumnID          string     `json:"columnId" db:"column_id"`
	BoardID           string     `json:"boardId" db:"board_id"`
	Title             string     `json:"title" db:"title"`
	Description       *string    `json:"description,omitempty" db:"description"`
	Position          int        `json:"position" db:"position"`
	DueDate           *time.Time `json:"dueDate,omitempty" db:"due_date"`
	IsCompleted       bool       `json:"isCompleted" db:"is_completed"`
	IsArchived        bool       `json:"isArchived" db:"is_archived"`
	CoverColor        *string    `json:"coverColor,omitempty" db:"cover_color"`
	CoverAttachmentID *string    `json:"coverAttachmentId,omitempty" db:"cover_attachment_id"`
	CreatedBy         string     `json:"createdBy" db:"created_by"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}

func (c *Card) GetPosition() int { return c.Position }

// CardRepository interface
type CardRepository interface {
	// Append inserts the card at max(position)+1 of its column. board_id is
	// taken from the column row, not from the caller.
	Append(ctx context.Context, card *Card) error
	FindByID(ctx context.Context, id string) (*Card, error)
	FindByColumnID(ctx context.Context, columnID string) ([]*Card, error)
	FindByBoardID(ctx context.Context, boardID string) ([]*Card, error)
	// FindByMember returns cards the user is assigned to.
	FindByMember(ctx context.Context, userID string) ([]*Card, error)
	// Update and MoveToColumn expect card.BoardID to hold the card's current
	// board. When the new column is on another board, label assignments from
	// the old board and members who do not belong to the new one are dropped
	// in the same transaction.
	Update(ctx context.Context, card *Card) error
	// MoveToColumn writes the card's fields and appends it to the end of
	// card.ColumnID, re-syncing board_id from that column.
	MoveToColumn(ctx context.Context, card *Card) error
	Delete(ctx context.Context, id string) error
}

type cardRepository struct {
	db *sqlx.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *sqlx.DB) CardRepository {
	return &cardRepository{db: db}
}

const cardColumns = `id, column_id, board_id, title, description, position, due_date,
	is_completed, is_archived, cover_color, cover_attachment_id, created_by, created_at, updated_at`

// Append inserts a new card after the last card of its column
func (r *cardRepository) Append(ctx context.Context, card *Card) error {
	query := `
		INSERT INTO cards (
			column_id, board_id, title, description, position, due_date,
			is_completed, is_archived, cover_color, cover_attachment_id, created_by
		)
		SELECT
			c.id, c.board_id, $2, $3,
			COALESCE((SELECT MAX(position) + 1 FROM cards WHERE column_id = $1), 0),
			$4, FALSE, FALSE, $5, $6, $7
		FROM board_columns c WHERE c.id = $1
		RETURNING id, board_id, position, is_completed, is_archived, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		card.ColumnID,
		card.Title,
		card.Description,
		card.DueDate,
		card.CoverColor,
		card.CoverAttachmentID,
		card.CreatedBy,
	).Scan(&card.ID, &card.BoardID, &card.Position, &card.IsCompleted, &card.IsArchived, &card.CreatedAt, &card.UpdatedAt)
	return translateError(err)
}

// FindByID retrieves a card by ID
func (r *cardRepository) FindByID(ctx context.Context, id string) (*Card, error) {
	card := &Card{}
	err := r.db.GetContext(ctx, card, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// FindByColumnID retrieves the cards of a column ordered by position
func (r *cardRepository) FindByColumnID(ctx context.Context, columnID string) ([]*Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE column_id = $1 ORDER BY position ASC, created_at ASC`

	var cards []*Card
	if err := r.db.SelectContext(ctx, &cards, query, columnID); err != nil {
		return nil, err
	}
	return cards, nil
}

// FindByBoardID retrieves every card of a board ordered by position
func (r *cardRepository) FindByBoardID(ctx context.Context, boardID string) ([]*Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE board_id = $1 ORDER BY position ASC, created_at ASC`

	var cards []*Card
	if err := r.db.SelectContext(ctx, &cards, query, boardID); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) FindByMember(ctx context.Context, userID string) ([]*Card, error) {
	query := `
		SELECT c.id, c.column_id, c.board_id, c.title, c.description, c.position, c.due_date,
			c.is_completed, c.is_archived, c.cover_color, c.cover_attachment_id, c.created_by,
			c.created_at, c.updated_at
		FROM cards c
		JOIN card_members m ON m.card_id = c.id
		WHERE m.user_id = $1
		ORDER BY c.created_at ASC`

	var cards []*Card
	if err := r.db.SelectContext(ctx, &cards, query, userID); err != nil {
		return nil, err
	}
	return cards, nil
}

// Update overwrites the card's fields in place; siblings are not renumbered
func (r *cardRepository) Update(ctx context.Context, card *Card) error {
	query := `
		UPDATE cards SET
			column_id = $2,
			board_id = (SELECT board_id FROM board_columns WHERE id = $2),
			title = $3,
			description = $4,
			position = $5,
			due_date = $6,
			is_completed = $7,
			is_archived = $8,
			cover_color = $9,
			cover_attachment_id = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING board_id, updated_at`

	fromBoard := card.BoardID
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			card.ID,
			card.ColumnID,
			card.Title,
			card.Description,
			card.Position,
			card.DueDate,
			card.IsCompleted,
			card.IsArchived,
			card.CoverColor,
			card.CoverAttachmentID,
		).Scan(&card.BoardID, &card.UpdatedAt)
		if err != nil {
			return translateError(err)
		}
		return detachFromBoard(ctx, tx, card, fromBoard)
	})
}

func (r *cardRepository) MoveToColumn(ctx context.Context, card *Card) error {
	query := `
		UPDATE cards SET
			column_id = $2,
			board_id = (SELECT board_id FROM board_columns WHERE id = $2),
			position = COALESCE((SELECT MAX(position) + 1 FROM cards WHERE column_id = $2), 0),
			title = $3,
			description = $4,
			due_date = $5,
			is_completed = $6,
			is_archived = $7,
			cover_color = $8,
			cover_attachment_id = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING board_id, position, updated_at`

	fromBoard := card.BoardID
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			card.ID,
			card.ColumnID,
			card.Title,
			card.Description,
			card.DueDate,
			card.IsCompleted,
			card.IsArchived,
			card.CoverColor,
			card.CoverAttachmentID,
		).Scan(&card.BoardID, &card.Position, &card.UpdatedAt)
		if err != nil {
			return translateError(err)
		}
		return detachFromBoard(ctx, tx, card, fromBoard)
	})
}

// detachFromBoard drops what a card cannot keep after leaving fromBoard.
func detachFromBoard(ctx context.Context, tx *sqlx.Tx, card *Card, fromBoard string) error {
	if fromBoard == "" || card.BoardID == fromBoard {
		return nil
	}

	_, err := tx.ExecContext(ctx, `
		DELETE FROM card_labels cl
		USING labels l
		WHERE cl.label_id = l.id AND cl.card_id = $1 AND l.board_id <> $2`,
		card.ID, card.BoardID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM card_members cm
		WHERE cm.card_id = $1
			AND NOT EXISTS (
				SELECT 1 FROM board_members bm WHERE bm.board_id = $2 AND bm.user_id = cm.user_id
			)`,
		card.ID, card.BoardID)
	return err
}

// Delete removes a card with its label assignments, members and checklist items
func (r *cardRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}
