package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Comment is a note left on a card
type Comment struct {
	ID        string     `json:"id" db:"id"`
	CardID    string     `json:"cardId" db:"card_id"`
	UserID    string     `json:"userId" db:"user_id"`
	Content   string     `json:"content" db:"content"`
	IsEdited  bool       `json:"isEdited" db:"is_edited"`
	EditedAt  *time.Time `json:"editedAt,omitempty" db:"edited_at"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// CommentDetail is a comment joined with its author's display fields
type CommentDetail struct {
	Comment
	Username  string  `db:"username"`
	FullName  string  `db:"full_name"`
	AvatarURL *string `db:"avatar_url"`
	Initials  string  `db:"initials"`
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id string) (*Comment, error)
	// FindByCardID lists a card's comments newest first.
	FindByCardID(ctx context.Context, cardID string) ([]*CommentDetail, error)
	// Update saves new content and marks the comment edited.
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (card_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, is_edited, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, comment.CardID, comment.UserID, comment.Content).
		Scan(&comment.ID, &comment.IsEdited, &comment.CreatedAt, &comment.UpdatedAt)
	return translateError(err)
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*Comment, error) {
	query := `
		SELECT id, card_id, user_id, content, is_edited, edited_at, created_at, updated_at
		FROM comments WHERE id = $1`

	comment := &Comment{}
	err := r.db.GetContext(ctx, comment, query, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *commentRepository) FindByCardID(ctx context.Context, cardID string) ([]*CommentDetail, error) {
	query := `
		SELECT c.id, c.card_id, c.user_id, c.content, c.is_edited, c.edited_at, c.created_at, c.updated_at,
			u.username, u.full_name, u.avatar_url, u.initials
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.card_id = $1
		ORDER BY c.created_at DESC`

	var comments []*CommentDetail
	if err := r.db.SelectContext(ctx, &comments, query, cardID); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *Comment) error {
	query := `
		UPDATE comments SET
			content = $2,
			is_edited = TRUE,
			edited_at = NOW(),
			updated_at = NOW()
		WHERE id = $1
		RETURNING is_edited, edited_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, comment.ID, comment.Content).
		Scan(&comment.IsEdited, &comment.EditedAt, &comment.UpdatedAt)
	return translateError(err)
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}
