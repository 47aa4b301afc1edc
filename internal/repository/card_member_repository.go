package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// CardMember assigns a user to a card
type CardMember struct {
	ID        string    `json:"id" db:"id"`
	CardID    string    `json:"cardId" db:"card_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CardMemberDetail is a card member joined with the user's display fields
type CardMemberDetail struct {
	CardMember
	Username  string  `db:"username"`
	FullName  string  `db:"full_name"`
	AvatarURL *string `db:"avatar_url"`
	Initials  string  `db:"initials"`
}

type CardMemberRepository interface {
	Create(ctx context.Context, member *CardMember) error
	Delete(ctx context.Context, cardID, userID string) error
	FindByCardID(ctx context.Context, cardID string) ([]*CardMemberDetail, error)
	FindByCardIDs(ctx context.Context, cardIDs []string) ([]*CardMemberDetail, error)
}

type cardMemberRepository struct {
	db *sqlx.DB
}

func NewCardMemberRepository(db *sqlx.DB) CardMemberRepository {
	return &cardMemberRepository{db: db}
}

func (r *cardMemberRepository) Create(ctx context.Context, member *CardMember) error {
	query := `
		INSERT INTO card_members (card_id, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query, member.CardID, member.UserID).
		Scan(&member.ID, &member.CreatedAt)
	return translateError(err)
}

func (r *cardMemberRepository) Delete(ctx context.Context, cardID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM card_members WHERE card_id = $1 AND user_id = $2`, cardID, userID)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}

const cardMemberSelect = `
	SELECT m.id, m.card_id, m.user_id, m.created_at,
		u.username, u.full_name, u.avatar_url, u.initials
	FROM card_members m
	JOIN users u ON u.id = m.user_id`

func (r *cardMemberRepository) FindByCardID(ctx context.Context, cardID string) ([]*CardMemberDetail, error) {
	var members []*CardMemberDetail
	query := cardMemberSelect + ` WHERE m.card_id = $1 ORDER BY m.created_at ASC`
	if err := r.db.SelectContext(ctx, &members, query, cardID); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *cardMemberRepository) FindByCardIDs(ctx context.Context, cardIDs []string) ([]*CardMemberDetail, error) {
	if len(cardIDs) == 0 {
		return []*CardMemberDetail{}, nil
	}

	var members []*CardMemberDetail
	query := cardMemberSelect + ` WHERE m.card_id = ANY($1) ORDER BY m.created_at ASC`
	if err := r.db.SelectContext(ctx, &members, query, pq.Array(cardIDs)); err != nil {
		return nil, err
	}
	return members, nil
}
