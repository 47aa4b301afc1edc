package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
}

// BoardMember model
type BoardMember struct {
	ID        string    `json:"id" db:"id"`
	BoardID   string    `json:"boardId" db:"board_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	IsStarred bool      `json:"isStarred" db:"is_starred"`
	JoinedAt  time.Time `json:"joinedAt" db:"joined_at"`
}

// BoardMemberDetail is a board member joined with the user's display fields
type BoardMemberDetail struct {
	BoardMember
	Username  string  `db:"username"`
	FullName  string  `db:"full_name"`
	AvatarURL *string `db:"avatar_url"`
	Initials  string  `db:"initials"`
}

// BoardMemberRepository interface
type BoardMemberRepository interface {
	Create(ctx context.Context, member *BoardMember) error
	FindByID(ctx context.Context, id string) (*BoardMember, error)
	FindByBoardID(ctx context.Context, boardID string) ([]*BoardMemberDetail, error)
	FindByBoardAndUser(ctx context.Context, boardID, userID string) (*BoardMember, error)
	FindByUser(ctx context.Context, userID string) ([]*BoardMember, error)
	Update(ctx context.Context, member *BoardMember) error
	// Delete removes the membership and the user's card assignments on
	// that board in one transaction.
	Delete(ctx context.Context, id string) error
}

type boardMemberRepository struct {
	db *sqlx.DB
}

// NewBoardMemberRepository creates a new BoardMemberRepository
func NewBoardMemberRepository(db *sqlx.DB) BoardMemberRepository {
	return &boardMemberRepository{db: db}
}

// Create adds a user to a board; a second membership yields ErrDuplicate
func (r *boardMemberRepository) Create(ctx context.Context, member *BoardMember) error {
	return insertBoardMember(ctx, r.db, member)
}

func insertBoardMember(ctx context.Context, q queryer, member *BoardMember) error {
	query := `
		INSERT INTO board_members (board_id, user_id, role, is_starred)
		VALUES ($1, $2, $3, $4)
		RETURNING id, joined_at`

	err := q.QueryRowxContext(ctx, query,
		member.BoardID,
		member.UserID,
		member.Role,
		member.IsStarred,
	).Scan(&member.ID, &member.JoinedAt)
	return translateError(err)
}

const boardMemberColumns = `id, board_id, user_id, role, is_starred, joined_at`

func (r *boardMemberRepository) findOne(ctx context.Context, where string, args ...interface{}) (*BoardMember, error) {
	member := &BoardMember{}
	err := r.db.GetContext(ctx, member, `SELECT `+boardMemberColumns+` FROM board_members WHERE `+where, args...)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

// FindByID retrieves a membership by ID
func (r *boardMemberRepository) FindByID(ctx context.Context, id string) (*BoardMember, error) {
	return r.findOne(ctx, `id = $1`, id)
}

// FindByBoardAndUser retrieves the membership of a user on a board
func (r *boardMemberRepository) FindByBoardAndUser(ctx context.Context, boardID, userID string) (*BoardMember, error) {
	return r.findOne(ctx, `board_id = $1 AND user_id = $2`, boardID, userID)
}

// FindByBoardID lists members with user display fields, in join order
func (r *boardMemberRepository) FindByBoardID(ctx context.Context, boardID string) ([]*BoardMemberDetail, error) {
	query := `
		SELECT m.id, m.board_id, m.user_id, m.role, m.is_starred, m.joined_at,
			u.username, u.full_name, u.avatar_url, u.initials
		FROM board_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.board_id = $1
		ORDER BY m.joined_at ASC`

	var members []*BoardMemberDetail
	if err := r.db.SelectContext(ctx, &members, query, boardID); err != nil {
		return nil, err
	}
	return members, nil
}

// FindByUser lists every membership a user holds
func (r *boardMemberRepository) FindByUser(ctx context.Context, userID string) ([]*BoardMember, error) {
	query := `SELECT ` + boardMemberColumns + ` FROM board_members WHERE user_id = $1 ORDER BY joined_at ASC`

	var members []*BoardMember
	if err := r.db.SelectContext(ctx, &members, query, userID); err != nil {
		return nil, err
	}
	return members, nil
}

// Update overwrites role and star flag
func (r *boardMemberRepository) Update(ctx context.Context, member *BoardMember) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE board_members SET role = $2, is_starred = $3 WHERE id = $1`,
		member.ID, member.Role, member.IsStarred)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}

// Delete removes a membership and unassigns the user from the board's cards
func (r *boardMemberRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var boardID, userID string
		err := tx.QueryRowxContext(ctx,
			`DELETE FROM board_members WHERE id = $1 RETURNING board_id, user_id`, id).
			Scan(&boardID, &userID)
		if err != nil {
			return translateError(err)
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM card_members cm
			USING cards c
			WHERE cm.card_id = c.id AND c.board_id = $1 AND cm.user_id = $2`,
			boardID, userID)
		return err
	})
}
