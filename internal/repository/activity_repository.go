package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ActivityDetails is the free-form payload of an activity, stored as JSONB.
type ActivityDetails map[string]interface{}

func (d ActivityDetails) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *ActivityDetails) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("activity details: unsupported type %T", src)
	}
}

// Activity records one change made on a board
type Activity struct {
	ID         string          `json:"id" db:"id"`
	BoardID    string          `json:"boardId" db:"board_id"`
	CardID     *string         `json:"cardId,omitempty" db:"card_id"`
	UserID     string          `json:"userId" db:"user_id"`
	ActionType string          `json:"actionType" db:"action_type"`
	EntityType string          `json:"entityType" db:"entity_type"`
	EntityID   *string         `json:"entityId,omitempty" db:"entity_id"`
	Details    ActivityDetails `json:"details,omitempty" db:"details"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}

// ActivityDetail is an activity joined with the actor's display fields
type ActivityDetail struct {
	Activity
	Username  string  `db:"username"`
	FullName  string  `db:"full_name"`
	AvatarURL *string `db:"avatar_url"`
	Initials  string  `db:"initials"`
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	// FindByBoardID and FindByCardID return at most limit entries, newest first.
	FindByBoardID(ctx context.Context, boardID string, limit int) ([]*ActivityDetail, error)
	FindByCardID(ctx context.Context, cardID string, limit int) ([]*ActivityDetail, error)
	DeleteOlderThan(ctx context.Context, olderThan time.Time) (int64, error)
}

type activityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *Activity) error {
	query := `
		INSERT INTO activities (board_id, card_id, user_id, action_type, entity_type, entity_id, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		activity.BoardID, activity.CardID, activity.UserID,
		activity.ActionType, activity.EntityType, activity.EntityID, activity.Details,
	).Scan(&activity.ID, &activity.CreatedAt)
	return translateError(err)
}

const activitySelect = `
	SELECT a.id, a.board_id, a.card_id, a.user_id, a.action_type, a.entity_type, a.entity_id,
		a.details, a.created_at, u.username, u.full_name, u.avatar_url, u.initials
	FROM activities a
	JOIN users u ON u.id = a.user_id`

func (r *activityRepository) FindByBoardID(ctx context.Context, boardID string, limit int) ([]*ActivityDetail, error) {
	var activities []*ActivityDetail
	query := activitySelect + ` WHERE a.board_id = $1 ORDER BY a.created_at DESC LIMIT $2`
	if err := r.db.SelectContext(ctx, &activities, query, boardID, limit); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) FindByCardID(ctx context.Context, cardID string, limit int) ([]*ActivityDetail, error) {
	var activities []*ActivityDetail
	query := activitySelect + ` WHERE a.card_id = $1 ORDER BY a.created_at DESC LIMIT $2`
	if err := r.db.SelectContext(ctx, &activities, query, cardID, limit); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) DeleteOlderThan(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE created_at < $1`, olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
