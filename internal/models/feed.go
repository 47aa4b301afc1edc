package models

import "time"

// ============================================
// Comment DTOs
// ============================================

type CreateCommentRequest struct {
	CardID  string `json:"cardId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID        string     `json:"id"`
	CardID    string     `json:"cardId"`
	UserID    string     `json:"userId"`
	Content   string     `json:"content"`
	IsEdited  bool       `json:"isEdited"`
	EditedAt  *time.Time `json:"editedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	User      *UserRef   `json:"user,omitempty"`
}

// ============================================
// Activity DTOs
// ============================================

type ActivityResponse struct {
	ID         string                 `json:"id"`
	BoardID    string                 `json:"boardId"`
	CardID     *string                `json:"cardId,omitempty"`
	UserID     string                 `json:"userId"`
	ActionType string                 `json:"actionType"`
	EntityType string                 `json:"entityType"`
	EntityID   *string                `json:"entityId,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
	User       *UserRef               `json:"user,omitempty"`
}

// UserRef is the display subset of a user embedded in feed entries.
type UserRef struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  string  `json:"fullName"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Initials  string  `json:"initials"`
}

// CardDetailsResponse is served by GET /cards/:id/details.
type CardDetailsResponse struct {
	CardResponse
	Labels     []CardLabelResponse     `json:"labels"`
	Members    []CardMemberResponse    `json:"members"`
	Checklist  []ChecklistItemResponse `json:"checklist"`
	Comments   []CommentResponse       `json:"comments"`
	Activities []ActivityResponse      `json:"activities"`
}
