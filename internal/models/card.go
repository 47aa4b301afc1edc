package models

import "time"

// ============================================
// Card DTOs
// ============================================

type CreateCardRequest struct {
	ColumnID    string     `json:"columnId" binding:"required"`
	BoardID     *string    `json:"boardId,omitempty"`
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CoverColor  *string    `json:"coverColor,omitempty"`
}

// UpdateCardRequest is a merge patch. Send "coverColor": "" to remove the
// cover and "clearDueDate": true to drop the due date.
type UpdateCardRequest struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Position     *int       `json:"position,omitempty"`
	ColumnID     *string    `json:"columnId,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ClearDueDate bool       `json:"clearDueDate,omitempty"`
	IsCompleted  *bool      `json:"isCompleted,omitempty"`
	IsArchived   *bool      `json:"isArchived,omitempty"`
	CoverColor   *string    `json:"coverColor,omitempty"`
}

type CardResponse struct {
	ID                string     `json:"id"`
	ColumnID          string     `json:"columnId"`
	BoardID           string     `json:"boardId"`
	Title             string     `json:"title"`
	Description       *string    `json:"description,omitempty"`
	Position          int        `json:"position"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
	IsCompleted       bool       `json:"isCompleted"`
	IsArchived        bool       `json:"isArchived"`
	CoverColor        *string    `json:"coverColor,omitempty"`
	CoverAttachmentID *string    `json:"coverAttachmentId,omitempty"`
	CreatedBy         string     `json:"createdBy"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type AddCardMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type CardMemberResponse struct {
	ID        string    `json:"id"`
	CardID    string    `json:"cardId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	Username  string    `json:"username,omitempty"`
	FullName  string    `json:"fullName,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	Initials  string    `json:"initials,omitempty"`
}

// ============================================
// Label DTOs
// ============================================

type CreateLabelRequest struct {
	BoardID string `json:"boardId" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Color   string `json:"color" binding:"required"`
}

type UpdateLabelRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type LabelResponse struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type AssignLabelRequest struct {
	CardID  string `json:"cardId" binding:"required"`
	LabelID string `json:"labelId" binding:"required"`
}

// CardLabelResponse is a label as seen through a card.
type CardLabelResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CardLabelAssignmentResponse struct {
	ID        string    `json:"id"`
	CardID    string    `json:"cardId"`
	LabelID   string    `json:"labelId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ============================================
// Checklist DTOs
// ============================================

type CreateChecklistItemRequest struct {
	CardID string `json:"cardId" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

type UpdateChecklistItemRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Position  *int    `json:"position,omitempty"`
}

type ChecklistItemResponse struct {
	ID        string    `json:"id"`
	CardID    string    `json:"cardId"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
