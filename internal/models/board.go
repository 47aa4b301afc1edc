package models

import "time"

// ============================================
// Board DTOs
// ============================================

type Background struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type CreateBoardRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description *string     `json:"description,omitempty"`
	Background  *Background `json:"background,omitempty"`
	Visibility  string      `json:"visibility,omitempty"`
	WorkspaceID *string     `json:"workspaceId,omitempty"`
}

// UpdateBoardRequest is a merge patch; "workspaceId": "" detaches the board.
type UpdateBoardRequest struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Background  *Background `json:"background,omitempty"`
	Visibility  *string     `json:"visibility,omitempty"`
	WorkspaceID *string     `json:"workspaceId,omitempty"`
	IsClosed    *bool       `json:"isClosed,omitempty"`
}

type BoardResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Background  Background `json:"background"`
	Visibility  string     `json:"visibility"`
	IsClosed    bool       `json:"isClosed"`
	CreatedBy   string     `json:"createdBy"`
	WorkspaceID *string    `json:"workspaceId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type BoardStatsResponse struct {
	TotalColumns   int `json:"totalColumns"`
	TotalCards     int `json:"totalCards"`
	CompletedCards int `json:"completedCards"`
	OverdueCards   int `json:"overdueCards"`
	TotalMembers   int `json:"totalMembers"`
	TotalLabels    int `json:"totalLabels"`
}

type StarResponse struct {
	BoardID   string `json:"boardId"`
	IsStarred bool   `json:"isStarred"`
}

// BoardViewResponse is the whole board page in one payload.
type BoardViewResponse struct {
	BoardResponse
	Members []BoardMemberResponse `json:"members"`
	Columns []ColumnViewResponse  `json:"columns"`
	Labels  []LabelResponse       `json:"labels"`
}

type ColumnViewResponse struct {
	ColumnResponse
	Cards []CardViewResponse `json:"cards"`
}

type CardViewResponse struct {
	CardResponse
	Labels  []CardLabelResponse  `json:"labels"`
	Members []CardMemberResponse `json:"members"`
}

// ============================================
// Board Member DTOs
// ============================================

type AddBoardMemberRequest struct {
	BoardID string `json:"boardId" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
	Role    string `json:"role,omitempty"`
}

type UpdateBoardMemberRequest struct {
	Role      *string `json:"role,omitempty"`
	IsStarred *bool   `json:"isStarred,omitempty"`
}

type BoardMemberResponse struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	IsStarred bool      `json:"isStarred"`
	JoinedAt  time.Time `json:"joinedAt"`
	Username  string    `json:"username,omitempty"`
	FullName  string    `json:"fullName,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	Initials  string    `json:"initials,omitempty"`
}

// ============================================
// Column DTOs
// ============================================

type CreateColumnRequest struct {
	BoardID string `json:"boardId" binding:"required"`
	Title   string `json:"title" binding:"required"`
}

type UpdateColumnRequest struct {
	Title      *string `json:"title,omitempty"`
	Position   *int    `json:"position,omitempty"`
	IsArchived *bool   `json:"isArchived,omitempty"`
}

type ColumnResponse struct {
	ID         string    `json:"id"`
	BoardID    string    `json:"boardId"`
	Title      string    `json:"title"`
	Position   int       `json:"position"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
