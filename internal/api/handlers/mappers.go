package handlers

import (
	"github.com/Marga-Ghale/ora-boards-backend/internal/models"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/service"
)

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		AvatarURL:   u.AvatarURL,
		Initials:    u.Initials,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toWorkspaceResponse(w *repository.Workspace) models.WorkspaceResponse {
	return models.WorkspaceResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Type:        w.Type,
		Visibility:  w.Visibility,
		CreatedBy:   w.CreatedBy,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func toBoardResponse(b *repository.Board) models.BoardResponse {
	return models.BoardResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Background: models.Background{
			Type:  b.BackgroundType,
			Value: b.BackgroundValue,
		},
		Visibility:  b.Visibility,
		IsClosed:    b.IsClosed,
		CreatedBy:   b.CreatedBy,
		WorkspaceID: b.WorkspaceID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBoardMemberResponse(m *repository.BoardMember) models.BoardMemberResponse {
	return models.BoardMemberResponse{
		ID:        m.ID,
		BoardID:   m.BoardID,
		UserID:    m.UserID,
		Role:      m.Role,
		IsStarred: m.IsStarred,
		JoinedAt:  m.JoinedAt,
	}
}

func toBoardMemberDetailResponse(m *repository.BoardMemberDetail) models.BoardMemberResponse {
	resp := toBoardMemberResponse(&m.BoardMember)
	resp.Username = m.Username
	resp.FullName = m.FullName
	resp.AvatarURL = m.AvatarURL
	resp.Initials = m.Initials
	return resp
}

func toColumnResponse(col *repository.Column) models.ColumnResponse {
	return models.ColumnResponse{
		ID:         col.ID,
		BoardID:    col.BoardID,
		Title:      col.Title,
		Position:   col.Position,
		IsArchived: col.IsArchived,
		CreatedAt:  col.CreatedAt,
		UpdatedAt:  col.UpdatedAt,
	}
}

func toCardResponse(card *repository.Card) models.CardResponse {
	return models.CardResponse{
		ID:                card.ID,
		ColumnID:          card.ColumnID,
		BoardID:           card.BoardID,
		Title:             card.Title,
		Description:       card.Description,
		Position:          card.Position,
		DueDate:           card.DueDate,
		IsCompleted:       card.IsCompleted,
		IsArchived:        card.IsArchived,
		CoverColor:        card.CoverColor,
		CoverAttachmentID: card.CoverAttachmentID,
		CreatedBy:         card.CreatedBy,
		CreatedAt:         card.CreatedAt,
		UpdatedAt:         card.UpdatedAt,
	}
}

func toCardMemberResponse(m *repository.CardMember) models.CardMemberResponse {
	return models.CardMemberResponse{
		ID:        m.ID,
		CardID:    m.CardID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

func toCardMemberDetailResponse(m *repository.CardMemberDetail) models.CardMemberResponse {
	resp := toCardMemberResponse(&m.CardMember)
	resp.Username = m.Username
	resp.FullName = m.FullName
	resp.AvatarURL = m.AvatarURL
	resp.Initials = m.Initials
	return resp
}

func toLabelResponse(l *repository.Label) models.LabelResponse {
	return models.LabelResponse{
		ID:        l.ID,
		BoardID:   l.BoardID,
		Name:      l.Name,
		Color:     l.Color,
		CreatedAt: l.CreatedAt,
	}
}

func toChecklistItemResponse(it *repository.ChecklistItem) models.ChecklistItemResponse {
	return models.ChecklistItemResponse{
		ID:        it.ID,
		CardID:    it.CardID,
		Text:      it.Text,
		Completed: it.Completed,
		Position:  it.Position,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func toBoardViewResponse(v *service.BoardView) models.BoardViewResponse {
	resp := models.BoardViewResponse{
		BoardResponse: toBoardResponse(v.Board),
		Members:       make([]models.BoardMemberResponse, len(v.Members)),
		Columns:       make([]models.ColumnViewResponse, len(v.Columns)),
		Labels:        make([]models.LabelResponse, len(v.Labels)),
	}
	for i, m := range v.Members {
		resp.Members[i] = toBoardMemberDetailResponse(m)
	}
	for i, l := range v.Labels {
		resp.Labels[i] = toLabelResponse(l)
	}
	for i, col := range v.Columns {
		cv := models.ColumnViewResponse{
			ColumnResponse: toColumnResponse(col.Column),
			Cards:          make([]models.CardViewResponse, len(col.Cards)),
		}
		for j, card := range col.Cards {
			entry := models.CardViewResponse{
				CardResponse: toCardResponse(card.Card),
				Labels:       make([]models.CardLabelResponse, len(card.Labels)),
				Members:      make([]models.CardMemberResponse, len(card.Members)),
			}
			for k, l := range card.Labels {
				entry.Labels[k] = models.CardLabelResponse{ID: l.LabelID, Name: l.Name, Color: l.Color}
			}
			for k, m := range card.Members {
				entry.Members[k] = toCardMemberDetailResponse(m)
			}
			cv.Cards[j] = entry
		}
		resp.Columns[i] = cv
	}
	return resp
}

func toCommentResponse(cm *repository.Comment) models.CommentResponse {
	return models.CommentResponse{
		ID:        cm.ID,
		CardID:    cm.CardID,
		UserID:    cm.UserID,
		Content:   cm.Content,
		IsEdited:  cm.IsEdited,
		EditedAt:  cm.EditedAt,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
}

func toCommentDetailResponse(cm *repository.CommentDetail) models.CommentResponse {
	resp := toCommentResponse(&cm.Comment)
	resp.User = &models.UserRef{
		ID:        cm.UserID,
		Username:  cm.Username,
		FullName:  cm.FullName,
		AvatarURL: cm.AvatarURL,
		Initials:  cm.Initials,
	}
	return resp
}

func toActivityResponse(a *repository.ActivityDetail) models.ActivityResponse {
	return models.ActivityResponse{
		ID:         a.ID,
		BoardID:    a.BoardID,
		CardID:     a.CardID,
		UserID:     a.UserID,
		ActionType: a.ActionType,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Details:    a.Details,
		CreatedAt:  a.CreatedAt,
		User: &models.UserRef{
			ID:        a.UserID,
			Username:  a.Username,
			FullName:  a.FullName,
			AvatarURL: a.AvatarURL,
			Initials:  a.Initials,
		},
	}
}

func toActivityResponses(entries []*repository.ActivityDetail) []models.ActivityResponse {
	out := make([]models.ActivityResponse, len(entries))
	for i, a := range entries {
		out[i] = toActivityResponse(a)
	}
	return out
}

func toCardDetailsResponse(d *service.CardDetails) models.CardDetailsResponse {
	resp := models.CardDetailsResponse{
		CardResponse: toCardResponse(d.Card),
		Labels:       make([]models.CardLabelResponse, len(d.Labels)),
		Members:      make([]models.CardMemberResponse, len(d.Members)),
		Checklist:    make([]models.ChecklistItemResponse, len(d.Checklist)),
		Comments:     make([]models.CommentResponse, len(d.Comments)),
		Activities:   toActivityResponses(d.Activities),
	}
	for i, l := range d.Labels {
		resp.Labels[i] = models.CardLabelResponse{ID: l.ID, Name: l.Name, Color: l.Color}
	}
	for i, m := range d.Members {
		resp.Members[i] = toCardMemberDetailResponse(m)
	}
	for i, it := range d.Checklist {
		resp.Checklist[i] = toChecklistItemResponse(it)
	}
	for i, cm := range d.Comments {
		resp.Comments[i] = toCommentDetailResponse(cm)
	}
	return resp
}
