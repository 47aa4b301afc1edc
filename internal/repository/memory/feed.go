package memory

import (
	"context"
	"slices"
	"time"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
)

// ============================================
// Comments
// ============================================

type commentRepository struct{ s *Store }

func (r *commentRepository) Create(_ context.Context, comment *repository.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cards.get(comment.CardID); !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.users.get(comment.UserID); !ok {
		return repository.ErrNotFound
	}

	id, seq := r.s.nextID()
	now := r.s.now()
	comment.ID = id
	comment.IsEdited = false
	comment.EditedAt = nil
	comment.CreatedAt = now
	comment.UpdatedAt = now
	r.s.comments.put(id, seq, *comment)
	return nil
}

func (r *commentRepository) FindByID(_ context.Context, id string) (*repository.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments.get(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *commentRepository) FindByCardID(_ context.Context, cardID string) ([]*repository.CommentDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := r.s.comments.list(func(c repository.Comment) bool { return c.CardID == cardID })
	slices.Reverse(list)

	out := make([]*repository.CommentDetail, 0, len(list))
	for _, c := range list {
		u, ok := r.s.users.get(c.UserID)
		if !ok {
			continue
		}
		out = append(out, &repository.CommentDetail{
			Comment:   c,
			Username:  u.Username,
			FullName:  u.FullName,
			AvatarURL: u.AvatarURL,
			Initials:  u.Initials,
		})
	}
	return out, nil
}

func (r *commentRepository) Update(_ context.Context, comment *repository.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.comments.get(comment.ID)
	if !ok {
		return repository.ErrNotFound
	}
	now := r.s.now()
	current.Content = comment.Content
	current.IsEdited = true
	current.EditedAt = &now
	current.UpdatedAt = now
	r.s.comments.set(current.ID, current)

	comment.IsEdited = true
	comment.EditedAt = current.EditedAt
	comment.UpdatedAt = now
	return nil
}

func (r *commentRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.comments.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

// ============================================
// Activity
// ============================================

type activityRepository struct{ s *Store }

func (r *activityRepository) Create(_ context.Context, activity *repository.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.boards.get(activity.BoardID); !ok {
		return repository.ErrNotFound
	}
	if activity.CardID != nil {
		if _, ok := r.s.cards.get(*activity.CardID); !ok {
			return repository.ErrNotFound
		}
	}
	if _, ok := r.s.users.get(activity.UserID); !ok {
		return repository.ErrNotFound
	}

	id, seq := r.s.nextID()
	activity.ID = id
	activity.CreatedAt = r.s.now()
	r.s.activities.put(id, seq, *activity)
	return nil
}

// newest lists matching activities newest first, capped at limit.
func (r *activityRepository) newest(keep func(repository.Activity) bool, limit int) []*repository.ActivityDetail {
	list := r.s.activities.list(keep)
	slices.Reverse(list)

	out := make([]*repository.ActivityDetail, 0)
	for _, a := range list {
		if len(out) == limit {
			break
		}
		u, ok := r.s.users.get(a.UserID)
		if !ok {
			continue
		}
		out = append(out, &repository.ActivityDetail{
			Activity:  a,
			Username:  u.Username,
			FullName:  u.FullName,
			AvatarURL: u.AvatarURL,
			Initials:  u.Initials,
		})
	}
	return out
}

func (r *activityRepository) FindByBoardID(_ context.Context, boardID string, limit int) ([]*repository.ActivityDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.newest(func(a repository.Activity) bool { return a.BoardID == boardID }, limit), nil
}

func (r *activityRepository) FindByCardID(_ context.Context, cardID string, limit int) ([]*repository.ActivityDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.newest(func(a repository.Activity) bool { return a.CardID != nil && *a.CardID == cardID }, limit), nil
}

func (r *activityRepository) DeleteOlderThan(_ context.Context, olderThan time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int64
	for _, a := range r.s.activities.list(func(a repository.Activity) bool { return a.CreatedAt.Before(olderThan) }) {
		r.s.activities.remove(a.ID)
		removed++
	}
	return removed, nil
}
