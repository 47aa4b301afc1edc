package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
)

type userRepository struct{ s *Store }

func (r *userRepository) Create(_ context.Context, user *repository.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users.list(nil) {
		if strings.EqualFold(u.Email, user.Email) {
			return duplicate("users_email_key")
		}
		if u.Username == user.Username {
			return duplicate("users_username_key")
		}
	}

	id, seq := r.s.nextID()
	now := r.s.now()
	user.ID = id
	user.IsActive = true
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users.put(id, seq, *user)
	return nil
}

func (r *userRepository) find(match func(repository.User) bool) (*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users.first(match)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepository) FindByID(_ context.Context, id string) (*repository.User, error) {
	return r.find(func(u repository.User) bool { return u.ID == id })
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	return r.find(func(u repository.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepository) FindByUsername(_ context.Context, username string) (*repository.User, error) {
	return r.find(func(u repository.User) bool { return u.Username == username })
}

func (r *userRepository) Update(_ context.Context, user *repository.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users.get(user.ID)
	if !ok {
		return repository.ErrNotFound
	}
	current.FullName = user.FullName
	current.AvatarURL = user.AvatarURL
	current.Initials = user.Initials
	current.UpdatedAt = r.s.now()
	r.s.users.set(user.ID, current)
	user.UpdatedAt = current.UpdatedAt
	return nil
}

func (r *userRepository) UpdateLastLogin(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users.get(userID)
	if !ok {
		return repository.ErrNotFound
	}
	now := r.s.now()
	current.LastLoginAt = &now
	r.s.users.set(userID, current)
	return nil
}

func (r *userRepository) SaveRefreshToken(_ context.Context, token *repository.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users.get(token.UserID); !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.tokens.first(func(t repository.RefreshToken) bool { return t.Token == token.Token }); ok {
		return duplicate("refresh_tokens_token_key")
	}

	id, seq := r.s.nextID()
	token.ID = id
	token.CreatedAt = r.s.now()
	r.s.tokens.put(id, seq, *token)
	return nil
}

func (r *userRepository) FindRefreshToken(_ context.Context, token string) (*repository.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tokens.first(func(t repository.RefreshToken) bool { return t.Token == token })
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *userRepository) DeleteRefreshToken(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tokens.first(func(t repository.RefreshToken) bool { return t.Token == token })
	if !ok {
		return repository.ErrNotFound
	}
	r.s.tokens.remove(t.ID)
	return nil
}

func (r *userRepository) DeleteExpiredRefreshTokens(_ context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, t := range r.s.tokens.list(func(t repository.RefreshToken) bool { return t.ExpiresAt.Before(before) }) {
		r.s.tokens.remove(t.ID)
		n++
	}
	return n, nil
}

type workspaceRepository struct{ s *Store }

func (r *workspaceRepository) Create(_ context.Context, ws *repository.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, seq := r.s.nextID()
	now := r.s.now()
	ws.ID = id
	ws.CreatedAt = now
	ws.UpdatedAt = now
	r.s.workspaces.put(id, seq, *ws)
	return nil
}

func (r *workspaceRepository) FindByID(_ context.Context, id string) (*repository.Workspace, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ws, ok := r.s.workspaces.get(id)
	if !ok {
		return nil, nil
	}
	return &ws, nil
}

func (r *workspaceRepository) FindByOwner(_ context.Context, userID string) ([]*repository.Workspace, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := r.s.workspaces.list(func(w repository.Workspace) bool { return w.CreatedBy == userID })
	slices.Reverse(list)
	return ptrs(list), nil
}

func (r *workspaceRepository) Update(_ context.Context, ws *repository.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.workspaces.get(ws.ID)
	if !ok {
		return repository.ErrNotFound
	}
	current.Name = ws.Name
	current.Description = ws.Description
	current.Type = ws.Type
	current.Visibility = ws.Visibility
	current.UpdatedAt = r.s.now()
	r.s.workspaces.set(ws.ID, current)
	ws.UpdatedAt = current.UpdatedAt
	return nil
}

// Delete detaches the workspace's boards before removing it.
func (r *workspaceRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.workspaces.remove(id) {
		return repository.ErrNotFound
	}
	for _, b := range r.s.boards.list(func(b repository.Board) bool {
		return b.WorkspaceID != nil && *b.WorkspaceID == id
	}) {
		b.WorkspaceID = nil
		r.s.boards.set(b.ID, b)
	}
	return nil
}
