package memory

import (
	"context"
	"slices"

	"github.com/Marga-Ghale/ora-boards-backend/internal/ordering"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
)

type boardRepository struct{ s *Store }

func (r *boardRepository) Create(_ context.Context, board *repository.Board, owner *repository.BoardMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users.get(board.CreatedBy); !ok {
		return repository.ErrNotFound
	}
	if owner != nil {
		if _, ok := r.s.users.get(owner.UserID); !ok {
			return repository.ErrNotFound
		}
	}

	id, seq := r.s.nextID()
	now := r.s.now()
	board.ID = id
	board.CreatedAt = now
	board.UpdatedAt = now
	r.s.boards.put(id, seq, *board)

	if owner != nil {
		memberID, memberSeq := r.s.nextID()
		owner.ID = memberID
		owner.BoardID = id
		owner.JoinedAt = now
		r.s.members.put(memberID, memberSeq, *owner)
	}
	return nil
}

func (r *boardRepository) FindByID(_ context.Context, id string) (*repository.Board, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.boards.get(id)
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *boardRepository) FindByUser(_ context.Context, userID string) ([]*repository.Board, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	memberOf := make(map[string]bool)
	for _, m := range r.s.members.list(func(m repository.BoardMember) bool { return m.UserID == userID }) {
		memberOf[m.BoardID] = true
	}

	list := r.s.boards.list(func(b repository.Board) bool {
		return b.CreatedBy == userID || memberOf[b.ID]
	})
	slices.Reverse(list)
	return ptrs(list), nil
}

func (r *boardRepository) FindByWorkspace(_ context.Context, workspaceID string) ([]*repository.Board, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := r.s.boards.list(func(b repository.Board) bool {
		return b.WorkspaceID != nil && *b.WorkspaceID == workspaceID
	})
	slices.Reverse(list)
	return ptrs(list), nil
}

func (r *boardRepository) Update(_ context.Context, board *repository.Board) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.boards.get(board.ID)
	if !ok {
		return repository.ErrNotFound
	}
	current.Title = board.Title
	current.Description = board.Description
	current.BackgroundType = board.BackgroundType
	current.BackgroundValue = board.BackgroundValue
	current.Visibility = board.Visibility
	current.IsClosed = board.IsClosed
	current.WorkspaceID = board.WorkspaceID
	current.UpdatedAt = r.s.now()
	r.s.boards.set(board.ID, current)
	board.UpdatedAt = current.UpdatedAt
	return nil
}

func (r *boardRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.boards.get(id); !ok {
		return repository.ErrNotFound
	}
	r.s.deleteBoardLocked(id)
	return nil
}

type boardMemberRepository struct{ s *Store }

func (r *boardMemberRepository) Create(_ context.Context, member *repository.BoardMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.boards.get(member.BoardID); !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.users.get(member.UserID); !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.members.first(func(m repository.BoardMember) bool {
		return m.BoardID == member.BoardID && m.UserID == member.UserID
	}); ok {
		return duplicate("board_members_board_user_key")
	}

	id, seq := r.s.nextID()
	member.ID = id
	member.JoinedAt = r.s.now()
	r.s.members.put(id, seq, *member)
	return nil
}

func (r *boardMemberRepository) FindByID(_ context.Context, id string) (*repository.BoardMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.members.get(id)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *boardMemberRepository) FindByBoardID(_ context.Context, boardID string) ([]*repository.BoardMemberDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*repository.BoardMemberDetail, 0)
	for _, m := range r.s.members.list(func(m repository.BoardMember) bool { return m.BoardID == boardID }) {
		u, ok := r.s.users.get(m.UserID)
		if !ok {
			continue
		}
		out = append(out, &repository.BoardMemberDetail{
			BoardMember: m,
			Username:    u.Username,
			FullName:    u.FullName,
			AvatarURL:   u.AvatarURL,
			Initials:    u.Initials,
		})
	}
	return out, nil
}

func (r *boardMemberRepository) FindByBoardAndUser(_ context.Context, boardID, userID string) (*repository.BoardMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.members.first(func(m repository.BoardMember) bool {
		return m.BoardID == boardID && m.UserID == userID
	})
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *boardMemberRepository) FindByUser(_ context.Context, userID string) ([]*repository.BoardMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return ptrs(r.s.members.list(func(m repository.BoardMember) bool { return m.UserID == userID })), nil
}

func (r *boardMemberRepository) Update(_ context.Context, member *repository.BoardMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.members.get(member.ID)
	if !ok {
		return repository.ErrNotFound
	}
	current.Role = member.Role
	current.IsStarred = member.IsStarred
	r.s.members.set(member.ID, current)
	return nil
}

func (r *boardMemberRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.members.get(id)
	if !ok {
		return repository.ErrNotFound
	}
	r.s.members.remove(id)
	r.s.unassignMemberLocked(m.BoardID, m.UserID)
	return nil
}

type columnRepository struct{ s *Store }

func (r *columnRepository) Append(_ context.Context, column *repository.Column) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.boards.get(column.BoardID); !ok {
		return repository.ErrNotFound
	}
	siblings := r.s.columns.list(func(c repository.Column) bool { return c.BoardID == column.BoardID })

	id, seq := r.s.nextID()
	now := r.s.now()
	column.ID = id
	column.Position = nextPosition(siblings, func(c repository.Column) int { return c.Position })
	column.IsArchived = false
	column.CreatedAt = now
	column.UpdatedAt = now
	r.s.columns.put(id, seq, *column)
	return nil
}

func (r *columnRepository) FindByID(_ context.Context, id string) (*repository.Column, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.columns.get(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *columnRepository) FindByBoardID(_ context.Context, boardID string, includeArchived bool) ([]*repository.Column, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := r.s.columns.list(func(c repository.Column) bool {
		return c.BoardID == boardID && (includeArchived || !c.IsArchived)
	})
	out := ptrs(list)
	ordering.SortByPosition(out)
	return out, nil
}

func (r *columnRepository) Update(_ context.Context, column *repository.Column) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.columns.get(column.ID)
	if !ok {
		return repository.ErrNotFound
	}
	if _, taken := r.s.columns.first(func(c repository.Column) bool {
		return c.BoardID == current.BoardID && c.Position == column.Position && c.ID != column.ID
	}); taken {
		return duplicate("board_columns_board_position_key")
	}

	current.Title = column.Title
	current.Position = column.Position
	current.IsArchived = column.IsArchived
	current.UpdatedAt = r.s.now()
	r.s.columns.set(column.ID, current)
	column.UpdatedAt = current.UpdatedAt
	return nil
}

func (r *columnRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.columns.get(id); !ok {
		return repository.ErrNotFound
	}
	r.s.deleteColumnLocked(id)
	return nil
}

// nextPosition applies the shared append policy to siblings held by value.
func nextPosition[T any](siblings []T, pos func(T) int) int {
	positions := make([]int, len(siblings))
	for i, s := range siblings {
		positions[i] = pos(s)
	}
	return ordering.NextPosition(positions)
}
