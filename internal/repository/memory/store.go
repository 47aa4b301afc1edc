// Package memory is an in-process implementation of the repository
// interfaces. It enforces the same unique constraints and cascade rules as the
// Postgres schema and backs the tests and STORAGE_DRIVER=memory.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
)

type row[T any] struct {
	seq int64
	val T
}

// table keeps rows by id and remembers insertion order through seq.
type table[T any] struct {
	rows map[string]*row[T]
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]*row[T])}
}

func (t *table[T]) get(id string) (T, bool) {
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return r.val, true
}

func (t *table[T]) put(id string, seq int64, v T) {
	t.rows[id] = &row[T]{seq: seq, val: v}
}

func (t *table[T]) set(id string, v T) bool {
	r, ok := t.rows[id]
	if !ok {
		return false
	}
	r.val = v
	return true
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// list returns matching rows in insertion order.
func (t *table[T]) list(keep func(T) bool) []T {
	matched := make([]*row[T], 0)
	for _, r := range t.rows {
		if keep == nil || keep(r.val) {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	out := make([]T, len(matched))
	for i, r := range matched {
		out[i] = r.val
	}
	return out
}

func (t *table[T]) first(match func(T) bool) (T, bool) {
	for _, v := range t.list(match) {
		return v, true
	}
	var zero T
	return zero, false
}

func ptrs[T any](vals []T) []*T {
	out := make([]*T, len(vals))
	for i := range vals {
		v := vals[i]
		out[i] = &v
	}
	return out
}

func duplicate(constraint string) error {
	return fmt.Errorf("%w: %s", repository.ErrDuplicate, constraint)
}

// Store is the shared arena behind every memory repository.
type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	users       table[repository.User]
	tokens      table[repository.RefreshToken]
	workspaces  table[repository.Workspace]
	boards      table[repository.Board]
	members     table[repository.BoardMember]
	columns     table[repository.Column]
	cards       table[repository.Card]
	labels      table[repository.Label]
	cardLabels  table[repository.CardLabel]
	cardMembers table[repository.CardMember]
	checklist   table[repository.ChecklistItem]
	comments    table[repository.Comment]
	activities  table[repository.Activity]
}

func NewStore() *Store {
	return &Store{
		now:         func() time.Time { return time.Now().UTC() },
		users:       newTable[repository.User](),
		tokens:      newTable[repository.RefreshToken](),
		workspaces:  newTable[repository.Workspace](),
		boards:      newTable[repository.Board](),
		members:     newTable[repository.BoardMember](),
		columns:     newTable[repository.Column](),
		cards:       newTable[repository.Card](),
		labels:      newTable[repository.Label](),
		cardLabels:  newTable[repository.CardLabel](),
		cardMembers: newTable[repository.CardMember](),
		checklist:   newTable[repository.ChecklistItem](),
		comments:    newTable[repository.Comment](),
		activities:  newTable[repository.Activity](),
	}
}

// NewRepositories returns the full repository set over a fresh Store.
func NewRepositories() *repository.Repositories {
	return NewStore().Repositories()
}

func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		UserRepo:        &userRepository{s},
		WorkspaceRepo:   &workspaceRepository{s},
		BoardRepo:       &boardRepository{s},
		BoardMemberRepo: &boardMemberRepository{s},
		ColumnRepo:      &columnRepository{s},
		CardRepo:        &cardRepository{s},
		CardMemberRepo:  &cardMemberRepository{s},
		LabelRepo:       &labelRepository{s},
		CardLabelRepo:   &cardLabelRepository{s},
		ChecklistRepo:   &checklistRepository{s},
		CommentRepo:     &commentRepository{s},
		ActivityRepo:    &activityRepository{s},
	}
}

// nextID must be called with mu held for writing.
func (s *Store) nextID() (string, int64) {
	s.seq++
	return uuid.NewString(), s.seq
}

// ============================================
// Cascades (mu held for writing)
// ============================================

func (s *Store) deleteBoardLocked(id string) {
	for _, c := range s.columns.list(func(c repository.Column) bool { return c.BoardID == id }) {
		s.deleteColumnLocked(c.ID)
	}
	for _, l := range s.labels.list(func(l repository.Label) bool { return l.BoardID == id }) {
		s.deleteLabelLocked(l.ID)
	}
	for _, m := range s.members.list(func(m repository.BoardMember) bool { return m.BoardID == id }) {
		s.members.remove(m.ID)
	}
	for _, a := range s.activities.list(func(a repository.Activity) bool { return a.BoardID == id }) {
		s.activities.remove(a.ID)
	}
	s.boards.remove(id)
}

func (s *Store) deleteColumnLocked(id string) {
	for _, c := range s.cards.list(func(c repository.Card) bool { return c.ColumnID == id }) {
		s.deleteCardLocked(c.ID)
	}
	s.columns.remove(id)
}

func (s *Store) deleteCardLocked(id string) {
	for _, cl := range s.cardLabels.list(func(cl repository.CardLabel) bool { return cl.CardID == id }) {
		s.cardLabels.remove(cl.ID)
	}
	for _, cm := range s.cardMembers.list(func(cm repository.CardMember) bool { return cm.CardID == id }) {
		s.cardMembers.remove(cm.ID)
	}
	for _, it := range s.checklist.list(func(it repository.ChecklistItem) bool { return it.CardID == id }) {
		s.checklist.remove(it.ID)
	}
	for _, c := range s.comments.list(func(c repository.Comment) bool { return c.CardID == id }) {
		s.comments.remove(c.ID)
	}
	// the activity log outlives the card
	for _, a := range s.activities.list(func(a repository.Activity) bool { return a.CardID != nil && *a.CardID == id }) {
		a.CardID = nil
		s.activities.set(a.ID, a)
	}
	s.cards.remove(id)
}

func (s *Store) deleteLabelLocked(id string) {
	for _, cl := range s.cardLabels.list(func(cl repository.CardLabel) bool { return cl.LabelID == id }) {
		s.cardLabels.remove(cl.ID)
	}
	s.labels.remove(id)
}

// detachCardLocked drops label assignments from other boards and members who
// do not belong to boardID.
func (s *Store) detachCardLocked(cardID, boardID string) {
	for _, cl := range s.cardLabels.list(func(cl repository.CardLabel) bool { return cl.CardID == cardID }) {
		if l, ok := s.labels.get(cl.LabelID); ok && l.BoardID != boardID {
			s.cardLabels.remove(cl.ID)
		}
	}
	for _, cm := range s.cardMembers.list(func(cm repository.CardMember) bool { return cm.CardID == cardID }) {
		if _, member := s.members.first(func(m repository.BoardMember) bool {
			return m.BoardID == boardID && m.UserID == cm.UserID
		}); !member {
			s.cardMembers.remove(cm.ID)
		}
	}
}

// unassignMemberLocked removes a user's card assignments on one board.
func (s *Store) unassignMemberLocked(boardID, userID string) {
	for _, cm := range s.cardMembers.list(func(cm repository.CardMember) bool { return cm.UserID == userID }) {
		if c, ok := s.cards.get(cm.CardID); ok && c.BoardID == boardID {
			s.cardMembers.remove(cm.ID)
		}
	}
}
