package memory

import (
	"context"
	"sort"

	"github.com/Marga-Ghale/ora-boards-backend/internal/ordering"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
)

type cardRepository struct{ s *Store }

func (r *cardRepository) cardsInColumn(columnID string) []repository.Card {
	return r.s.cards.list(func(c repository.Card) bool { return c.ColumnID == columnID })
}

func cardPosition(c repository.Card) int { return c.Position }

func (r *cardRepository) Append(_ context.Context, card *repository.Card) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	column, ok := r.s.columns.get(card.ColumnID)
	if !ok {
		return repository.ErrNotFound
	}

	id, seq := r.s.nextID()
	now := r.s.now()
	card.ID = id
	card.BoardID = column.BoardID
	card.Position = nextPosition(r.cardsInColumn(card.ColumnID), cardPosition)
	card.IsCompleted = false
	card.IsArchived = false
	card.CreatedAt = now
	card.UpdatedAt = now
	r.s.cards.put(id, seq, *card)
	return nil
}

func (r *cardRepository) FindByID(_ context.Context, id string) (*repository.Card, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.cards.get(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *cardRepository) sorted(keep func(repository.Card) bool) []*repository.Card {
	out := ptrs(r.s.cards.list(keep))
	ordering.SortByPosition(out)
	return out
}

func (r *cardRepository) FindByColumnID(_ context.Context, columnID string) ([]*repository.Card, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.sorted(func(c repository.Card) bool { return c.ColumnID == columnID }), nil
}

func (r *cardRepository) FindByBoardID(_ context.Context, boardID string) ([]*repository.Card, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.sorted(func(c repository.Card) bool { return c.BoardID == boardID }), nil
}

func (r *cardRepository) FindByMember(_ context.Context, userID string) ([]*repository.Card, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	assigned := make(map[string]bool)
	for _, cm := range r.s.cardMembers.list(func(cm repository.CardMember) bool { return cm.UserID == userID }) {
		assigned[cm.CardID] = true
	}
	return ptrs(r.s.cards.list(func(c repository.Card) bool { return assigned[c.ID] })), nil
}

// write stores card's fields over the current row, keeping identity and
// creation metadata. mu must be held.
func (r *cardRepository) write(card *repository.Card, column repository.Column) {
	current, _ := r.s.cards.get(card.ID)
	if current.BoardID != column.BoardID {
		r.s.detachCardLocked(card.ID, column.BoardID)
	}
	current.ColumnID = column.ID
	current.BoardID = column.BoardID
	current.Title = card.Title
	current.Description = card.Description
	current.Position = card.Position
	current.DueDate = card.DueDate
	current.IsCompleted = card.IsCompleted
	current.IsArchived = card.IsArchived
	current.CoverColor = card.CoverColor
	current.CoverAttachmentID = card.CoverAttachmentID
	current.UpdatedAt = r.s.now()
	r.s.cards.set(card.ID, current)

	card.BoardID = current.BoardID
	card.UpdatedAt = current.UpdatedAt
}

func (r *cardRepository) Update(_ context.Context, card *repository.Card) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cards.get(card.ID); !ok {
		return repository.ErrNotFound
	}
	column, ok := r.s.columns.get(card.ColumnID)
	if !ok {
		return repository.ErrNotFound
	}
	for _, c := range r.cardsInColumn(card.ColumnID) {
		if c.Position == card.Position && c.ID != card.ID {
			return duplicate("cards_column_position_key")
		}
	}

	r.write(card, column)
	return nil
}

func (r *cardRepository) MoveToColumn(_ context.Context, card *repository.Card) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cards.get(card.ID); !ok {
		return repository.ErrNotFound
	}
	column, ok := r.s.columns.get(card.ColumnID)
	if !ok {
		return repository.ErrNotFound
	}

	card.Position = nextPosition(r.cardsInColumn(card.ColumnID), cardPosition)
	r.write(card, column)
	return nil
}

func (r *cardRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cards.get(id); !ok {
		return repository.ErrNotFound
	}
	r.s.deleteCardLocked(id)
	return nil
}

type cardMemberRepository struct{ s *Store }

func (r *cardMemberRepository) Create(_ context.Context, member *repository.CardMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cards.get(member.CardID); !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.users.get(member.UserID); !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.cardMembers.first(func(cm repository.CardMember) bool {
		return cm.CardID == member.CardID && cm.UserID == member.UserID
	}); ok {
		return duplicate("card_members_card_user_key")
	}

	id, seq := r.s.nextID()
	member.ID = id
	member.CreatedAt = r.s.now()
	r.s.cardMembers.put(id, seq, *member)
	return nil
}

func (r *cardMemberRepository) Delete(_ context.Context, cardID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cm, ok := r.s.cardMembers.first(func(cm repository.CardMember) bool {
		return cm.CardID == cardID && cm.UserID == userID
	})
	if !ok {
		return repository.ErrNotFound
	}
	r.s.cardMembers.remove(cm.ID)
	return nil
}

func (r *cardMemberRepository) details(keep func(repository.CardMember) bool) []*repository.CardMemberDetail {
	out := make([]*repository.CardMemberDetail, 0)
	for _, cm := range r.s.cardMembers.list(keep) {
		u, ok := r.s.users.get(cm.UserID)
		if !ok {
			continue
		}
		out = append(out, &repository.CardMemberDetail{
			CardMember: cm,
			Username:   u.Username,
			FullName:   u.FullName,
			AvatarURL:  u.AvatarURL,
			Initials:   u.Initials,
		})
	}
	return out
}

func (r *cardMemberRepository) FindByCardID(_ context.Context, cardID string) ([]*repository.CardMemberDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.details(func(cm repository.CardMember) bool { return cm.CardID == cardID }), nil
}

func (r *cardMemberRepository) FindByCardIDs(_ context.Context, cardIDs []string) ([]*repository.CardMemberDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := toSet(cardIDs)
	return r.details(func(cm repository.CardMember) bool { return wanted[cm.CardID] }), nil
}

type labelRepository struct{ s *Store }

func (r *labelRepository) Create(_ context.Context, label *repository.Label) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.boards.get(label.BoardID); !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(label.BoardID, label.Name, "") {
		return duplicate("labels_board_name_key")
	}

	id, seq := r.s.nextID()
	now := r.s.now()
	label.ID = id
	label.CreatedAt = now
	label.UpdatedAt = now
	r.s.labels.put(id, seq, *label)
	return nil
}

func (r *labelRepository) nameTaken(boardID, name, exceptID string) bool {
	_, taken := r.s.labels.first(func(l repository.Label) bool {
		return l.BoardID == boardID && l.Name == name && l.ID != exceptID
	})
	return taken
}

func (r *labelRepository) FindByID(_ context.Context, id string) (*repository.Label, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.labels.get(id)
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *labelRepository) FindByBoardID(_ context.Context, boardID string) ([]*repository.Label, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := r.s.labels.list(func(l repository.Label) bool { return l.BoardID == boardID })
	sortLabelsByName(list)
	return ptrs(list), nil
}

func (r *labelRepository) FindByName(_ context.Context, boardID, name string) (*repository.Label, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.labels.first(func(l repository.Label) bool { return l.BoardID == boardID && l.Name == name })
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *labelRepository) Update(_ context.Context, label *repository.Label) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.labels.get(label.ID)
	if !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(current.BoardID, label.Name, label.ID) {
		return duplicate("labels_board_name_key")
	}
	current.Name = label.Name
	current.Color = label.Color
	current.UpdatedAt = r.s.now()
	r.s.labels.set(label.ID, current)
	label.UpdatedAt = current.UpdatedAt
	return nil
}

func (r *labelRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.labels.get(id); !ok {
		return repository.ErrNotFound
	}
	r.s.deleteLabelLocked(id)
	return nil
}

type cardLabelRepository struct{ s *Store }

func (r *cardLabelRepository) Create(_ context.Context, cl *repository.CardLabel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cards.get(cl.CardID); !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.labels.get(cl.LabelID); !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.cardLabels.first(func(x repository.CardLabel) bool {
		return x.CardID == cl.CardID && x.LabelID == cl.LabelID
	}); ok {
		return duplicate("card_labels_card_label_key")
	}

	id, seq := r.s.nextID()
	cl.ID = id
	cl.CreatedAt = r.s.now()
	r.s.cardLabels.put(id, seq, *cl)
	return nil
}

func (r *cardLabelRepository) Delete(_ context.Context, cardID, labelID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cl, ok := r.s.cardLabels.first(func(x repository.CardLabel) bool {
		return x.CardID == cardID && x.LabelID == labelID
	})
	if !ok {
		return repository.ErrNotFound
	}
	r.s.cardLabels.remove(cl.ID)
	return nil
}

func (r *cardLabelRepository) FindLabelsByCardID(_ context.Context, cardID string) ([]*repository.Label, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*repository.Label, 0)
	for _, cl := range r.s.cardLabels.list(func(x repository.CardLabel) bool { return x.CardID == cardID }) {
		if l, ok := r.s.labels.get(cl.LabelID); ok {
			out = append(out, &l)
		}
	}
	return out, nil
}

func (r *cardLabelRepository) FindByCardIDs(_ context.Context, cardIDs []string) ([]*repository.CardLabelDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := toSet(cardIDs)
	out := make([]*repository.CardLabelDetail, 0)
	for _, cl := range r.s.cardLabels.list(func(x repository.CardLabel) bool { return wanted[x.CardID] }) {
		l, ok := r.s.labels.get(cl.LabelID)
		if !ok {
			continue
		}
		out = append(out, &repository.CardLabelDetail{
			CardID:  cl.CardID,
			LabelID: l.ID,
			Name:    l.Name,
			Color:   l.Color,
		})
	}
	return out, nil
}

type checklistRepository struct{ s *Store }

func (r *checklistRepository) Append(_ context.Context, item *repository.ChecklistItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cards.get(item.CardID); !ok {
		return repository.ErrNotFound
	}
	siblings := r.s.checklist.list(func(it repository.ChecklistItem) bool { return it.CardID == item.CardID })

	id, seq := r.s.nextID()
	now := r.s.now()
	item.ID = id
	item.Completed = false
	item.Position = nextPosition(siblings, func(it repository.ChecklistItem) int { return it.Position })
	item.CreatedAt = now
	item.UpdatedAt = now
	r.s.checklist.put(id, seq, *item)
	return nil
}

func (r *checklistRepository) FindByID(_ context.Context, id string) (*repository.ChecklistItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	it, ok := r.s.checklist.get(id)
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *checklistRepository) FindByCardID(_ context.Context, cardID string) ([]*repository.ChecklistItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := ptrs(r.s.checklist.list(func(it repository.ChecklistItem) bool { return it.CardID == cardID }))
	ordering.SortByPosition(out)
	return out, nil
}

func (r *checklistRepository) Update(_ context.Context, item *repository.ChecklistItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.checklist.get(item.ID)
	if !ok {
		return repository.ErrNotFound
	}
	if _, taken := r.s.checklist.first(func(it repository.ChecklistItem) bool {
		return it.CardID == current.CardID && it.Position == item.Position && it.ID != item.ID
	}); taken {
		return duplicate("checklist_items_card_position_key")
	}

	current.Text = item.Text
	current.Completed = item.Completed
	current.Position = item.Position
	current.UpdatedAt = r.s.now()
	r.s.checklist.set(item.ID, current)
	item.UpdatedAt = current.UpdatedAt
	return nil
}

func (r *checklistRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.checklist.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func sortLabelsByName(labels []repository.Label) {
	sort.SliceStable(labels, func(i, j int) bool { return labels[i].Name < labels[j].Name })
}
