package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecklistService(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	board := env.board(t, alice, "Sprint 1")
	todo := env.column(t, alice, board.ID, "Todo")
	card := env.card(t, alice, todo.ID, "Release")

	var ids []string
	for i, text := range []string{"Tag", "Build", "Publish"} {
		item, err := env.svc.Checklist.Create(env.ctx, alice.ID, card.ID, text)
		require.NoError(t, err)
		assert.Equal(t, i, item.Position)
		ids = append(ids, item.ID)
	}

	_, err := env.svc.Checklist.Create(env.ctx, alice.ID, card.ID, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = env.svc.Checklist.Create(env.ctx, alice.ID, "missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)

	done, err := env.svc.Checklist.Update(env.ctx, alice.ID, ids[0], UpdateChecklistItemRequest{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, done.Completed)

	_, err = env.svc.Checklist.Update(env.ctx, alice.ID, ids[0], UpdateChecklistItemRequest{Position: intPtr(2)})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.svc.Checklist.Update(env.ctx, alice.ID, ids[0], UpdateChecklistItemRequest{Position: intPtr(7), Text: strPtr("Tag release")})
	require.NoError(t, err)

	require.NoError(t, env.svc.Checklist.Delete(env.ctx, alice.ID, ids[1]))
	assert.ErrorIs(t, env.svc.Checklist.Delete(env.ctx, alice.ID, ids[1]), ErrNotFound)

	items, err := env.svc.Checklist.ListByCard(env.ctx, alice.ID, card.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Publish", items[0].Text)
	assert.Equal(t, 2, items[0].Position)
	assert.Equal(t, "Tag release", items[1].Text)
	assert.Equal(t, 7, items[1].Position)

	// deleting the card takes the checklist with it
	require.NoError(t, env.svc.Card.Delete(env.ctx, alice.ID, card.ID))
	_, err = env.svc.Checklist.Update(env.ctx, alice.ID, ids[2], UpdateChecklistItemRequest{Completed: boolPtr(true)})
	assert.ErrorIs(t, err, ErrNotFound)
}
