package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

func TestBoardService_Create(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")

	board := env.board(t, alice, "  Sprint 1  ")
	assert.Equal(t, "Sprint 1", board.Title)
	assert.Equal(t, alice.ID, board.CreatedBy)
	assert.Equal(t, types.DefaultBackgroundType, board.BackgroundType)
	assert.Equal(t, types.DefaultBackgroundValue, board.BackgroundValue)
	assert.Equal(t, types.VisibilityPrivate, board.Visibility)

	members, err := env.svc.BoardMember.ListByBoard(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, alice.ID, members[0].UserID)
	assert.Equal(t, types.RoleOwner, members[0].Role)

	t.Run("validation", func(t *testing.T) {
		cases := map[string]CreateBoardRequest{
			"empty title":       {Title: " "},
			"bad visibility":    {Title: "x", Visibility: "secret"},
			"bad background":    {Title: "x", Background: &Background{Type: "video", Value: "x"}},
			"bad color":         {Title: "x", Background: &Background{Type: types.BackgroundColor, Value: "blue"}},
			"unknown workspace": {Title: "x", WorkspaceID: strPtr("nope")},
		}
		for name, req := range cases {
			_, err := env.svc.Board.Create(env.ctx, alice.ID, req)
			assert.ErrorIs(t, err, ErrInvalidInput, name)
		}
	})

	t.Run("workspace owned by caller", func(t *testing.T) {
		ws, err := env.svc.Workspace.Create(env.ctx, alice.ID, CreateWorkspaceRequest{Name: "Team"})
		require.NoError(t, err)

		b, err := env.svc.Board.Create(env.ctx, alice.ID, CreateBoardRequest{
			Title:       "In workspace",
			WorkspaceID: &ws.ID,
			Background:  &Background{Type: types.BackgroundColor, Value: "#0079BF"},
		})
		require.NoError(t, err)
		require.NotNil(t, b.WorkspaceID)
		assert.Equal(t, ws.ID, *b.WorkspaceID)
		assert.Equal(t, "#0079BF", b.BackgroundValue)

		bob := env.user(t, "bob")
		_, err = env.svc.Board.Create(env.ctx, bob.ID, CreateBoardRequest{Title: "x", WorkspaceID: &ws.ID})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestBoardService_List(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	first := env.board(t, alice, "First")
	second := env.board(t, alice, "Second")
	shared := env.board(t, bob, "Shared")
	env.addMember(t, bob, shared.ID, alice, types.RoleMember)
	env.board(t, bob, "Bob only")

	_, err := env.svc.Board.Update(env.ctx, alice.ID, first.ID, UpdateBoardRequest{IsClosed: boolPtr(true)})
	require.NoError(t, err)

	all, err := env.svc.Board.List(env.ctx, alice.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, shared.ID, all[0].ID, "newest first")
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, first.ID, all[2].ID)

	closed, err := env.svc.Board.List(env.ctx, alice.ID, boolPtr(true))
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, first.ID, closed[0].ID)

	open, err := env.svc.Board.List(env.ctx, alice.ID, boolPtr(false))
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestBoardService_OnlyCreatorUpdatesAndDeletes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	board := env.board(t, alice, "Sprint 1")
	env.addMember(t, alice, board.ID, bob, types.RoleAdmin)

	_, err := env.svc.Board.Update(env.ctx, bob.ID, board.ID, UpdateBoardRequest{Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, env.svc.Board.Delete(env.ctx, bob.ID, board.ID), ErrNotFound)

	got, err := env.svc.Board.Get(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 1", got.Title)

	updated, err := env.svc.Board.Update(env.ctx, alice.ID, board.ID, UpdateBoardRequest{
		Title:       strPtr("Sprint 2"),
		Description: strPtr("Second iteration"),
		Visibility:  strPtr(types.VisibilityPublic),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sprint 2", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Second iteration", *updated.Description)
	assert.Equal(t, types.VisibilityPublic, updated.Visibility)

	require.NoError(t, env.svc.Board.Delete(env.ctx, alice.ID, board.ID))
	_, err = env.svc.Board.Get(env.ctx, alice.ID, board.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardService_Access(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	olive := env.user(t, "olive")
	stranger := env.user(t, "stranger")

	board := env.board(t, alice, "Private")
	env.addMember(t, alice, board.ID, bob, types.RoleMember)
	env.addMember(t, alice, board.ID, olive, types.RoleObserver)
	col := env.column(t, alice, board.ID, "Todo")

	// a stranger cannot tell a private board exists
	_, err := env.svc.Board.Get(env.ctx, stranger.ID, board.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.svc.Column.ListByBoard(env.ctx, stranger.ID, board.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.svc.Card.Create(env.ctx, stranger.ID, CreateCardRequest{ColumnID: col.ID, Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	// members write, observers only read
	_, err = env.svc.Card.Create(env.ctx, bob.ID, CreateCardRequest{ColumnID: col.ID, Title: "by bob"})
	assert.NoError(t, err)
	_, err = env.svc.Card.ListByColumn(env.ctx, olive.ID, col.ID)
	assert.NoError(t, err)
	_, err = env.svc.Card.Create(env.ctx, olive.ID, CreateCardRequest{ColumnID: col.ID, Title: "by olive"})
	assert.ErrorIs(t, err, ErrForbidden)

	// plain members cannot manage membership
	_, err = env.svc.BoardMember.Add(env.ctx, bob.ID, AddBoardMemberRequest{BoardID: board.ID, UserID: stranger.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	// public boards are readable by anyone but writable only by members
	_, err = env.svc.Board.Update(env.ctx, alice.ID, board.ID, UpdateBoardRequest{Visibility: strPtr(types.VisibilityPublic)})
	require.NoError(t, err)
	_, err = env.svc.Board.View(env.ctx, stranger.ID, board.ID)
	assert.NoError(t, err)
	_, err = env.svc.Column.Create(env.ctx, stranger.ID, board.ID, "Sneaky")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBoardService_WorkspaceOwnerReads(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	owner := env.user(t, "owner")

	ws, err := env.svc.Workspace.Create(env.ctx, owner.ID, CreateWorkspaceRequest{Name: "Company"})
	require.NoError(t, err)
	board, err := env.svc.Board.Create(env.ctx, owner.ID, CreateBoardRequest{
		Title:       "Roadmap",
		WorkspaceID: &ws.ID,
		Visibility:  types.VisibilityWorkspace,
	})
	require.NoError(t, err)

	// alice creates a workspace board in her own workspace; only she reads it
	aliceWS, err := env.svc.Workspace.Create(env.ctx, alice.ID, CreateWorkspaceRequest{Name: "Alice"})
	require.NoError(t, err)
	aliceBoard, err := env.svc.Board.Create(env.ctx, alice.ID, CreateBoardRequest{
		Title:       "Shared in workspace",
		WorkspaceID: &aliceWS.ID,
		Visibility:  types.VisibilityWorkspace,
	})
	require.NoError(t, err)

	_, err = env.svc.Board.Get(env.ctx, owner.ID, board.ID)
	assert.NoError(t, err)
	_, err = env.svc.Board.Get(env.ctx, owner.ID, aliceBoard.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.svc.Board.Get(env.ctx, alice.ID, board.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardService_ToggleStar(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	stranger := env.user(t, "stranger")
	board := env.board(t, alice, "Sprint 1")

	m, err := env.svc.Board.ToggleStar(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.True(t, m.IsStarred)
	m, err = env.svc.Board.ToggleStar(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.False(t, m.IsStarred)

	_, err = env.svc.Board.ToggleStar(env.ctx, stranger.ID, board.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.svc.Board.Update(env.ctx, alice.ID, board.ID, UpdateBoardRequest{Visibility: strPtr(types.VisibilityPublic)})
	require.NoError(t, err)
	_, err = env.svc.Board.ToggleStar(env.ctx, stranger.ID, board.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBoardService_Sprint1Scenario(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	board := env.board(t, alice, "Sprint 1")

	for _, title := range []string{"Todo", "Doing", "Done"} {
		env.column(t, alice, board.ID, title)
	}

	columns, err := env.svc.Column.ListByBoard(env.ctx, alice.ID, board.ID, false)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	for i, want := range []string{"Todo", "Doing", "Done"} {
		assert.Equal(t, want, columns[i].Title)
		assert.Equal(t, i, columns[i].Position)
	}
}

func TestBoardService_View(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	board := env.board(t, alice, "Sprint 1")
	env.addMember(t, alice, board.ID, bob, types.RoleMember)

	todo := env.column(t, alice, board.ID, "Todo")
	archivedCol := env.column(t, alice, board.ID, "Old")
	_, err := env.svc.Column.Update(env.ctx, alice.ID, archivedCol.ID, UpdateColumnRequest{IsArchived: boolPtr(true)})
	require.NoError(t, err)
	env.card(t, alice, archivedCol.ID, "hidden with its column")

	fix := env.card(t, alice, todo.ID, "Fix bug")
	docs := env.card(t, alice, todo.ID, "Write docs")
	gone := env.card(t, alice, todo.ID, "Archived")
	_, err = env.svc.Card.Update(env.ctx, alice.ID, gone.ID, UpdateCardRequest{IsArchived: boolPtr(true)})
	require.NoError(t, err)

	bug, err := env.svc.Label.Create(env.ctx, alice.ID, board.ID, "Bug", "#EB5A46")
	require.NoError(t, err)
	urgent, err := env.svc.Label.Create(env.ctx, alice.ID, board.ID, "Urgent", "#FF9F1A")
	require.NoError(t, err)
	_, err = env.svc.CardLabel.Assign(env.ctx, alice.ID, fix.ID, urgent.ID)
	require.NoError(t, err)
	_, err = env.svc.CardLabel.Assign(env.ctx, alice.ID, fix.ID, bug.ID)
	require.NoError(t, err)
	_, err = env.svc.Card.AddMember(env.ctx, alice.ID, fix.ID, bob.ID)
	require.NoError(t, err)

	view, err := env.svc.Board.View(env.ctx, bob.ID, board.ID)
	require.NoError(t, err)

	assert.Equal(t, board.ID, view.Board.ID)
	require.Len(t, view.Members, 2)
	assert.Equal(t, "bob Tester", view.Members[1].FullName)
	require.Len(t, view.Labels, 2)
	assert.Equal(t, "Bug", view.Labels[0].Name, "board labels sorted by name")

	require.Len(t, view.Columns, 1, "archived columns are left out")
	cards := view.Columns[0].Cards
	require.Len(t, cards, 2, "archived cards are left out")
	assert.Equal(t, fix.ID, cards[0].Card.ID)
	assert.Equal(t, docs.ID, cards[1].Card.ID)

	require.Len(t, cards[0].Labels, 2)
	assert.Equal(t, "Urgent", cards[0].Labels[0].Name, "card labels keep assignment order")
	assert.Equal(t, "Bug", cards[0].Labels[1].Name)
	require.Len(t, cards[0].Members, 1)
	assert.Equal(t, bob.ID, cards[0].Members[0].UserID)
	assert.Empty(t, cards[1].Labels)
	assert.NotNil(t, cards[1].Labels)
}

func TestBoardService_ViewCache(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	board := env.board(t, alice, "Sprint 1")
	todo := env.column(t, alice, board.ID, "Todo")
	key := BoardViewCacheKey(board.ID)

	_, err := env.svc.Board.View(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.True(t, env.cache.has(key))

	view, err := env.svc.Board.View(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, env.cache.hits)
	require.Len(t, view.Columns, 1)
	assert.Equal(t, todo.ID, view.Columns[0].Column.ID)

	env.card(t, alice, todo.ID, "Fix bug")
	assert.False(t, env.cache.has(key), "card creation invalidates the view")

	view, err = env.svc.Board.View(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	require.Len(t, view.Columns[0].Cards, 1)

	// cached views still enforce access
	stranger := env.user(t, "stranger")
	_, err = env.svc.Board.View(env.ctx, stranger.ID, board.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardService_ViewCacheProfileUpdate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	board := env.board(t, alice, "Sprint 1")
	key := BoardViewCacheKey(board.ID)

	_, err := env.svc.Board.View(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	require.True(t, env.cache.has(key))

	_, err = env.svc.User.Update(env.ctx, alice.ID, strPtr("Renamed Person"), nil)
	require.NoError(t, err)
	assert.False(t, env.cache.has(key), "profile changes invalidate member boards")

	view, err := env.svc.Board.View(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	require.Len(t, view.Members, 1)
	assert.Equal(t, "Renamed Person", view.Members[0].FullName)
	assert.Equal(t, "RP", view.Members[0].Initials)
}

func TestBoardService_ViewCacheWorkspaceDelete(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	ws, err := env.svc.Workspace.Create(env.ctx, alice.ID, CreateWorkspaceRequest{Name: "Team"})
	require.NoError(t, err)
	board, err := env.svc.Board.Create(env.ctx, alice.ID, CreateBoardRequest{Title: "Roadmap", WorkspaceID: &ws.ID})
	require.NoError(t, err)
	key := BoardViewCacheKey(board.ID)

	view, err := env.svc.Board.View(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Board.WorkspaceID)

	require.NoError(t, env.svc.Workspace.Delete(env.ctx, alice.ID, ws.ID))
	assert.False(t, env.cache.has(key), "workspace deletion invalidates its boards")

	view, err = env.svc.Board.View(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Board.WorkspaceID)
}

func TestBoardService_ViewCacheMemberRemoval(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	board := env.board(t, alice, "Sprint 1")
	todo := env.column(t, alice, board.ID, "Todo")
	card := env.card(t, alice, todo.ID, "Fix bug")
	membership := env.addMember(t, alice, board.ID, bob, "member")
	_, err := env.svc.Card.AddMember(env.ctx, alice.ID, card.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.svc.Board.View(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.BoardMember.Remove(env.ctx, alice.ID, membership.ID))
	assert.False(t, env.cache.has(BoardViewCacheKey(board.ID)))

	members, err := env.svc.Card.ListMembers(env.ctx, alice.ID, card.ID)
	require.NoError(t, err)
	assert.Empty(t, members, "removed members are unassigned from the board's cards")

	stats, err := env.svc.User.Stats(env.ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCards)

	view, err := env.svc.Board.View(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Columns[0].Cards[0].Members)
}

func TestBoardService_Stats(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	board := env.board(t, alice, "Sprint 1")
	todo := env.column(t, alice, board.ID, "Todo")
	done := env.column(t, alice, board.ID, "Done")

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	late, err := env.svc.Card.Create(env.ctx, alice.ID, CreateCardRequest{ColumnID: todo.ID, Title: "Late", DueDate: &past})
	require.NoError(t, err)
	_, err = env.svc.Card.Create(env.ctx, alice.ID, CreateCardRequest{ColumnID: todo.ID, Title: "Upcoming", DueDate: &future})
	require.NoError(t, err)
	finished := env.card(t, alice, done.ID, "Finished")
	_, err = env.svc.Card.Update(env.ctx, alice.ID, finished.ID, UpdateCardRequest{IsCompleted: boolPtr(true)})
	require.NoError(t, err)
	archived := env.card(t, alice, done.ID, "Archived")
	_, err = env.svc.Card.Update(env.ctx, alice.ID, archived.ID, UpdateCardRequest{IsArchived: boolPtr(true)})
	require.NoError(t, err)
	_, err = env.svc.Label.Create(env.ctx, alice.ID, board.ID, "Bug", "#EB5A46")
	require.NoError(t, err)

	stats, err := env.svc.Board.Stats(env.ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, &BoardStats{
		TotalColumns:   2,
		TotalCards:     3,
		CompletedCards: 1,
		OverdueCards:   1,
		TotalMembers:   1,
		TotalLabels:    1,
	}, stats)
	assert.NotEmpty(t, late.ID)
}
