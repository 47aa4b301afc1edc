package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardAppend_TakesBoardFromColumn(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewCardRepository(db)
	now := time.Now()

	mock.ExpectQuery(q(`FROM board_columns c WHERE c.id = $1`)).
		WithArgs("col-1", "Fix bug", nil, nil, nil, nil, "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_id", "position", "is_completed", "is_archived", "created_at", "updated_at"}).
			AddRow("card-1", "board-1", 0, false, false, now, now))

	card := &Card{ColumnID: "col-1", Title: "Fix bug", CreatedBy: "user-1"}
	require.NoError(t, repo.Append(context.Background(), card))
	assert.Equal(t, "board-1", card.BoardID)
	assert.Equal(t, 0, card.Position)
	expectationsMet(t, mock)
}

func TestCardAppend_MissingColumn(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewCardRepository(db)

	mock.ExpectQuery(q(`INSERT INTO cards`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_id", "position", "is_completed", "is_archived", "created_at", "updated_at"}))

	err := repo.Append(context.Background(), &Card{ColumnID: "gone", Title: "x", CreatedBy: "u"})
	assert.ErrorIs(t, err, ErrNotFound)
	expectationsMet(t, mock)
}

func TestCardUpdate_OccupiedPosition(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewCardRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q(`UPDATE cards SET`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "cards_column_position_key"})
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &Card{ID: "card-2", ColumnID: "col-1", Title: "x", Position: 0})
	assert.ErrorIs(t, err, ErrDuplicate)
	expectationsMet(t, mock)
}

func TestCardMoveToColumn(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewCardRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(q(`position = COALESCE((SELECT MAX(position) + 1 FROM cards WHERE column_id = $2), 0)`)).
		WithArgs("card-1", "col-2", "Fix bug", nil, nil, false, false, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"board_id", "position", "updated_at"}).
			AddRow("board-2", 4, now))
	mock.ExpectExec(q(`DELETE FROM card_labels cl`)).
		WithArgs("card-1", "board-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`DELETE FROM card_members cm`)).
		WithArgs("card-1", "board-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	card := &Card{ID: "card-1", ColumnID: "col-2", BoardID: "board-1", Title: "Fix bug"}
	require.NoError(t, repo.MoveToColumn(context.Background(), card))
	assert.Equal(t, "board-2", card.BoardID)
	assert.Equal(t, 4, card.Position)
	expectationsMet(t, mock)
}

func TestCardUpdate_SameBoardSkipsCleanup(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewCardRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(q(`UPDATE cards SET`)).
		WithArgs("card-1", "col-1", "Renamed", nil, 3, nil, true, false, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"board_id", "updated_at"}).AddRow("board-1", now))
	mock.ExpectCommit()

	card := &Card{ID: "card-1", ColumnID: "col-1", BoardID: "board-1", Title: "Renamed", Position: 3, IsCompleted: true}
	require.NoError(t, repo.Update(context.Background(), card))
	expectationsMet(t, mock)
}

func TestCardMoveToColumn_CleanupFailureRollsBack(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewCardRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(q(`UPDATE cards SET`)).
		WillReturnRows(sqlmock.NewRows([]string{"board_id", "position", "updated_at"}).AddRow("board-2", 0, now))
	mock.ExpectExec(q(`DELETE FROM card_labels cl`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	card := &Card{ID: "card-1", ColumnID: "col-2", BoardID: "board-1", Title: "Fix bug"}
	assert.Error(t, repo.MoveToColumn(context.Background(), card))
	expectationsMet(t, mock)
}

func TestCardFindByColumnID_Error(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewCardRepository(db)

	mock.ExpectQuery(q(`FROM cards WHERE column_id = $1`)).
		WithArgs("col-1").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByColumnID(context.Background(), "col-1")
	assert.Error(t, err)
	expectationsMet(t, mock)
}
