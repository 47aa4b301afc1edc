package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardLabelCreate_Duplicate(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewCardLabelRepository(db)
	now := time.Now()

	mock.ExpectQuery(q(`INSERT INTO card_labels (card_id, label_id)`)).
		WithArgs("card-1", "label-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("cl-1", now))
	mock.ExpectQuery(q(`INSERT INTO card_labels (card_id, label_id)`)).
		WithArgs("card-1", "label-1").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "card_labels_card_label_key"})

	require.NoError(t, repo.Create(context.Background(), &CardLabel{CardID: "card-1", LabelID: "label-1"}))
	err := repo.Create(context.Background(), &CardLabel{CardID: "card-1", LabelID: "label-1"})
	assert.ErrorIs(t, err, ErrDuplicate)
	expectationsMet(t, mock)
}

func TestCardLabelDelete_Missing(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewCardLabelRepository(db)

	mock.ExpectExec(q(`DELETE FROM card_labels WHERE card_id = $1 AND label_id = $2`)).
		WithArgs("card-1", "label-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "card-1", "label-9"), ErrNotFound)
	expectationsMet(t, mock)
}

func TestCardLabelFindLabelsByCardID(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewCardLabelRepository(db)
	now := time.Now()

	mock.ExpectQuery(q(`ORDER BY cl.created_at ASC`)).
		WithArgs("card-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_id", "name", "color", "created_at", "updated_at"}).
			AddRow("label-1", "board-1", "Bug", "#EB5A46", now, now))

	labels, err := repo.FindLabelsByCardID(context.Background(), "card-1")
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "Bug", labels[0].Name)
	assert.Equal(t, "#EB5A46", labels[0].Color)
	expectationsMet(t, mock)
}

func TestCardLabelFindByCardIDs(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewCardLabelRepository(db)

	empty, err := repo.FindByCardIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	mock.ExpectQuery(q(`WHERE cl.card_id = ANY($1)`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"card_id", "label_id", "name", "color"}).
			AddRow("card-1", "label-1", "Bug", "#EB5A46").
			AddRow("card-2", "label-1", "Bug", "#EB5A46"))

	details, err := repo.FindByCardIDs(context.Background(), []string{"card-1", "card-2"})
	require.NoError(t, err)
	assert.Len(t, details, 2)
	expectationsMet(t, mock)
}
