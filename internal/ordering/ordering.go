// Package ordering holds the position policy shared by columns within a
// board, cards within a column and checklist items within a card.
//
// Positions are zero-based integers, unique per parent. New items append at
// max(position)+1. Nothing is renumbered on delete, so gaps are normal.
package ordering

import (
	"context"
	"errors"
	"sort"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
)

// DefaultAttempts bounds AppendWithRetry.
const DefaultAttempts = 3

// Positioned is anything ordered by an integer position.
type Positioned interface {
	GetPosition() int
}

// NextPosition returns max(positions)+1, or 0 when there are none.
func NextPosition(positions []int) int {
	next := 0
	for _, p := range positions {
		if p+1 > next {
			next = p + 1
		}
	}
	return next
}

// NextPositionOf is NextPosition over a slice of positioned items.
func NextPositionOf[T Positioned](items []T) int {
	positions := make([]int, len(items))
	for i, item := range items {
		positions[i] = item.GetPosition()
	}
	return NextPosition(positions)
}

// SortByPosition sorts ascending by position. Ties keep their input order.
func SortByPosition[T Positioned](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].GetPosition() < items[j].GetPosition()
	})
}

// AppendWithRetry runs an atomic append and retries it when a concurrent
// append claimed the same position first.
func AppendWithRetry(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		err = fn(ctx)
		if !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
	}
	return err
}
