// internal/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/service"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
)

type demoCard struct {
	column      int
	title       string
	description string
	dueIn       time.Duration
	labels      []int
	checklist   []string
	comment     string
}

// SeedData creates a demo account with one populated board. It does nothing
// when the demo account already exists.
func SeedData(ctx context.Context, services *service.Services, repos *repository.Repositories, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("seed")

	existing, err := repos.UserRepo.FindByEmail(ctx, DemoEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Info("demo data already exists, skipping")
		return nil
	}

	log.Info("creating demo data")

	// ============================================
	// USER
	// ============================================
	user, _, _, err := services.Auth.Register(ctx, service.RegisterRequest{
		Username: "demo",
		Email:    DemoEmail,
		Password: DemoPassword,
		FullName: "Demo User",
	})
	if err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}

	// ============================================
	// WORKSPACE + BOARD
	// ============================================
	desc := "Demo workspace"
	ws, err := services.Workspace.Create(ctx, user.ID, service.CreateWorkspaceRequest{
		Name:        "Demo Team",
		Description: &desc,
	})
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}

	boardDesc := "Everything planned for the first sprint"
	board, err := services.Board.Create(ctx, user.ID, service.CreateBoardRequest{
		Title:       "Sprint 1",
		Description: &boardDesc,
		Background:  &service.Background{Type: types.BackgroundColor, Value: "#0079BF"},
		WorkspaceID: &ws.ID,
	})
	if err != nil {
		return fmt.Errorf("create board: %w", err)
	}

	var columns []*repository.Column
	for _, title := range []string{"Todo", "Doing", "Done"} {
		col, err := services.Column.Create(ctx, user.ID, board.ID, title)
		if err != nil {
			return fmt.Errorf("create column %s: %w", title, err)
		}
		columns = append(columns, col)
	}

	var labels []*repository.Label
	for _, l := range []struct{ name, color string }{
		{"Bug", "#EB5A46"},
		{"Feature", "#61BD4F"},
	} {
		label, err := services.Label.Create(ctx, user.ID, board.ID, l.name, l.color)
		if err != nil {
			return fmt.Errorf("create label %s: %w", l.name, err)
		}
		labels = append(labels, label)
	}

	// ============================================
	// CARDS
	// ============================================
	cards := []demoCard{
		{column: 0, title: "Fix login redirect", description: "Users land on a blank page after login", dueIn: 48 * time.Hour, labels: []int{0}},
		{column: 0, title: "Write API docs", checklist: []string{"Auth endpoints", "Board endpoints"}},
		{column: 1, title: "Board view caching", labels: []int{1}, checklist: []string{"Redis client", "Invalidate on write"}, comment: "Keys expire after five minutes for now"},
		{column: 2, title: "Project setup", labels: []int{1}},
	}

	for _, dc := range cards {
		req := service.CreateCardRequest{ColumnID: columns[dc.column].ID, Title: dc.title}
		if dc.description != "" {
			d := dc.description
			req.Description = &d
		}
		if dc.dueIn > 0 {
			due := time.Now().Add(dc.dueIn).UTC()
			req.DueDate = &due
		}

		card, err := services.Card.Create(ctx, user.ID, req)
		if err != nil {
			return fmt.Errorf("create card %s: %w", dc.title, err)
		}
		for _, i := range dc.labels {
			if _, err := services.CardLabel.Assign(ctx, user.ID, card.ID, labels[i].ID); err != nil {
				return fmt.Errorf("label card %s: %w", dc.title, err)
			}
		}
		for _, text := range dc.checklist {
			if _, err := services.Checklist.Create(ctx, user.ID, card.ID, text); err != nil {
				return fmt.Errorf("checklist for %s: %w", dc.title, err)
			}
		}
		if dc.comment != "" {
			if _, err := services.Comment.Create(ctx, user.ID, card.ID, dc.comment); err != nil {
				return fmt.Errorf("comment on %s: %w", dc.title, err)
			}
		}
		if dc.column == 2 {
			done := true
			if _, err := services.Card.Update(ctx, user.ID, card.ID, service.UpdateCardRequest{IsCompleted: &done}); err != nil {
				return fmt.Errorf("complete card %s: %w", dc.title, err)
			}
		}
	}

	log.Info("demo data created",
		zap.String("email", DemoEmail),
		zap.String("boardId", board.ID),
		zap.Int("cards", len(cards)),
	)
	return nil
}
