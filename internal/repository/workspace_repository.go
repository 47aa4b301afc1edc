package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Workspace struct {
	ID          string
	Name        string
	Description *string
	Type        string // "personal", "team", "enterprise"
	Visibility  string // "private", "public"
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *Workspace) error
	FindByID(ctx context.Context, id string) (*Workspace, error)
	FindByOwner(ctx context.Context, userID string) ([]*Workspace, error)
	Update(ctx context.Context, workspace *Workspace) error
	Delete(ctx context.Context, id string) error
}

type pgWorkspaceRepository struct {
	pool *pgxpool.Pool
}

func NewWorkspaceRepository(pool *pgxpool.Pool) WorkspaceRepository {
	return &pgWorkspaceRepository{pool: pool}
}

func (r *pgWorkspaceRepository) Create(ctx context.Context, workspace *Workspace) error {
	query := `
		INSERT INTO workspaces (name, description, type, visibility, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		workspace.Name, workspace.Description, workspace.Type, workspace.Visibility, workspace.CreatedBy,
	).Scan(&workspace.ID, &workspace.CreatedAt, &workspace.UpdatedAt)
	return translateError(err)
}

func (r *pgWorkspaceRepository) FindByID(ctx context.Context, id string) (*Workspace, error) {
	query := `
		SELECT id, name, description, type, visibility, created_by, created_at, updated_at
		FROM workspaces WHERE id = $1
	`
	ws := &Workspace{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ws.ID, &ws.Name, &ws.Description, &ws.Type, &ws.Visibility,
		&ws.CreatedBy, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ws, nil
}

func (r *pgWorkspaceRepository) FindByOwner(ctx context.Context, userID string) ([]*Workspace, error) {
	query := `
		SELECT id, name, description, type, visibility, created_by, created_at, updated_at
		FROM workspaces WHERE created_by = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []*Workspace
	for rows.Next() {
		ws := &Workspace{}
		if err := rows.Scan(
			&ws.ID, &ws.Name, &ws.Description, &ws.Type, &ws.Visibility,
			&ws.CreatedBy, &ws.CreatedAt, &ws.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, ws)
	}
	return workspaces, rows.Err()
}

func (r *pgWorkspaceRepository) Update(ctx context.Context, workspace *Workspace) error {
	query := `
		UPDATE workspaces SET name = $2, description = $3, type = $4, visibility = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		workspace.ID, workspace.Name, workspace.Description, workspace.Type, workspace.Visibility,
	).Scan(&workspace.UpdatedAt)
	return translateError(err)
}

// Delete removes the workspace; boards keep existing with workspace_id set to NULL.
func (r *pgWorkspaceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
