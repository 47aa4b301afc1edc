package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	// Account repositories (pgxpool)
	UserRepo      UserRepository
	WorkspaceRepo WorkspaceRepository

	// Board repositories (sqlx)
	BoardRepo       BoardRepository
	BoardMemberRepo BoardMemberRepository
	ColumnRepo      ColumnRepository
	CardRepo        CardRepository
	CardMemberRepo  CardMemberRepository
	LabelRepo       LabelRepository
	CardLabelRepo   CardLabelRepository
	ChecklistRepo   ChecklistRepository
	CommentRepo     CommentRepository
	ActivityRepo    ActivityRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sqlx.DB) *Repositories {
	return &Repositories{
		UserRepo:      NewUserRepository(pool),
		WorkspaceRepo: NewWorkspaceRepository(pool),

		BoardRepo:       NewBoardRepository(db),
		BoardMemberRepo: NewBoardMemberRepository(db),
		ColumnRepo:      NewColumnRepository(db),
		CardRepo:        NewCardRepository(db),
		CardMemberRepo:  NewCardMemberRepository(db),
		LabelRepo:       NewLabelRepository(db),
		CardLabelRepo:   NewCardLabelRepository(db),
		ChecklistRepo:   NewChecklistRepository(db),
		CommentRepo:     NewCommentRepository(db),
		ActivityRepo:    NewActivityRepository(db),
	}
}
