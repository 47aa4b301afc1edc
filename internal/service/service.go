package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/config"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth        AuthService
	User        UserService
	Workspace   WorkspaceService
	Board       BoardService
	Column      ColumnService
	Card        CardService
	Label       LabelService
	CardLabel   CardLabelService
	BoardMember BoardMemberService
	Checklist   ChecklistService
	Comment     CommentService
	Activity    ActivityService
}

// ServiceDeps contains all dependencies needed to create services.
// Cache and Logger are optional.
type ServiceDeps struct {
	Config *config.Config
	Repos  *repository.Repositories
	Cache  Cache
	Logger *zap.Logger
}

func NewServices(deps *ServiceDeps) *Services {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cache := deps.Cache
	if cache == nil {
		cache = NopCache{}
	}
	ttl := 5 * time.Minute
	var retention time.Duration
	if deps.Config != nil {
		ttl = deps.Config.CacheTTL()
		retention = deps.Config.ActivityRetention()
	}

	repos := deps.Repos
	access := &boardAccess{
		boardRepo:     repos.BoardRepo,
		workspaceRepo: repos.WorkspaceRepo,
		memberRepo:    repos.BoardMemberRepo,
		columnRepo:    repos.ColumnRepo,
		cardRepo:      repos.CardRepo,
		labelRepo:     repos.LabelRepo,
		checklistRepo: repos.ChecklistRepo,
	}
	views := &viewCache{cache: cache, ttl: ttl, log: log}
	activity := &activityLog{repo: repos.ActivityRepo, log: log}

	return &Services{
		Auth:        NewAuthService(deps.Config, repos.UserRepo),
		User:        NewUserService(repos.UserRepo, repos.BoardRepo, repos.BoardMemberRepo, repos.CardRepo, views),
		Workspace:   NewWorkspaceService(repos.WorkspaceRepo, repos.BoardRepo, views),
		Board:       NewBoardService(repos, access, views, activity),
		Column:      NewColumnService(repos.ColumnRepo, access, views, activity),
		Card:        NewCardService(repos, access, views, activity, log),
		Label:       NewLabelService(repos.LabelRepo, access, views),
		CardLabel:   NewCardLabelService(repos.CardLabelRepo, access, views),
		BoardMember: NewBoardMemberService(repos.BoardMemberRepo, repos.UserRepo, access, views, activity),
		Checklist:   NewChecklistService(repos.ChecklistRepo, access),
		Comment:     NewCommentService(repos.CommentRepo, access, activity),
		Activity:    NewActivityService(repos.ActivityRepo, access, retention),
	}
}
