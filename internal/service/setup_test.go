package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/ora-boards-backend/internal/config"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository/memory"
)

// mapCache is an in-process Cache that records how it is used.
type mapCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	hits        int
	invalidated []string
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) GetCache(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return errors.New("cache miss")
	}
	c.hits++
	return json.Unmarshal(raw, dest)
}

func (c *mapCache) SetCache(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *mapCache) InvalidateCache(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, pattern)
	c.invalidated = append(c.invalidated, pattern)
	return nil
}

func (c *mapCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:       "test",
		StorageDriver:     config.StorageMemory,
		JWTSecret:         "test-secret",
		JWTExpiry:         1,
		RefreshExpiry:     7,
		BoardViewCacheTTL: 300,
	}
}

type testEnv struct {
	ctx   context.Context
	repos *repository.Repositories
	cache *mapCache
	svc   *Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repos := memory.NewRepositories()
	cache := newMapCache()
	return &testEnv{
		ctx:   context.Background(),
		repos: repos,
		cache: cache,
		svc:   NewServices(&ServiceDeps{Config: testConfig(), Repos: repos, Cache: cache}),
	}
}

// user creates an account straight through the repository; bcrypt is not
// needed outside the auth tests.
func (e *testEnv) user(t *testing.T, username string) *repository.User {
	t.Helper()
	u := &repository.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FullName:     username + " Tester",
		Initials:     "XT",
	}
	require.NoError(t, e.repos.UserRepo.Create(e.ctx, u))
	return u
}

func (e *testEnv) board(t *testing.T, owner *repository.User, title string) *repository.Board {
	t.Helper()
	b, err := e.svc.Board.Create(e.ctx, owner.ID, CreateBoardRequest{Title: title})
	require.NoError(t, err)
	return b
}

func (e *testEnv) column(t *testing.T, owner *repository.User, boardID, title string) *repository.Column {
	t.Helper()
	c, err := e.svc.Column.Create(e.ctx, owner.ID, boardID, title)
	require.NoError(t, err)
	return c
}

func (e *testEnv) card(t *testing.T, owner *repository.User, columnID, title string) *repository.Card {
	t.Helper()
	c, err := e.svc.Card.Create(e.ctx, owner.ID, CreateCardRequest{ColumnID: columnID, Title: title})
	require.NoError(t, err)
	return c
}

func (e *testEnv) addMember(t *testing.T, owner *repository.User, boardID string, user *repository.User, role string) *repository.BoardMember {
	t.Helper()
	m, err := e.svc.BoardMember.Add(e.ctx, owner.ID, AddBoardMemberRequest{BoardID: boardID, UserID: user.ID, Role: role})
	require.NoError(t, err)
	return m
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
