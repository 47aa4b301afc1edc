package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/api/handlers"
	"github.com/Marga-Ghale/ora-boards-backend/internal/config"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository/memory"
	"github.com/Marga-Ghale/ora-boards-backend/internal/service"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: 1, RefreshExpiry: 7, BoardViewCacheTTL: 60}
	log := zap.NewNop()
	services := service.NewServices(&service.ServiceDeps{Config: cfg, Repos: memory.NewRepositories(), Logger: log})

	return &testServer{
		t: t,
		router: NewRouter(RouterDeps{
			Handlers:    handlers.NewHandlers(services, log),
			AuthService: services.Auth,
			Logger:      log,
			CORSOrigins: []string{"http://localhost:5173"},
		}),
	}
}

// do sends body as JSON and decodes the response into out when given.
func (s *testServer) do(method, path, token string, body interface{}, out interface{}) int {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

type authBody struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		ID       string `json:"id"`
		Initials string `json:"initials"`
	} `json:"user"`
}

func (s *testServer) register(username string) authBody {
	s.t.Helper()
	var out authBody
	code := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"fullName": username + " Example",
	}, &out)
	require.Equal(s.t, http.StatusCreated, code)
	return out
}

type idBody struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	var body map[string]interface{}
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", nil, &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	reg := s.register("demo")
	assert.NotEmpty(t, reg.AccessToken)
	assert.Equal(t, "DE", reg.User.Initials)

	var errBody map[string]string
	code := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "other", "email": "demo@example.com", "password": "password123", "fullName": "Other",
	}, &errBody)
	assert.Equal(t, http.StatusConflict, code)
	assert.NotEmpty(t, errBody["error"])

	code = s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "short", "email": "short@example.com", "password": "12345", "fullName": "Short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "demo@example.com", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	var login authBody
	code = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "demo@example.com", "password": "password123"}, &login)
	require.Equal(t, http.StatusOK, code)

	var me struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/auth/me", login.AccessToken, nil, &me))
	assert.Equal(t, "demo", me.Username)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/users/me", login.AccessToken, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/users/me", "", nil, nil))

	var refreshed map[string]string
	code = s.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": login.RefreshToken}, &refreshed)
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, refreshed["accessToken"])

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodPost, "/api/auth/logout", "", gin.H{"refreshToken": login.RefreshToken}, nil))
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": login.RefreshToken}, nil))

	// the registration token is a separate device session
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": reg.RefreshToken}, nil))
}

func TestBoardScenario(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice").AccessToken
	bob := s.register("bob").AccessToken

	var board idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/boards", alice, gin.H{"title": "Sprint 1"}, &board))

	var cols []idBody
	for i, title := range []string{"Todo", "Doing", "Done"} {
		var col idBody
		require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/columns", alice, gin.H{"boardId": board.ID, "title": title}, &col))
		assert.Equal(t, i, col.Position)
		cols = append(cols, col)
	}

	var listed []struct {
		Title    string `json:"title"`
		Position int    `json:"position"`
	}
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/columns/board/"+board.ID, alice, nil, &listed))
	require.Len(t, listed, 3)
	assert.Equal(t, "Todo", listed[0].Title)
	assert.Equal(t, "Doing", listed[1].Title)
	assert.Equal(t, "Done", listed[2].Title)

	var fix, docs idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/cards", alice, gin.H{"columnId": cols[0].ID, "title": "Fix bug"}, &fix))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/cards", alice, gin.H{"columnId": cols[0].ID, "title": "Write docs"}, &docs))
	assert.Equal(t, 0, fix.Position)
	assert.Equal(t, 1, docs.Position)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/cards/"+fix.ID, alice, nil, nil))
	var remaining []idBody
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/cards/column/"+cols[0].ID, alice, nil, &remaining))
	require.Len(t, remaining, 1)
	assert.Equal(t, 1, remaining[0].Position)

	// another user cannot see, change or delete alice's board
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/boards/"+board.ID, bob, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPut, "/api/boards/"+board.ID, bob, gin.H{"title": "Mine"}, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/boards/"+board.ID, bob, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/columns", bob, gin.H{"boardId": board.ID, "title": "x"}, nil))

	var view struct {
		Title   string `json:"title"`
		Columns []struct {
			Title string `json:"title"`
			Cards []struct {
				Title  string        `json:"title"`
				Labels []interface{} `json:"labels"`
			} `json:"cards"`
		} `json:"columns"`
		Members []struct {
			Role string `json:"role"`
		} `json:"members"`
	}
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/boards/"+board.ID+"/view", alice, nil, &view))
	assert.Equal(t, "Sprint 1", view.Title)
	require.Len(t, view.Columns, 3)
	require.Len(t, view.Columns[0].Cards, 1)
	assert.Equal(t, "Write docs", view.Columns[0].Cards[0].Title)
	require.Len(t, view.Members, 1)
	assert.Equal(t, "owner", view.Members[0].Role)

	var stats map[string]int
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/boards/"+board.ID+"/stats", alice, nil, &stats))
	assert.Equal(t, 3, stats["totalColumns"])
	assert.Equal(t, 1, stats["totalCards"])

	var star map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/boards/"+board.ID+"/star", alice, nil, &star))
	assert.Equal(t, true, star["isStarred"])

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/boards/"+board.ID, alice, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/cards/"+docs.ID, alice, nil, nil))
}

func TestLabelScenario(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice").AccessToken

	var board, col, card idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/boards", alice, gin.H{"title": "B"}, &board))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/columns", alice, gin.H{"boardId": board.ID, "title": "Todo"}, &col))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/cards", alice, gin.H{"columnId": col.ID, "title": "C"}, &card))

	var label idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/labels", alice, gin.H{"boardId": board.ID, "name": "Bug", "color": "#EB5A46"}, &label))
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/labels", alice, gin.H{"boardId": board.ID, "name": "Bug", "color": "#EB5A46"}, nil))
	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/labels", alice, gin.H{"boardId": board.ID, "name": "Lower", "color": "#eb5a46"}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/labels", alice, gin.H{"boardId": board.ID, "name": "Bad", "color": "red"}, nil))

	assign := gin.H{"cardId": card.ID, "labelId": label.ID}
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/card-labels", alice, assign, nil))
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/card-labels", alice, assign, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/card-labels", alice, gin.H{"cardId": card.ID, "labelId": "missing"}, nil))

	var labels []map[string]string
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/card-labels/card/"+card.ID, alice, nil, &labels))
	require.Len(t, labels, 1)
	assert.Equal(t, map[string]string{"id": label.ID, "name": "Bug", "color": "#EB5A46"}, labels[0])

	unassign := "/api/card-labels/card/" + card.ID + "/label/" + label.ID
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, unassign, alice, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, unassign, alice, nil, nil))

	labels = nil
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/card-labels/card/"+card.ID, alice, nil, &labels))
	assert.Empty(t, labels)
}

func TestMembersAndChecklists(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	bob := s.register("bob")

	var board, col, card idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/boards", alice.AccessToken, gin.H{"title": "B"}, &board))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/columns", alice.AccessToken, gin.H{"boardId": board.ID, "title": "Todo"}, &col))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/cards", alice.AccessToken, gin.H{"columnId": col.ID, "title": "C"}, &card))

	var member struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/board-members", alice.AccessToken,
		gin.H{"boardId": board.ID, "userId": bob.User.ID, "role": "observer"}, &member))
	assert.Equal(t, "observer", member.Role)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/board-members", alice.AccessToken,
		gin.H{"boardId": board.ID, "userId": bob.User.ID}, nil))

	// observers read but do not write
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/cards/"+card.ID, bob.AccessToken, nil, nil))
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/checklists", bob.AccessToken, gin.H{"cardId": card.ID, "text": "x"}, nil))

	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/board-members/"+member.ID, alice.AccessToken, gin.H{"role": "member"}, nil))

	var item idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/checklists", bob.AccessToken, gin.H{"cardId": card.ID, "text": "Write tests"}, &item))
	assert.Equal(t, 0, item.Position)
	var item2 idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/checklists", bob.AccessToken, gin.H{"cardId": card.ID, "text": "Ship"}, &item2))
	assert.Equal(t, 1, item2.Position)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPut, "/api/checklists/"+item.ID, bob.AccessToken, gin.H{"position": 1}, nil))

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/cards/"+card.ID+"/members", alice.AccessToken, gin.H{"userId": bob.User.ID}, nil))
	var cardMembers []map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/cards/"+card.ID+"/members", bob.AccessToken, nil, &cardMembers))
	require.Len(t, cardMembers, 1)
	assert.Equal(t, bob.User.ID, cardMembers[0]["userId"])

	var stats map[string]int
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/users/me/stats", bob.AccessToken, nil, &stats))
	assert.Equal(t, 1, stats["totalBoards"])
	assert.Equal(t, 1, stats["totalCards"])

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/cards/"+card.ID+"/members/"+bob.User.ID, alice.AccessToken, nil, nil))
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/board-members/"+member.ID, bob.AccessToken, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/boards/"+board.ID, bob.AccessToken, nil, nil))
}

func TestCommentsAndActivity(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	bob := s.register("bob")

	var board, col, card idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/boards", alice.AccessToken, gin.H{"title": "B"}, &board))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/columns", alice.AccessToken, gin.H{"boardId": board.ID, "title": "Todo"}, &col))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/cards", alice.AccessToken, gin.H{"columnId": col.ID, "title": "C"}, &card))

	var comment struct {
		ID       string `json:"id"`
		Content  string `json:"content"`
		IsEdited bool   `json:"isEdited"`
	}
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/comments", alice.AccessToken, gin.H{"cardId": card.ID, "content": "Ready for review"}, &comment))
	assert.Equal(t, "Ready for review", comment.Content)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/comments", alice.AccessToken, gin.H{"cardId": card.ID}, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/comments", bob.AccessToken, gin.H{"cardId": card.ID, "content": "hi"}, nil))

	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/comments/"+comment.ID, alice.AccessToken, gin.H{"content": "Reviewed"}, &comment))
	assert.True(t, comment.IsEdited)

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/board-members", alice.AccessToken,
		gin.H{"boardId": board.ID, "userId": bob.User.ID, "role": "member"}, nil))
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPut, "/api/comments/"+comment.ID, bob.AccessToken, gin.H{"content": "mine now"}, nil))
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/comments/"+comment.ID, bob.AccessToken, nil, nil))

	var comments []map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/comments/card/"+card.ID, bob.AccessToken, nil, &comments))
	require.Len(t, comments, 1)
	user, _ := comments[0]["user"].(map[string]interface{})
	assert.Equal(t, "alice Example", user["fullName"])

	var details struct {
		ID         string                   `json:"id"`
		Comments   []map[string]interface{} `json:"comments"`
		Checklist  []interface{}            `json:"checklist"`
		Labels     []interface{}            `json:"labels"`
		Activities []map[string]interface{} `json:"activities"`
	}
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/cards/"+card.ID+"/details", bob.AccessToken, nil, &details))
	assert.Equal(t, card.ID, details.ID)
	assert.Len(t, details.Comments, 1)
	assert.NotNil(t, details.Checklist)
	assert.NotNil(t, details.Labels)
	require.Len(t, details.Activities, 2)
	assert.Equal(t, "add_comment", details.Activities[0]["actionType"])

	var feed []map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/boards/"+board.ID+"/activity?limit=2", alice.AccessToken, nil, &feed))
	require.Len(t, feed, 2)
	assert.Equal(t, "add_board_member", feed[0]["actionType"])
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/boards/"+board.ID+"/activity?limit=abc", alice.AccessToken, nil, nil))

	feed = nil
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/cards/"+card.ID+"/activity", alice.AccessToken, nil, &feed))
	assert.Len(t, feed, 2)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/comments/"+comment.ID, alice.AccessToken, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/comments/"+comment.ID, alice.AccessToken, nil, nil))
}

func TestAssignLabelFromHiddenBoard(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice").AccessToken
	mallory := s.register("mallory").AccessToken

	var private, label idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/boards", alice, gin.H{"title": "Private"}, &private))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/labels", alice, gin.H{"boardId": private.ID, "name": "Secret", "color": "#000000"}, &label))

	var board, col, card idBody
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/boards", mallory, gin.H{"title": "Mine"}, &board))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/columns", mallory, gin.H{"boardId": board.ID, "title": "Todo"}, &col))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/cards", mallory, gin.H{"columnId": col.ID, "title": "C"}, &card))

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/card-labels", mallory, gin.H{"cardId": card.ID, "labelId": label.ID}, nil))
}

func TestBindErrors(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice").AccessToken

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/boards", alice, gin.H{}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/cards", alice, gin.H{"title": "no column"}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/boards?closed=maybe", alice, nil, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/workspaces", alice, gin.H{"name": "x", "type": "galaxy"}, nil))
}
