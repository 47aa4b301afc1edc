package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/config"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository/memory"
	"github.com/Marga-Ghale/ora-boards-backend/internal/service"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: 1, RefreshExpiry: 7}
	auth := service.NewAuthService(cfg, memory.NewRepositories().UserRepo)
	user, access, _, err := auth.Register(context.Background(), service.RegisterRequest{
		Username: "demo",
		Email:    "demo@example.com",
		Password: "password123",
		FullName: "Demo User",
	})
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(auth, zap.NewNop()))
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := RequireUserID(c)
		if !ok {
			return
		}
		c.String(http.StatusOK, id)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + access, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, user.ID, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}
