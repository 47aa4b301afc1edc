// Package api wires handlers and middleware into the gin engine.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/api/handlers"
	"github.com/Marga-Ghale/ora-boards-backend/internal/api/middleware"
	"github.com/Marga-Ghale/ora-boards-backend/internal/service"
)

type RouterDeps struct {
	Handlers    *handlers.Handlers
	AuthService service.AuthService
	Logger      *zap.Logger
	CORSOrigins []string
	// Health reports extra fields for GET /health. Optional.
	Health func() gin.H
}

func NewRouter(deps RouterDeps) *gin.Engine {
	h := deps.Handlers
	log := deps.Logger

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		body := gin.H{"status": "healthy", "timestamp": time.Now()}
		if deps.Health != nil {
			for k, v := range deps.Health() {
				body[k] = v
			}
		}
		c.JSON(http.StatusOK, body)
	})

	api := r.Group("/api")
	{
		// ============================================
		// Public routes
		// ============================================
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/logout", h.Auth.Logout)
		}

		// ============================================
		// Protected routes
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.AuthService, log))
		{
			protected.GET("/auth/me", h.Auth.Me)

			users := protected.Group("/users")
			{
				users.GET("/me", h.User.GetCurrentUser)
				users.PUT("/me", h.User.UpdateCurrentUser)
				users.GET("/me/stats", h.User.GetStats)
			}

			workspaces := protected.Group("/workspaces")
			{
				workspaces.GET("", h.Workspace.List)
				workspaces.POST("", h.Workspace.Create)
				workspaces.GET("/:id", h.Workspace.Get)
				workspaces.PUT("/:id", h.Workspace.Update)
				workspaces.DELETE("/:id", h.Workspace.Delete)
			}

			boards := protected.Group("/boards")
			{
				boards.GET("", h.Board.List)
				boards.POST("", h.Board.Create)
				boards.GET("/:id", h.Board.Get)
				boards.PUT("/:id", h.Board.Update)
				boards.DELETE("/:id", h.Board.Delete)
				boards.POST("/:id/star", h.Board.ToggleStar)
				boards.GET("/:id/view", h.Board.View)
				boards.GET("/:id/stats", h.Board.Stats)
				boards.GET("/:id/activity", h.Activity.ListByBoard)
			}

			columns := protected.Group("/columns")
			{
				columns.GET("/board/:boardId", h.Column.ListByBoard)
				columns.POST("", h.Column.Create)
				columns.PUT("/:id", h.Column.Update)
				columns.DELETE("/:id", h.Column.Delete)
			}

			cards := protected.Group("/cards")
			{
				cards.GET("/column/:columnId", h.Card.ListByColumn)
				cards.POST("", h.Card.Create)
				cards.GET("/:id", h.Card.Get)
				cards.GET("/:id/details", h.Card.Details)
				cards.GET("/:id/activity", h.Activity.ListByCard)
				cards.PUT("/:id", h.Card.Update)
				cards.DELETE("/:id", h.Card.Delete)
				cards.GET("/:id/members", h.Card.ListMembers)
				cards.POST("/:id/members", h.Card.AddMember)
				cards.DELETE("/:id/members/:userId", h.Card.RemoveMember)
			}

			labels := protected.Group("/labels")
			{
				labels.GET("/board/:boardId", h.Label.ListByBoard)
				labels.POST("", h.Label.Create)
				labels.PUT("/:id", h.Label.Update)
				labels.DELETE("/:id", h.Label.Delete)
			}

			cardLabels := protected.Group("/card-labels")
			{
				cardLabels.GET("/card/:cardId", h.CardLabel.ListByCard)
				cardLabels.POST("", h.CardLabel.Assign)
				cardLabels.DELETE("/card/:cardId/label/:labelId", h.CardLabel.Unassign)
			}

			members := protected.Group("/board-members")
			{
				members.GET("/board/:boardId", h.BoardMember.ListByBoard)
				members.POST("", h.BoardMember.Add)
				members.PUT("/:id", h.BoardMember.Update)
				members.DELETE("/:id", h.BoardMember.Remove)
			}

			checklists := protected.Group("/checklists")
			{
				checklists.GET("/card/:cardId", h.Checklist.ListByCard)
				checklists.POST("", h.Checklist.Create)
				checklists.PUT("/:id", h.Checklist.Update)
				checklists.DELETE("/:id", h.Checklist.Delete)
			}

			comments := protected.Group("/comments")
			{
				comments.GET("/card/:cardId", h.Comment.ListByCard)
				comments.POST("", h.Comment.Create)
				comments.PUT("/:id", h.Comment.Update)
				comments.DELETE("/:id", h.Comment.Delete)
			}
		}
	}

	return r
}
