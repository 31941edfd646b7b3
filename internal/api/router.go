package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/content-publishing-api/internal/auth"
	"github.com/content-publishing-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// callerIDKey is the gin context key holding the authenticated user id
const callerIDKey = "caller_id"

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, guard *auth.Guard, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, log)
	articleHandler := NewArticleHandler(services, log)
	userHandler := NewUserHandler(services, log)
	categoryHandler := NewCategoryHandler(services, log)

	requireAuth := authMiddleware(guard, log)

	// Health check
	router.GET("/health", healthCheck)

	// API v1
	v1 := router.Group("/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.GET("/:id", articleHandler.Get)
			articles.POST("", requireAuth, articleHandler.Create)
			articles.PUT("/:id", requireAuth, articleHandler.Update)
			articles.DELETE("/:id", requireAuth, articleHandler.Delete)
			articles.POST("/:id/like", requireAuth, articleHandler.ToggleLike)
			articles.POST("/:id/comments", requireAuth, articleHandler.AddComment)
		}

		users := v1.Group("/users")
		{
			users.GET("/:id", userHandler.Profile)
			users.POST("/:id/follow", requireAuth, userHandler.ToggleFollow)
			users.GET("/:id/bookmarks", requireAuth, userHandler.Bookmarks)
			users.POST("/bookmark/:articleId", requireAuth, userHandler.ToggleBookmark)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:name/articles", categoryHandler.Articles)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "content-publishing-api",
	})
}

// authMiddleware resolves the bearer token and stores the caller id in
// the request context. Every failure aborts with the same 401 body, so
// responses cannot leak whether a token was malformed, expired or for a
// deleted user.
func authMiddleware(guard *auth.Guard, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

		callerID, err := guard.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondError(c, log, err)
			c.Abort()
			return
		}

		c.Set(callerIDKey, callerID)
		c.Next()
	}
}

// callerID returns the authenticated user id set by authMiddleware
func callerID(c *gin.Context) string {
	return c.GetString(callerIDKey)
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
