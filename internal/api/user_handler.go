package api

import (
	"net/http"

	"github.com/content-publishing-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler handles user profile and relationship endpoints
type UserHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

// Profile handles GET /v1/users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.services.User.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ToggleFollow handles POST /v1/users/:id/follow
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	result, err := h.services.Relationship.ToggleFollow(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Bookmarks handles GET /v1/users/:id/bookmarks
func (h *UserHandler) Bookmarks(c *gin.Context) {
	articles, err := h.services.User.Bookmarks(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// ToggleBookmark handles POST /v1/users/bookmark/:articleId
func (h *UserHandler) ToggleBookmark(c *gin.Context) {
	result, err := h.services.Relationship.ToggleBookmark(c.Request.Context(), callerID(c), c.Param("articleId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
