package service

import (
	"context"
	"strings"
	"time"

	"github.com/content-publishing-api/internal/apperrors"
	"github.com/content-publishing-api/internal/auth"
	"github.com/content-publishing-api/internal/models"
	"github.com/content-publishing-api/internal/repository"
	"github.com/content-publishing-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService is the concrete implementation of UserService
type userService struct {
	users    repository.UserRepository
	articles repository.ArticleRepository
	creds    *auth.Credentials
	log      zerolog.Logger
}

func newUserService(repos *repository.Repositories, creds *auth.Credentials, log zerolog.Logger) UserService {
	return &userService{
		users:    repos.User,
		articles: repos.Article,
		creds:    creds,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// Register creates an account and returns it with a fresh session token.
// Emails are unique case-insensitively and stored lowercase.
func (s *userService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if errs := validation.ValidateRegistration(name, email, password); len(errs) > 0 {
		return nil, "", errs
	}

	email = strings.ToLower(strings.TrimSpace(email))
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, "", apperrors.Store(err)
	}
	if taken {
		return nil, "", apperrors.ErrEmailTaken
	}

	hash, err := s.creds.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &models.User{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(name),
		Email:              email,
		PasswordHash:       hash,
		Avatar:             models.DefaultAvatarURL,
		Bio:                "",
		Followers:          []string{},
		Following:          []string{},
		BookmarkedArticles: []string{},
		Role:               "user",
		IsVerified:         false,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, "", apperrors.Store(err)
	}

	token, err := s.creds.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("User registered")
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
// Unknown email and wrong password fail identically.
func (s *userService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.Store(err)
	}
	if user == nil || !s.creds.VerifyPassword(password, user.PasswordHash) {
		return nil, "", apperrors.ErrUnauthenticated
	}

	token, err := s.creds.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("User logged in")
	return user, token, nil
}

// Profile returns the public summary of a user together with their
// published articles, newest first.
func (s *userService) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	articles, err := s.articles.List(ctx, repository.ArticleFilter{
		AuthorID:      userID,
		PublishedOnly: true,
	}, 0, 100)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	return &Profile{
		User:     user.Summary(),
		Articles: articles,
	}, nil
}

// Bookmarks returns the caller's bookmarked articles. Only the owner of
// the bookmark list may read it. Bookmarks referencing deleted articles
// are filtered out rather than surfaced as errors.
func (s *userService) Bookmarks(ctx context.Context, callerID, userID string) ([]*models.Article, error) {
	if callerID != userID {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	articles, err := s.articles.GetByIDs(ctx, user.BookmarkedArticles)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return articles, nil
}
