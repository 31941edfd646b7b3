package service

import (
	"context"
	"database/sql"
	"errors"
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

const (
	defaultPage  = 1
	defaultLimit = 10
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	guard    *auth.Guard
	log      zerolog.Logger
}

func newArticleService(repos *repository.Repositories, guard *auth.Guard, log zerolog.Logger) ArticleService {
	return &articleService{
		articles: repos.Article,
		guard:    guard,
		log:      log.With().Str("component", "article_service").Logger(),
	}
}

// Create validates the input, derives the read time and stores a new
// article owned by authorID.
func (s *articleService) Create(ctx context.Context, authorID string, input *ArticleInput) (*models.Article, error) {
	if errs := validation.ValidateArticleInput(input.Title, input.Subtitle, input.Content); len(errs) > 0 {
		return nil, errs
	}

	imageURL := input.ImageURL
	if imageURL == "" {
		imageURL = models.DefaultArticleImageURL
	}

	now := time.Now()
	article := &models.Article{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(input.Title),
		Subtitle:  strings.TrimSpace(input.Subtitle),
		Content:   input.Content,
		AuthorID:  authorID,
		Tags:      models.NormalizeTags(input.Tags),
		ImageURL:  imageURL,
		Likes:     []string{},
		Comments:  []models.Comment{},
		ReadTime:  models.ComputeReadTime(input.Content),
		Featured:  false,
		Published: true,
		Views:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.articles.Insert(ctx, article); err != nil {
		return nil, apperrors.Store(err)
	}

	s.log.Info().Str("article_id", article.ID).Str("author_id", authorID).Msg("Article created")
	return article, nil
}

// Update applies a partial update. Only the article's author or an admin
// may update it; omitted patch fields keep their prior values, and the
// read time is recomputed when content changes. The author is immutable.
func (s *articleService) Update(ctx context.Context, callerID, articleID string, patch *ArticlePatch) (*models.Article, error) {
	existing, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if existing == nil {
		return nil, apperrors.ErrNotFound
	}

	if err := s.guard.RequireOwnerOrAdmin(ctx, callerID, existing.AuthorID); err != nil {
		return nil, err
	}

	if errs := validation.ValidateArticlePatch(patch.Title, patch.Subtitle, patch.Content); len(errs) > 0 {
		return nil, errs
	}

	updated, err := s.articles.Update(ctx, articleID, func(article *models.Article) error {
		if patch.Title != nil {
			article.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Subtitle != nil {
			article.Subtitle = strings.TrimSpace(*patch.Subtitle)
		}
		if patch.Content != nil && *patch.Content != article.Content {
			article.Content = *patch.Content
			article.ReadTime = models.ComputeReadTime(article.Content)
		}
		if patch.Tags != nil {
			article.Tags = models.NormalizeTags(*patch.Tags)
		}
		if patch.ImageURL != nil {
			article.ImageURL = *patch.ImageURL
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.log.Info().Str("article_id", articleID).Str("caller_id", callerID).Msg("Article updated")
	return updated, nil
}

// Delete removes an article. Only the author or an admin may delete it.
// Other users' like and bookmark sets are not cascaded; dangling
// references are filtered when bookmark lists are read.
func (s *articleService) Delete(ctx context.Context, callerID, articleID string) error {
	existing, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return apperrors.Store(err)
	}
	if existing == nil {
		return apperrors.ErrNotFound
	}

	if err := s.guard.RequireOwnerOrAdmin(ctx, callerID, existing.AuthorID); err != nil {
		return err
	}

	deleted, err := s.articles.Delete(ctx, articleID)
	if err != nil {
		return apperrors.Store(err)
	}
	if !deleted {
		return apperrors.ErrNotFound
	}

	s.log.Info().Str("article_id", articleID).Str("caller_id", callerID).Msg("Article deleted")
	return nil
}

// Get returns an article and counts the view. Every fetch increments the
// counter by exactly one, with no dedup by viewer.
func (s *articleService) Get(ctx context.Context, articleID string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if article == nil {
		return nil, apperrors.ErrNotFound
	}

	views, err := s.articles.IncrementViews(ctx, articleID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	article.Views = views

	return article, nil
}

// List returns one page of published articles matching the filters,
// newest first.
func (s *articleService) List(ctx context.Context, opts ListOptions) (*ArticlePage, error) {
	page := opts.Page
	if page < 1 {
		page = defaultPage
	}
	limit := opts.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	filter := repository.ArticleFilter{
		Featured:      opts.Featured,
		Search:        opts.Search,
		PublishedOnly: true,
	}
	if opts.Category != "" && opts.Category != "all" {
		filter.Tag = strings.ToLower(opts.Category)
	}

	articles, err := s.articles.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	total, err := s.articles.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	return &ArticlePage{
		Articles:   articles,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
		Page:       page,
	}, nil
}

// AddComment appends a comment to the article's append-only log. Any
// authenticated user may comment; prior comments are never touched.
func (s *articleService) AddComment(ctx context.Context, userID, articleID, content string) (*models.Comment, error) {
	if errs := validation.ValidateComment(content); len(errs) > 0 {
		return nil, errs
	}

	comment := models.Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	_, err := s.articles.Update(ctx, articleID, func(article *models.Article) error {
		article.Comments = append(article.Comments, comment)
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.log.Info().Str("article_id", articleID).Str("user_id", userID).Msg("Comment added")
	return &comment, nil
}

// mapStoreError translates a repository failure into the domain taxonomy:
// a missing row is NotFound, anything else a store failure. Validation
// errors raised inside a mutator pass through untouched.
func mapStoreError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if apperrors.IsValidation(err) || errors.Is(err, apperrors.ErrInvalidOperation) {
		return err
	}
	return apperrors.Store(err)
}
