package service

import (
	"context"
	"strings"
	"time"

	"github.com/content-publishing-api/internal/apperrors"
	"github.com/content-publishing-api/internal/models"
	"github.com/content-publishing-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// categoryService is the concrete implementation of CategoryService
type categoryService struct {
	categories repository.CategoryRepository
	articles   repository.ArticleRepository
	log        zerolog.Logger
}

func newCategoryService(repos *repository.Repositories, log zerolog.Logger) CategoryService {
	return &categoryService{
		categories: repos.Category,
		articles:   repos.Article,
		log:        log.With().Str("component", "category_service").Logger(),
	}
}

// List returns all categories with their derived article counts, seeding
// the default set on first use. Counts are computed from published
// articles tagged with the category name, never stored.
func (s *categoryService) List(ctx context.Context) ([]*models.CategoryWithCount, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	if len(categories) == 0 {
		if err := s.seedDefaults(ctx); err != nil {
			return nil, err
		}
		categories, err = s.categories.List(ctx)
		if err != nil {
			return nil, apperrors.Store(err)
		}
	}

	withCounts := make([]*models.CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		count, err := s.articles.Count(ctx, repository.ArticleFilter{
			Tag:           strings.ToLower(category.Name),
			PublishedOnly: true,
		})
		if err != nil {
			return nil, apperrors.Store(err)
		}
		withCounts = append(withCounts, &models.CategoryWithCount{
			Category:     *category,
			ArticleCount: count,
		})
	}

	return withCounts, nil
}

// Articles returns one page of published articles tagged with the
// category name, newest first.
func (s *categoryService) Articles(ctx context.Context, name string, page, limit int) (*CategoryArticlesPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	filter := repository.ArticleFilter{
		Tag:           strings.ToLower(name),
		PublishedOnly: true,
	}

	articles, err := s.articles.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	total, err := s.articles.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	totalPages := (total + limit - 1) / limit
	return &CategoryArticlesPage{
		Articles:   articles,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// seedDefaults inserts the fixed category set with default colors
func (s *categoryService) seedDefaults(ctx context.Context) error {
	now := time.Now()
	for _, category := range models.DefaultCategories {
		seeded := category
		seeded.ID = uuid.New().String()
		seeded.Color = models.DefaultCategoryColor
		seeded.CreatedAt = now
		seeded.UpdatedAt = now
		if err := s.categories.Insert(ctx, &seeded); err != nil {
			return apperrors.Store(err)
		}
	}
	s.log.Info().Int("count", len(models.DefaultCategories)).Msg("Seeded default categories")
	return nil
}
