package repository

import (
	"context"

	"github.com/content-publishing-api/internal/database"
	"github.com/content-publishing-api/internal/models"
)

// ArticleFilter captures the supported listing filters. Zero values mean
// "no filter" except PublishedOnly, which callers set explicitly.
type ArticleFilter struct {
	Tag           string // matches a normalized (lowercase) tag
	Featured      *bool
	Search        string // naive full-text match over title/subtitle/content/tags
	AuthorID      string
	PublishedOnly bool
}

// UserRepository defines the interface for user data operations. GetByID
// and GetByEmail return (nil, nil) when no user matches.
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// Update applies mutate to the current user state under a row lock so
	// the read-modify-write appears atomic per user.
	Update(ctx context.Context, id string, mutate func(*models.User) error) (*models.User, error)
	// UpdatePair locks both users in deterministic id order and applies
	// mutate to both inside one transaction. Either both new states commit
	// or neither does; concurrent updates on the same pair serialize.
	UpdatePair(ctx context.Context, idA, idB string, mutate func(a, b *models.User) error) (*models.User, *models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations.
// GetByID returns (nil, nil) when no article matches.
type ArticleRepository interface {
	Insert(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	// GetByIDs resolves the given ids, silently skipping ids that no
	// longer exist (dangling bookmark references).
	GetByIDs(ctx context.Context, ids []string) ([]*models.Article, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter ArticleFilter, skip, limit int) ([]*models.Article, error)
	Count(ctx context.Context, filter ArticleFilter) (int, error)
	// Update applies mutate under a row lock, same contract as
	// UserRepository.Update.
	Update(ctx context.Context, id string, mutate func(*models.Article) error) (*models.Article, error)
	// IncrementViews bumps the view counter by one and returns the new
	// value. A plain SQL increment, so concurrent reads never lose counts.
	IncrementViews(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Insert(ctx context.Context, category *models.Category) error
	GetByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User     UserRepository
	Article  ArticleRepository
	Category CategoryRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepo(db),
		Article:  NewArticleRepo(db),
		Category: NewCategoryRepo(db),
	}
}
