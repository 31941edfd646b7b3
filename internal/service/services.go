package service

import (
	"context"

	"github.com/content-publishing-api/internal/auth"
	"github.com/content-publishing-api/internal/models"
	"github.com/content-publishing-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleInput carries the fields of an article creation request
type ArticleInput struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"image_url"`
}

// ArticlePatch carries a partial update; nil fields keep their prior value
type ArticlePatch struct {
	Title    *string   `json:"title"`
	Subtitle *string   `json:"subtitle"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	ImageURL *string   `json:"image_url"`
}

// ListOptions captures pagination and filtering for article listing.
// Page is 1-indexed; zero values fall back to page 1 / limit 10.
type ListOptions struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Featured *bool
}

// ArticlePage is one page of a filtered article listing
type ArticlePage struct {
	Articles   []*models.Article `json:"articles"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
	Page       int               `json:"current_page"`
}

// FollowResult reports the new state after a follow toggle
type FollowResult struct {
	IsFollowing   bool `json:"is_following"`
	FollowerCount int  `json:"follower_count"`
}

// LikeResult reports the new state after a like toggle
type LikeResult struct {
	IsLiked   bool `json:"is_liked"`
	LikeCount int  `json:"like_count"`
}

// BookmarkResult reports the new state after a bookmark toggle
type BookmarkResult struct {
	IsBookmarked bool `json:"is_bookmarked"`
}

// Profile is a public user summary with the user's published articles
type Profile struct {
	User     *models.UserSummary `json:"user"`
	Articles []*models.Article   `json:"articles"`
}

// CategoryArticlesPage is one page of a category's articles
type CategoryArticlesPage struct {
	Articles   []*models.Article `json:"articles"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
	Page       int               `json:"current_page"`
	HasNext    bool              `json:"has_next"`
	HasPrev    bool              `json:"has_prev"`
}

// ArticleService governs article creation, mutation, derived fields,
// view accounting and the append-only comment log
type ArticleService interface {
	Create(ctx context.Context, authorID string, input *ArticleInput) (*models.Article, error)
	Update(ctx context.Context, callerID, articleID string, patch *ArticlePatch) (*models.Article, error)
	Delete(ctx context.Context, callerID, articleID string) error
	// Get returns the article and increments its view counter by one.
	Get(ctx context.Context, articleID string) (*models.Article, error)
	List(ctx context.Context, opts ListOptions) (*ArticlePage, error)
	AddComment(ctx context.Context, userID, articleID, content string) (*models.Comment, error)
}

// RelationshipService implements the symmetric-state toggles for
// follow, like and bookmark edges
type RelationshipService interface {
	ToggleFollow(ctx context.Context, followerID, targetID string) (*FollowResult, error)
	ToggleLike(ctx context.Context, userID, articleID string) (*LikeResult, error)
	ToggleBookmark(ctx context.Context, userID, articleID string) (*BookmarkResult, error)
}

// UserService covers registration, login, profiles and bookmark listing
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Profile(ctx context.Context, userID string) (*Profile, error)
	Bookmarks(ctx context.Context, callerID, userID string) ([]*models.Article, error)
}

// CategoryService lists categories with derived counts and their articles
type CategoryService interface {
	List(ctx context.Context) ([]*models.CategoryWithCount, error)
	Articles(ctx context.Context, name string, page, limit int) (*CategoryArticlesPage, error)
}

// Services holds all service interfaces
type Services struct {
	Article      ArticleService
	Relationship RelationshipService
	User         UserService
	Category     CategoryService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, guard *auth.Guard, creds *auth.Credentials, log zerolog.Logger) *Services {
	return &Services{
		Article:      newArticleService(repos, guard, log),
		Relationship: newRelationshipService(repos, log),
		User:         newUserService(repos, creds, log),
		Category:     newCategoryService(repos, log),
	}
}
