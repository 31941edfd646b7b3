package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/content-publishing-api/internal/apperrors"
	"github.com/content-publishing-api/internal/auth"
	"github.com/content-publishing-api/internal/config"
	"github.com/content-publishing-api/internal/mocks"
	"github.com/content-publishing-api/internal/models"
	"github.com/content-publishing-api/internal/service"
	"github.com/rs/zerolog"
)

func newTestServices(users *mocks.MockUserRepository, articles *mocks.MockArticleRepository) *service.Services {
	repos := mocks.NewRepositories(users, articles, mocks.NewMockCategoryRepository())
	creds := auth.NewCredentials(&config.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	})
	guard := auth.NewGuard(creds, users)
	return service.NewServices(repos, guard, creds, zerolog.Nop())
}

func seedUser(users *mocks.MockUserRepository, id, role string) *models.User {
	user := &models.User{
		ID:                 id,
		Name:               "User " + id,
		Email:              id + "@test.com",
		Role:               role,
		Followers:          []string{},
		Following:          []string{},
		BookmarkedArticles: []string{},
		CreatedAt:          time.Now(),
	}
	users.Insert(context.Background(), user)
	return user
}

func seedArticle(articles *mocks.MockArticleRepository, id, authorID string) *models.Article {
	article := &models.Article{
		ID:        id,
		Title:     "Article " + id,
		Content:   "some content",
		AuthorID:  authorID,
		Likes:     []string{},
		Comments:  []models.Comment{},
		ReadTime:  1,
		Published: true,
		CreatedAt: time.Now(),
	}
	articles.Insert(context.Background(), article)
	return article
}

func contains(set []string, id string) bool {
	for _, member := range set {
		if member == id {
			return true
		}
	}
	return false
}

func TestToggleFollow_BidirectionalInvariant(t *testing.T) {
	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	svc := newTestServices(users, articles)
	ctx := context.Background()

	alice := seedUser(users, "alice", "user")
	bob := seedUser(users, "bob", "user")

	result, err := svc.Relationship.ToggleFollow(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("ToggleFollow failed: %v", err)
	}
	if !result.IsFollowing {
		t.Error("Expected IsFollowing=true after first toggle")
	}
	if result.FollowerCount != 1 {
		t.Errorf("Expected follower count 1, got %d", result.FollowerCount)
	}

	// Both sides of the edge must be present
	if !contains(alice.Following, bob.ID) {
		t.Error("bob missing from alice.Following")
	}
	if !contains(bob.Followers, alice.ID) {
		t.Error("alice missing from bob.Followers")
	}

	// Second toggle returns to the original state
	result, err = svc.Relationship.ToggleFollow(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("ToggleFollow failed: %v", err)
	}
	if result.IsFollowing {
		t.Error("Expected IsFollowing=false after second toggle")
	}
	if result.FollowerCount != 0 {
		t.Errorf("Expected follower count 0, got %d", result.FollowerCount)
	}
	if contains(alice.Following, bob.ID) || contains(bob.Followers, alice.ID) {
		t.Error("Edge not fully removed after unfollow")
	}
}

func TestToggleFollow_RepeatedTogglesKeepInvariant(t *testing.T) {
	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	svc := newTestServices(users, articles)
	ctx := context.Background()

	alice := seedUser(users, "alice", "user")
	bob := seedUser(users, "bob", "user")

	for i := 0; i < 7; i++ {
		if _, err := svc.Relationship.ToggleFollow(ctx, alice.ID, bob.ID); err != nil {
			t.Fatalf("Toggle %d failed: %v", i, err)
		}
		// Invariant must hold after every toggle, in either state
		if contains(alice.Following, bob.ID) != contains(bob.Followers, alice.ID) {
			t.Fatalf("Bidirectional invariant violated after toggle %d", i)
		}
	}

	// Odd number of toggles lands in the following state
	if !contains(alice.Following, bob.ID) {
		t.Error("Expected following state after 7 toggles")
	}
}

func TestToggleFollow_SelfFollowRejected(t *testing.T) {
	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	svc := newTestServices(users, articles)

	alice := seedUser(users, "alice", "user")

	_, err := svc.Relationship.ToggleFollow(context.Background(), alice.ID, alice.ID)
	if !errors.Is(err, apperrors.ErrInvalidOperation) {
		t.Fatalf("Expected ErrInvalidOperation, got %v", err)
	}
	if len(alice.Following) != 0 || len(alice.Followers) != 0 {
		t.Error("Self-follow must not mutate state")
	}
}

func TestToggleFollow_TargetNotFound(t *testing.T) {
	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	svc := newTestServices(users, articles)

	alice := seedUser(users, "alice", "user")

	_, err := svc.Relationship.ToggleFollow(context.Background(), alice.ID, "missing")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if len(alice.Following) != 0 {
		t.Error("Failed toggle must not mutate state")
	}
}

func TestToggleFollow_DirectionsAreIndependent(t *testing.T) {
	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	svc := newTestServices(users, articles)
	ctx := context.Background()

	u1 := seedUser(users, "u1", "user")
	u2 := seedUser(users, "u2", "user")

	// u1 follows u2, then u2 follows u1
	if _, err := svc.Relationship.ToggleFollow(ctx, u1.ID, u2.ID); err != nil {
		t.Fatalf("ToggleFollow failed: %v", err)
	}
	if _, err := svc.Relationship.ToggleFollow(ctx, u2.ID, u1.ID); err != nil {
		t.Fatalf("ToggleFollow failed: %v", err)
	}

	// Unfollow by u1 removes only the u1→u2 edge
	result, err := svc.Relationship.ToggleFollow(ctx, u1.ID, u2.ID)
	if err != nil {
		t.Fatalf("ToggleFollow failed: %v", err)
	}
	if result.IsFollowing {
		t.Error("Expected u1 to have unfollowed u2")
	}

	if contains(u1.Following, u2.ID) || contains(u2.Followers, u1.ID) {
		t.Error("u1→u2 edge should be removed")
	}
	if !contains(u2.Following, u1.ID) || !contains(u1.Followers, u2.ID) {
		t.Error("u2→u1 edge must remain intact")
	}
}

func TestToggleFollow_StoreFailureSurfaces(t *testing.T) {
	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	svc := newTestServices(users, articles)

	alice := seedUser(users, "alice", "user")
	bob := seedUser(users, "bob", "user")
	users.UpdatePairErr = errors.New("connection reset")

	_, err := svc.Relationship.ToggleFollow(context.Background(), alice.ID, bob.ID)
	if !errors.Is(err, apperrors.ErrStoreFailure) {
		t.Fatalf("Expected ErrStoreFailure, got %v", err)
	}
	if len(alice.Following) != 0 || len(bob.Followers) != 0 {
		t.Error("Failed transaction must leave no partial state")
	}
}

func TestToggleLike(t *testing.T) {
	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	svc := newTestServices(users, articles)
	ctx := context.Background()

	seedUser(users, "author", "user")
	reader := seedUser(users, "reader", "user")
	article := seedArticle(articles, "a1", "author")

	result, err := svc.Relationship.ToggleLike(ctx, reader.ID, article.ID)
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if !result.IsLiked || result.LikeCount != 1 {
		t.Errorf("Expected {IsLiked:true, LikeCount:1}, got {%v, %d}", result.IsLiked, result.LikeCount)
	}

	result, err = svc.Relationship.ToggleLike(ctx, reader.ID, article.ID)
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if result.IsLiked || result.LikeCount != 0 {
		t.Errorf("Expected {IsLiked:false, LikeCount:0}, got {%v, %d}", result.IsLiked, result.LikeCount)
	}
}

func TestToggleLike_ArticleNotFound(t *testing.T) {
	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	svc := newTestServices(users, articles)

	reader := seedUser(users, "reader", "user")

	_, err := svc.Relationship.ToggleLike(context.Background(), reader.ID, "missing")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestToggleBookmark(t *testing.T) {
	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	svc := newTestServices(users, articles)
	ctx := context.Background()

	seedUser(users, "author", "user")
	reader := seedUser(users, "reader", "user")
	article := seedArticle(articles, "a1", "author")

	result, err := svc.Relationship.ToggleBookmark(ctx, reader.ID, article.ID)
	if err != nil {
		t.Fatalf("ToggleBookmark failed: %v", err)
	}
	if !result.IsBookmarked {
		t.Error("Expected IsBookmarked=true")
	}
	if !contains(reader.BookmarkedArticles, article.ID) {
		t.Error("Article missing from user's bookmark set")
	}
	// The article document itself is untouched
	if len(article.Likes) != 0 {
		t.Error("Bookmark must not touch the article's like set")
	}

	result, err = svc.Relationship.ToggleBookmark(ctx, reader.ID, article.ID)
	if err != nil {
		t.Fatalf("ToggleBookmark failed: %v", err)
	}
	if result.IsBookmarked {
		t.Error("Expected IsBookmarked=false after second toggle")
	}
}

func TestToggleBookmark_ArticleNotFound(t *testing.T) {
	users := mocks.NewMockUserRepository()
	articles := mocks.NewMockArticleRepository()
	svc := newTestServices(users, articles)

	reader := seedUser(users, "reader", "user")

	_, err := svc.Relationship.ToggleBookmark(context.Background(), reader.ID, "missing")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if len(reader.BookmarkedArticles) != 0 {
		t.Error("Failed toggle must not mutate the bookmark set")
	}
}
