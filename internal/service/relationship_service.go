package service

import (
	"context"

	"github.com/content-publishing-api/internal/apperrors"
	"github.com/content-publishing-api/internal/models"
	"github.com/content-publishing-api/internal/repository"
	"github.com/rs/zerolog"
)

// relationshipService implements the symmetric-state toggle engine for
// follow, like and bookmark edges. Every toggle is a pure flip: applying
// it twice returns to the original state.
type relationshipService struct {
	users    repository.UserRepository
	articles repository.ArticleRepository
	log      zerolog.Logger
}

func newRelationshipService(repos *repository.Repositories, log zerolog.Logger) RelationshipService {
	return &relationshipService{
		users:    repos.User,
		articles: repos.Article,
		log:      log.With().Str("component", "relationship_service").Logger(),
	}
}

// ToggleFollow flips the follow edge between follower and target. Both
// sides of the edge (follower.Following and target.Followers) change
// inside one transaction, so no read can ever observe a half-applied
// state. Concurrent toggles on the same pair serialize on the row locks.
func (s *relationshipService) ToggleFollow(ctx context.Context, followerID, targetID string) (*FollowResult, error) {
	if followerID == targetID {
		return nil, apperrors.ErrInvalidOperation
	}

	var isFollowing bool
	_, target, err := s.users.UpdatePair(ctx, followerID, targetID, func(follower, target *models.User) error {
		if containsID(follower.Following, targetID) {
			follower.Following = removeID(follower.Following, targetID)
			target.Followers = removeID(target.Followers, followerID)
			isFollowing = false
		} else {
			follower.Following = append(follower.Following, targetID)
			target.Followers = append(target.Followers, followerID)
			isFollowing = true
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.log.Info().
		Str("follower_id", followerID).
		Str("target_id", targetID).
		Bool("is_following", isFollowing).
		Msg("Follow toggled")

	return &FollowResult{
		IsFollowing:   isFollowing,
		FollowerCount: target.FollowerCount(),
	}, nil
}

// ToggleLike flips the caller's membership in the article's like set.
// Single-document read-modify-write under a row lock, so two concurrent
// identical requests resolve to one of the two serial orders.
func (s *relationshipService) ToggleLike(ctx context.Context, userID, articleID string) (*LikeResult, error) {
	var isLiked bool
	article, err := s.articles.Update(ctx, articleID, func(article *models.Article) error {
		if containsID(article.Likes, userID) {
			article.Likes = removeID(article.Likes, userID)
			isLiked = false
		} else {
			article.Likes = append(article.Likes, userID)
			isLiked = true
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.log.Info().
		Str("user_id", userID).
		Str("article_id", articleID).
		Bool("is_liked", isLiked).
		Msg("Like toggled")

	return &LikeResult{
		IsLiked:   isLiked,
		LikeCount: article.LikeCount(),
	}, nil
}

// ToggleBookmark flips the article's membership in the user's bookmark
// set. The article must exist, but the mutation touches only the user
// document.
func (s *relationshipService) ToggleBookmark(ctx context.Context, userID, articleID string) (*BookmarkResult, error) {
	exists, err := s.articles.Exists(ctx, articleID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	var isBookmarked bool
	_, err = s.users.Update(ctx, userID, func(user *models.User) error {
		if containsID(user.BookmarkedArticles, articleID) {
			user.BookmarkedArticles = removeID(user.BookmarkedArticles, articleID)
			isBookmarked = false
		} else {
			user.BookmarkedArticles = append(user.BookmarkedArticles, articleID)
			isBookmarked = true
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.log.Info().
		Str("user_id", userID).
		Str("article_id", articleID).
		Bool("is_bookmarked", isBookmarked).
		Msg("Bookmark toggled")

	return &BookmarkResult{IsBookmarked: isBookmarked}, nil
}

// containsID reports membership of id in a reference set
func containsID(set []string, id string) bool {
	for _, member := range set {
		if member == id {
			return true
		}
	}
	return false
}

// removeID returns the set without id, preserving order
func removeID(set []string, id string) []string {
	out := set[:0]
	for _, member := range set {
		if member != id {
			out = append(out, member)
		}
	}
	return out
}
