package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/content-publishing-api/internal/database"
	"github.com/content-publishing-api/internal/models"
	"github.com/lib/pq"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = `id, title, subtitle, content, author_id, tags, image_url, likes, comments, read_time, featured, published, views, created_at, updated_at`

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var tags, likes, comments []byte

	err := row.Scan(
		&article.ID, &article.Title, &article.Subtitle, &article.Content, &article.AuthorID,
		&tags, &article.ImageURL, &likes, &comments,
		&article.ReadTime, &article.Featured, &article.Published, &article.Views,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal(tags, &article.Tags)
	json.Unmarshal(likes, &article.Likes)
	json.Unmarshal(comments, &article.Comments)

	return &article, nil
}

func marshalComments(comments []models.Comment) []byte {
	if comments == nil {
		return []byte("[]")
	}
	data, _ := json.Marshal(comments)
	return data
}

// Insert creates a new article
func (r *articleRepo) Insert(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (id, title, subtitle, content, author_id, tags, image_url, likes, comments, read_time, featured, published, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Subtitle, article.Content, article.AuthorID,
		marshalSet(article.Tags), article.ImageURL, marshalSet(article.Likes), marshalComments(article.Comments),
		article.ReadTime, article.Featured, article.Published, article.Views,
		article.CreatedAt, article.UpdatedAt,
	)
	return err
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1`, articleColumns)

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// GetByIDs resolves the given ids, skipping ids that no longer exist.
// Results keep the order of the input ids.
func (r *articleRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = ANY($1)`, articleColumns)

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*models.Article, len(ids))
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		byID[article.ID] = article
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	articles := make([]*models.Article, 0, len(byID))
	for _, id := range ids {
		if article, ok := byID[id]; ok {
			articles = append(articles, article)
		}
	}
	return articles, nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// buildFilter renders the WHERE clause for a listing filter
func buildFilter(filter ArticleFilter) (string, []interface{}) {
	where := "TRUE"
	args := []interface{}{}

	addClause := func(clause string, value interface{}) {
		args = append(args, value)
		where += fmt.Sprintf(" AND "+clause, len(args))
	}

	if filter.PublishedOnly {
		where += " AND published = TRUE"
	}
	if filter.Featured != nil {
		addClause("featured = $%d", *filter.Featured)
	}
	if filter.Tag != "" {
		tagJSON, _ := json.Marshal([]string{filter.Tag})
		addClause("tags @> $%d", string(tagJSON))
	}
	if filter.AuthorID != "" {
		addClause("author_id = $%d", filter.AuthorID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern)
		n := len(args)
		where += fmt.Sprintf(" AND (title ILIKE $%d OR subtitle ILIKE $%d OR content ILIKE $%d OR tags::text ILIKE $%d)", n, n, n, n)
	}

	return where, args
}

// List returns articles matching the filter, newest first
func (r *articleRepo) List(ctx context.Context, filter ArticleFilter, skip, limit int) ([]*models.Article, error) {
	where, args := buildFilter(filter)

	args = append(args, limit, skip)
	query := fmt.Sprintf(
		`SELECT %s FROM articles WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		articleColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Count returns the number of articles matching the filter
func (r *articleRepo) Count(ctx context.Context, filter ArticleFilter) (int, error) {
	where, args := buildFilter(filter)

	var count int
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM articles WHERE %s`, where), args...).Scan(&count)
	return count, err
}

// Update applies mutate to the current article state under a row lock
func (r *articleRepo) Update(ctx context.Context, id string, mutate func(*models.Article) error) (*models.Article, error) {
	var updated *models.Article

	err := r.db.WithinTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1 FOR UPDATE`, articleColumns)

		article, err := scanArticle(tx.QueryRowContext(ctx, query, id))
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		if err != nil {
			return err
		}

		if err := mutate(article); err != nil {
			return err
		}

		updateQuery := `
			UPDATE articles
			SET title = $2, subtitle = $3, content = $4, tags = $5, image_url = $6,
			    likes = $7, comments = $8, read_time = $9, featured = $10,
			    published = $11, views = $12, updated_at = $13
			WHERE id = $1
		`
		_, err = tx.ExecContext(ctx, updateQuery,
			article.ID, article.Title, article.Subtitle, article.Content,
			marshalSet(article.Tags), article.ImageURL, marshalSet(article.Likes),
			marshalComments(article.Comments), article.ReadTime, article.Featured,
			article.Published, article.Views, time.Now(),
		)
		if err != nil {
			return err
		}

		updated = article
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// IncrementViews bumps the view counter by one and returns the new value
func (r *articleRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	var views int64
	err := r.db.QueryRowContext(ctx,
		"UPDATE articles SET views = views + 1 WHERE id = $1 RETURNING views", id,
	).Scan(&views)
	if err == sql.ErrNoRows {
		return 0, sql.ErrNoRows
	}
	return views, err
}

// Delete removes an article, reporting whether a row was deleted
func (r *articleRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}
