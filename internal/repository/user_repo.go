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

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, name, email, password_hash, avatar, bio, followers, following, bookmarked_articles, role, is_verified, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var followers, following, bookmarks []byte

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Avatar, &user.Bio,
		&followers, &following, &bookmarks,
		&user.Role, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal(followers, &user.Followers)
	json.Unmarshal(following, &user.Following)
	json.Unmarshal(bookmarks, &user.BookmarkedArticles)

	return &user, nil
}

func marshalSet(ids []string) []byte {
	if ids == nil {
		return []byte("[]")
	}
	data, _ := json.Marshal(ids)
	return data
}

// Insert creates a new user
func (r *userRepo) Insert(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, avatar, bio, followers, following, bookmarked_articles, role, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Avatar, user.Bio,
		marshalSet(user.Followers), marshalSet(user.Following), marshalSet(user.BookmarkedArticles),
		user.Role, user.IsVerified, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE LOWER(email) = LOWER($1)`, userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Exists checks if a user with the given ID exists
func (r *userRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// EmailExists checks if a user with the given email exists (case-insensitive)
func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))", email).Scan(&exists)
	return exists, err
}

func updateUserTx(ctx context.Context, tx *sql.Tx, user *models.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, avatar = $5, bio = $6,
		    followers = $7, following = $8, bookmarked_articles = $9,
		    role = $10, is_verified = $11, updated_at = $12
		WHERE id = $1
	`
	_, err := tx.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Avatar, user.Bio,
		marshalSet(user.Followers), marshalSet(user.Following), marshalSet(user.BookmarkedArticles),
		user.Role, user.IsVerified, time.Now(),
	)
	return err
}

// Update applies mutate to the current user state under a row lock
func (r *userRepo) Update(ctx context.Context, id string, mutate func(*models.User) error) (*models.User, error) {
	var updated *models.User

	err := r.db.WithinTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 FOR UPDATE`, userColumns)

		user, err := scanUser(tx.QueryRowContext(ctx, query, id))
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		if err != nil {
			return err
		}

		if err := mutate(user); err != nil {
			return err
		}
		if err := updateUserTx(ctx, tx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdatePair locks both users in deterministic id order and applies mutate
// to both inside one transaction. Ordering the locks prevents deadlock
// between concurrent toggles on the same pair.
func (r *userRepo) UpdatePair(ctx context.Context, idA, idB string, mutate func(a, b *models.User) error) (*models.User, *models.User, error) {
	var updatedA, updatedB *models.User

	err := r.db.WithinTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ANY($1) ORDER BY id FOR UPDATE`, userColumns)

		rows, err := tx.QueryContext(ctx, query, pq.Array([]string{idA, idB}))
		if err != nil {
			return err
		}
		defer rows.Close()

		byID := make(map[string]*models.User, 2)
		for rows.Next() {
			user, err := scanUser(rows)
			if err != nil {
				return err
			}
			byID[user.ID] = user
		}
		if err := rows.Err(); err != nil {
			return err
		}

		a, b := byID[idA], byID[idB]
		if a == nil || b == nil {
			return sql.ErrNoRows
		}

		if err := mutate(a, b); err != nil {
			return err
		}
		if err := updateUserTx(ctx, tx, a); err != nil {
			return err
		}
		if err := updateUserTx(ctx, tx, b); err != nil {
			return err
		}

		updatedA, updatedB = a, b
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updatedA, updatedB, nil
}

// Delete removes a user, reporting whether a row was deleted
func (r *userRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
