package models

import (
	"time"
)

// DefaultAvatarURL is assigned to users who register without an avatar.
const DefaultAvatarURL = "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=400"

// User represents a registered account. PasswordHash is never serialized.
type User struct {
	ID                 string    `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Email              string    `json:"email" db:"email"`
	PasswordHash       string    `json:"-" db:"password_hash"`
	Avatar             string    `json:"avatar" db:"avatar"`
	Bio                string    `json:"bio" db:"bio"`
	Followers          []string  `json:"followers" db:"-"`           // user ids, stored as JSON
	Following          []string  `json:"following" db:"-"`           // user ids, stored as JSON
	BookmarkedArticles []string  `json:"bookmarked_articles" db:"-"` // article ids, stored as JSON
	Role               string    `json:"role" db:"role"`
	IsVerified         bool      `json:"is_verified" db:"is_verified"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	"user":  true,
	"admin": true,
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// FollowerCount is derived from the followers set, never stored.
func (u *User) FollowerCount() int {
	return len(u.Followers)
}

// FollowingCount is derived from the following set, never stored.
func (u *User) FollowingCount() int {
	return len(u.Following)
}

// UserSummary is the public projection of a user for profile responses
// and embedded author info. Counts are computed from the sets at read time.
type UserSummary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Avatar         string    `json:"avatar"`
	Bio            string    `json:"bio"`
	FollowerCount  int       `json:"followers"`
	FollowingCount int       `json:"following"`
	IsVerified     bool      `json:"is_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// Summary builds the outward-facing projection of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Avatar:         u.Avatar,
		Bio:            u.Bio,
		FollowerCount:  u.FollowerCount(),
		FollowingCount: u.FollowingCount(),
		IsVerified:     u.IsVerified,
		CreatedAt:      u.CreatedAt,
	}
}
