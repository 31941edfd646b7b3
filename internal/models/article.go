package models

import (
	"strings"
	"time"
)

// DefaultArticleImageURL is used when an article is created without a cover image.
const DefaultArticleImageURL = "https://images.pexels.com/photos/3861969/pexels-photo-3861969.jpeg?auto=compress&cs=tinysrgb&w=1200"

// WordsPerMinute is the reading speed used to derive read time from content.
const WordsPerMinute = 200

// Article represents a published piece of content.
type Article struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Subtitle  string    `json:"subtitle" db:"subtitle"`
	Content   string    `json:"content" db:"content"`
	AuthorID  string    `json:"author_id" db:"author_id"` // immutable after creation
	Tags      []string  `json:"tags" db:"-"`              // stored as JSON
	ImageURL  string    `json:"image_url" db:"image_url"`
	Likes     []string  `json:"likes" db:"-"`    // user ids, stored as JSON
	Comments  []Comment `json:"comments" db:"-"` // append-only, stored as JSON
	ReadTime  int       `json:"read_time" db:"read_time"` // minutes, derived from content
	Featured  bool      `json:"featured" db:"featured"`
	Published bool      `json:"published" db:"published"`
	Views     int64     `json:"views" db:"views"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Comment is a single entry in an article's append-only comment log.
// Comments are never edited or deleted.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxTitleLength, MaxSubtitleLength and MaxCommentLength bound user input.
const (
	MaxTitleLength    = 200
	MaxSubtitleLength = 300
	MaxCommentLength  = 1000
	MaxNameLength     = 50
	MaxBioLength      = 500
	MinPasswordLength = 6
)

// LikeCount is derived from the likes set, never stored.
func (a *Article) LikeCount() int {
	return len(a.Likes)
}

// CommentCount is derived from the comment log, never stored.
func (a *Article) CommentCount() int {
	return len(a.Comments)
}

// ComputeReadTime derives the read time in minutes from the content word
// count: ceil(words/200) with a floor of one minute.
func ComputeReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// NormalizeTags trims, lowercases and deduplicates tags, preserving the
// order of first appearance. Empty tags are dropped.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	return normalized
}
