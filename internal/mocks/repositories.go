package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/content-publishing-api/internal/models"
	"github.com/content-publishing-api/internal/repository"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// All operations are mutex-guarded; Update and UpdatePair mimic the
// store's read-modify-write atomicity by mutating under the lock.
type MockUserRepository struct {
	mu            sync.Mutex
	Users         map[string]*models.User
	InsertError   error
	UpdateError   error
	UpdatePairErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Insert(ctx context.Context, user *models.User) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.Users[id]
	return exists, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) Update(ctx context.Context, id string, mutate func(*models.User) error) (*models.User, error) {
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, exists := m.Users[id]
	if !exists {
		return nil, sql.ErrNoRows
	}
	if err := mutate(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (m *MockUserRepository) UpdatePair(ctx context.Context, idA, idB string, mutate func(a, b *models.User) error) (*models.User, *models.User, error) {
	if m.UpdatePairErr != nil {
		return nil, nil, m.UpdatePairErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, okA := m.Users[idA]
	b, okB := m.Users[idB]
	if !okA || !okB {
		return nil, nil, sql.ErrNoRows
	}
	if err := mutate(a, b); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Users[id]; !exists {
		return false, nil
	}
	delete(m.Users, id)
	return true, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users), nil
}

// MockArticleRepository is an in-memory implementation of ArticleRepository
type MockArticleRepository struct {
	mu          sync.Mutex
	Articles    map[string]*models.Article
	InsertError error
	UpdateError error
	ListError   error
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Insert(ctx context.Context, article *models.Article) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Articles[id], nil
}

func (m *MockArticleRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var articles []*models.Article
	for _, id := range ids {
		if article, ok := m.Articles[id]; ok {
			articles = append(articles, article)
		}
	}
	return articles, nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.Articles[id]
	return exists, nil
}

func matchesFilter(article *models.Article, filter repository.ArticleFilter) bool {
	if filter.PublishedOnly && !article.Published {
		return false
	}
	if filter.Featured != nil && article.Featured != *filter.Featured {
		return false
	}
	if filter.AuthorID != "" && article.AuthorID != filter.AuthorID {
		return false
	}
	if filter.Tag != "" {
		found := false
		for _, tag := range article.Tags {
			if tag == filter.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystack := strings.ToLower(article.Title + " " + article.Subtitle + " " + article.Content + " " + strings.Join(article.Tags, " "))
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func (m *MockArticleRepository) filtered(filter repository.ArticleFilter) []*models.Article {
	var matched []*models.Article
	for _, article := range m.Articles {
		if matchesFilter(article, filter) {
			matched = append(matched, article)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func (m *MockArticleRepository) List(ctx context.Context, filter repository.ArticleFilter, skip, limit int) ([]*models.Article, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := m.filtered(filter)
	if skip >= len(matched) {
		return nil, nil
	}
	matched = matched[skip:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockArticleRepository) Count(ctx context.Context, filter repository.ArticleFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.filtered(filter)), nil
}

func (m *MockArticleRepository) Update(ctx context.Context, id string, mutate func(*models.Article) error) (*models.Article, error) {
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	article, exists := m.Articles[id]
	if !exists {
		return nil, sql.ErrNoRows
	}
	if err := mutate(article); err != nil {
		return nil, err
	}
	return article, nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, exists := m.Articles[id]
	if !exists {
		return 0, sql.ErrNoRows
	}
	article.Views++
	return article.Views, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Articles[id]; !exists {
		return false, nil
	}
	delete(m.Articles, id)
	return true, nil
}

// MockCategoryRepository is an in-memory implementation of CategoryRepository
type MockCategoryRepository struct {
	mu          sync.Mutex
	Categories  map[string]*models.Category
	InsertError error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[string]*models.Category),
	}
}

func (m *MockCategoryRepository) Insert(ctx context.Context, category *models.Category) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Categories[category.Name] = category
	return nil
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Categories[name], nil
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	categories := make([]*models.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Categories), nil
}

// NewRepositories bundles the mocks as a repository.Repositories for
// wiring services in tests
func NewRepositories(users *MockUserRepository, articles *MockArticleRepository, categories *MockCategoryRepository) *repository.Repositories {
	return &repository.Repositories{
		User:     users,
		Article:  articles,
		Category: categories,
	}
}
