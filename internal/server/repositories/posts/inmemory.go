package posts

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
)

// InMemoryRepository keeps posts in a map and hands out copies.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	posts  map[int64]models.Post
	now    func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{posts: map[int64]models.Post{}, now: func() time.Time { return time.Now().UTC() }}
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*models.Post, error) {
	return r.filter(func(models.Post) bool { return true }), nil
}

func (r *InMemoryRepository) FindByTitle(ctx context.Context, fragment string) ([]*models.Post, error) {
	needle := strings.ToLower(fragment)
	return r.filter(func(p models.Post) bool {
		return strings.Contains(strings.ToLower(p.Title), needle)
	}), nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clonePost(p), nil
}

func (r *InMemoryRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p := *clonePost(*post)
	p.ID = r.nextID
	p.CreatedAt = r.now()
	p.UpdatedAt = p.CreatedAt
	r.posts[p.ID] = p

	return clonePost(p), nil
}

func (r *InMemoryRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.posts[post.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	stored.Title = post.Title
	stored.Text = post.Text
	stored.UpdatedAt = r.now()
	r.posts[post.ID] = stored

	return clonePost(stored), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *InMemoryRepository) filter(keep func(models.Post) bool) []*models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if keep(p) {
			result = append(result, clonePost(p))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func clonePost(p models.Post) *models.Post {
	if p.AuthorID != nil {
		id := *p.AuthorID
		p.AuthorID = &id
	}
	return &p
}
