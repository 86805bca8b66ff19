package accounts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
)

// InMemoryRepository keeps accounts in a map. It enforces the same username
// uniqueness rule as the database constraint and hands out copies so callers
// cannot mutate stored records behind its back.
type InMemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]models.Account
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{accounts: map[int64]models.Account{}}
}

func (r *InMemoryRepository) Create(ctx context.Context, acc *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.usernameTaken(acc.Username, 0) {
		return nil, common.ErrorConflict
	}

	r.nextID++
	acc.ID = r.nextID
	acc.CreatedAt = time.Now().UTC()
	r.accounts[acc.ID] = *acc

	return acc, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, acc *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[acc.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if r.usernameTaken(acc.Username, acc.ID) {
		return nil, common.ErrorConflict
	}

	acc.CreatedAt = stored.CreatedAt
	r.accounts[acc.ID] = *acc

	return acc, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &acc, nil
}

func (r *InMemoryRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, acc := range r.accounts {
		if acc.Username == username {
			return &acc, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		acc := acc
		result = append(result, &acc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// usernameTaken must be called with the lock held.
func (r *InMemoryRepository) usernameTaken(username string, exceptID int64) bool {
	for id, acc := range r.accounts {
		if acc.Username == username && id != exceptID {
			return true
		}
	}
	return false
}
