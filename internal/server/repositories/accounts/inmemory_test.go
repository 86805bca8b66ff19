package accounts

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepository_CreateAndFind(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	a, err := repo.Create(ctx, &models.Account{Name: "Alice", Username: "alice", Password: "d"})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &models.Account{Name: "Bob", Username: "bob", Password: "d"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.FindByUsername(ctx, "ALICE")
	assert.ErrorIs(t, err, common.ErrorNotFound, "usernames are case-sensitive")
}

func TestInMemoryRepository_UniqueUsername(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.Account{Username: "alice"})
	require.NoError(t, err)
	bob, err := repo.Create(ctx, &models.Account{Username: "bob"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Account{Username: "alice"})
	assert.ErrorIs(t, err, common.ErrorConflict)

	_, err = repo.Update(ctx, &models.Account{ID: bob.ID, Username: "alice"})
	assert.ErrorIs(t, err, common.ErrorConflict)

	_, err = repo.Update(ctx, &models.Account{ID: bob.ID, Username: "bob", Name: "Bobby"})
	assert.NoError(t, err, "keeping the own username is not a conflict")

	_, err = repo.Update(ctx, &models.Account{ID: 77, Username: "x"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	acc, err := repo.Create(ctx, &models.Account{Username: "alice", Name: "Alice"})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	found.Name = "mutated"

	again, err := repo.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
}

func TestInMemoryRepository_ConcurrentCreateKeepsOneAccount(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, &models.Account{Username: "same", Name: fmt.Sprint(i)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, common.ErrorConflict)
		}
	}
	assert.Equal(t, 1, ok)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
