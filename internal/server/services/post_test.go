package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/logging"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
	"github.com/dmitrijs2005/redesocial/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/redesocial/internal/server/repositories/posts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenPosts struct{ posts.Repository }

func (brokenPosts) List(context.Context) ([]*models.Post, error) { return nil, errors.New("db down") }
func (brokenPosts) Delete(context.Context, int64) error            { return errors.New("db down") }

func newPostService(t *testing.T) (*PostService, *models.Account) {
	t.Helper()
	accs := accounts.NewInMemoryRepository()
	author, err := accs.Create(context.Background(), &models.Account{Name: "Ana", Username: "ana", Password: "d"})
	require.NoError(t, err)
	return NewPostService(posts.NewInMemoryRepository(), accs, logging.Nop{}), author
}

func TestPostService_CreateSetsAuthor(t *testing.T) {
	svc, author := newPostService(t)

	p, err := svc.Create(context.Background(), "ana", &models.Post{Title: "Hello", Text: "World"})
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	require.NotNil(t, p.AuthorID)
	assert.Equal(t, author.ID, *p.AuthorID)
}

func TestPostService_CreateUnknownAuthor(t *testing.T) {
	svc, _ := newPostService(t)

	_, err := svc.Create(context.Background(), "ghost", &models.Post{Title: "Hello", Text: "World"})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestPostService_Validation(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		post models.Post
	}{
		{"blank title", models.Post{Title: "  ", Text: "x"}},
		{"blank text", models.Post{Title: "t", Text: "\n"}},
		{"long title", models.Post{Title: strings.Repeat("a", MaxTitleLength+1), Text: "x"}},
		{"long text", models.Post{Title: "t", Text: strings.Repeat("a", MaxTextLength+1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.post
			_, err := svc.Create(ctx, "ana", &p)
			assert.ErrorIs(t, err, common.ErrorValidation)

			p.ID = 1
			_, err = svc.Update(ctx, &p)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}

	_, err := svc.Create(ctx, "ana", &models.Post{Title: strings.Repeat("é", MaxTitleLength), Text: "x"})
	assert.NoError(t, err, "limits count characters, not bytes")
}

func TestPostService_GetUpdateDelete(t *testing.T) {
	svc, author := newPostService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "ana", &models.Post{Title: "Hello", Text: "World"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)

	updated, err := svc.Update(ctx, &models.Post{ID: p.ID, Title: "Hi", Text: "There"})
	require.NoError(t, err)
	assert.Equal(t, "Hi", updated.Title)
	require.NotNil(t, updated.AuthorID)
	assert.Equal(t, author.ID, *updated.AuthorID)

	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = svc.Update(ctx, &models.Post{ID: p.ID, Title: "a", Text: "b"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), common.ErrorNotFound)
}

func TestPostService_ListAndSearch(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "ana", &models.Post{Title: "Learning Go", Text: "x"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "ana", &models.Post{Title: "Cooking", Text: "y"})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := svc.SearchByTitle(ctx, "GO")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Learning Go", found[0].Title)

	none, err := svc.SearchByTitle(ctx, "rust")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostService_StoreErrorsAreWrapped(t *testing.T) {
	svc := NewPostService(brokenPosts{}, accounts.NewInMemoryRepository(), logging.Nop{})

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")

	err = svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}
