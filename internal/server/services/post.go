package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/logging"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
	"github.com/dmitrijs2005/redesocial/internal/server/repositories/posts"
)

// Column limits of the posts table.
const (
	MaxTitleLength = 100
	MaxTextLength  = 1000
)

// AuthorFinder resolves the authenticated username to an account.
type AuthorFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
}

type PostService struct {
	posts   posts.Repository
	authors AuthorFinder
	logger  logging.Logger
}

func NewPostService(repo posts.Repository, authors AuthorFinder, logger logging.Logger) *PostService {
	return &PostService{posts: repo, authors: authors, logger: logger.With("module", "posts")}
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	list, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return list, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching post: %w", err)
	}
	return p, nil
}

// SearchByTitle matches fragment case-insensitively anywhere in the title.
func (s *PostService) SearchByTitle(ctx context.Context, fragment string) ([]*models.Post, error) {
	list, err := s.posts.FindByTitle(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("error searching posts: %w", err)
	}
	return list, nil
}

// Create stores post authored by authorUsername.
func (s *PostService) Create(ctx context.Context, authorUsername string, post *models.Post) (*models.Post, error) {
	if err := validatePost(post); err != nil {
		return nil, err
	}

	author, err := s.authors.FindByUsername(ctx, authorUsername)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching author: %w", err)
	}

	p := &models.Post{Title: post.Title, Text: post.Text, AuthorID: &author.ID}
	created, err := s.posts.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	s.logger.Info(ctx, "post created", "id", created.ID, "author_id", author.ID)
	return created, nil
}

// Update replaces the title and text of an existing post.
func (s *PostService) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := validatePost(post); err != nil {
		return nil, err
	}

	p := &models.Post{ID: post.ID, Title: post.Title, Text: post.Text}
	updated, err := s.posts.Update(ctx, p)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating post: %w", err)
	}
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting post: %w", err)
	}
	s.logger.Info(ctx, "post deleted", "id", id)
	return nil
}

func validatePost(p *models.Post) error {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	case strings.TrimSpace(p.Text) == "":
		return fmt.Errorf("%w: text is required", common.ErrorValidation)
	case utf8.RuneCountInString(p.Title) > MaxTitleLength:
		return fmt.Errorf("%w: title exceeds %d characters", common.ErrorValidation, MaxTitleLength)
	case utf8.RuneCountInString(p.Text) > MaxTextLength:
		return fmt.Errorf("%w: text exceeds %d characters", common.ErrorValidation, MaxTextLength)
	}
	return nil
}
