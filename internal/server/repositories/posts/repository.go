package posts

import (
	"context"

	"github.com/dmitrijs2005/redesocial/internal/server/models"
)

// Repository persists posts. FindByID, Update and Delete return
// common.ErrorNotFound when the post does not exist.
type Repository interface {
	List(ctx context.Context) ([]*models.Post, error)
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	// FindByTitle matches a case-insensitive substring of the title.
	FindByTitle(ctx context.Context, fragment string) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}
