// Package accounts declares the account store contract and its PostgreSQL
// and in-memory implementations.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/redesocial/internal/server/models"
)

// Repository is a keyed lookup over persisted accounts.
//
// Lookups return common.ErrorNotFound when nothing matches. Create and Update
// return common.ErrorConflict when the username is already held by another
// account; the storage constraint is authoritative for that rule.
type Repository interface {
	Create(ctx context.Context, acc *models.Account) (*models.Account, error)
	Update(ctx context.Context, acc *models.Account) (*models.Account, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
}
