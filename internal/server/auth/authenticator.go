package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
)

// AccountFinder is the lookup the Authenticator needs from the account store.
type AccountFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
}

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// Authenticator checks a username/password pair against the stored digest.
type Authenticator struct {
	accounts AccountFinder
	hasher   PasswordHasher

	dummyOnce   sync.Once
	dummyDigest string
	dummyErr    error
}

func NewAuthenticator(accounts AccountFinder, hasher PasswordHasher) *Authenticator {
	return &Authenticator{accounts: accounts, hasher: hasher}
}

// Authenticate returns common.ErrorUnauthorized both for unknown usernames and
// for wrong passwords. Unknown usernames still pay for one digest comparison.
func (a *Authenticator) Authenticate(ctx context.Context, username, plaintext string) error {
	acc, err := a.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			digest, err := a.dummy()
			if err != nil {
				return fmt.Errorf("dummy digest: %w", err)
			}
			a.hasher.Verify(plaintext, digest)
			return common.ErrorUnauthorized
		}
		return fmt.Errorf("find account: %w", err)
	}

	if !a.hasher.Verify(plaintext, acc.Password) {
		return common.ErrorUnauthorized
	}

	return nil
}

// dummy returns the digest compared against for unknown usernames. It is
// computed once with the configured hasher so its cost matches real digests.
func (a *Authenticator) dummy() (string, error) {
	a.dummyOnce.Do(func() {
		a.dummyDigest, a.dummyErr = a.hasher.Hash("redesocial-dummy-password")
	})
	return a.dummyDigest, a.dummyErr
}
