// Package services contains server-side business logic. AccountService covers
// registration, profile updates, login and avatar references; PostService
// covers post CRUD; MediaService presigns object storage URLs.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/logging"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
	"github.com/dmitrijs2005/redesocial/internal/server/repositories/accounts"
)

// PasswordHasher turns a plaintext password into a storable digest.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// TokenIssuer signs access tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// CredentialsAuthenticator checks a username/password pair.
type CredentialsAuthenticator interface {
	Authenticate(ctx context.Context, username, plaintext string) error
}

// AvatarStorage presigns avatar upload and download URLs.
type AvatarStorage interface {
	PresignPut(ctx context.Context) (key string, url string, err error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// LoginAttempt is the credential pair submitted by a client.
type LoginAttempt struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult describes the authenticated account. Password is always empty.
type LoginResult struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

// AvatarUpload is a freshly allocated avatar key and the URL to PUT it to.
type AvatarUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type AccountService struct {
	accounts      accounts.Repository
	hasher        PasswordHasher
	tokens        TokenIssuer
	authenticator CredentialsAuthenticator
	media         AvatarStorage
	logger        logging.Logger
}

func NewAccountService(repo accounts.Repository, hasher PasswordHasher, tokens TokenIssuer,
	authenticator CredentialsAuthenticator, media AvatarStorage, logger logging.Logger) *AccountService {
	return &AccountService{
		accounts:      repo,
		hasher:        hasher,
		tokens:        tokens,
		authenticator: authenticator,
		media:         media,
		logger:        logger.With("module", "accounts"),
	}
}

// Register stores candidate with its password hashed. A username that is
// already held yields common.ErrorConflict and nothing is written.
func (s *AccountService) Register(ctx context.Context, candidate *models.Account) (*models.Account, error) {
	_, err := s.accounts.FindByUsername(ctx, candidate.Username)
	switch {
	case err == nil:
		return nil, common.ErrorConflict
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error searching account: %w", err)
	}

	digest, err := s.hasher.Hash(candidate.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	acc := *candidate
	acc.Password = digest

	created, err := s.accounts.Create(ctx, &acc)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.logger.Info(ctx, "account registered", "id", created.ID, "username", created.Username)
	return created, nil
}

// Update replaces the profile of the account with candidate.ID. An empty
// password or avatar keeps the stored value; a non-empty password is hashed.
func (s *AccountService) Update(ctx context.Context, candidate *models.Account) (*models.Account, error) {
	stored, err := s.accounts.FindByID(ctx, candidate.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}

	holder, err := s.accounts.FindByUsername(ctx, candidate.Username)
	switch {
	case err == nil && holder.ID != candidate.ID:
		return nil, common.ErrorConflict
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error searching account: %w", err)
	}

	acc := *candidate
	acc.CreatedAt = stored.CreatedAt
	if acc.Avatar == "" {
		acc.Avatar = stored.Avatar
	}
	if acc.Password == "" {
		acc.Password = stored.Password
	} else {
		digest, err := s.hasher.Hash(acc.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		acc.Password = digest
	}

	updated, err := s.accounts.Update(ctx, &acc)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) || errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating account: %w", err)
	}

	s.logger.Info(ctx, "account updated", "id", updated.ID)
	return updated, nil
}

// Authenticate verifies the attempt and returns the account with a fresh
// bearer token. Unknown usernames and wrong passwords both yield
// common.ErrorUnauthorized.
func (s *AccountService) Authenticate(ctx context.Context, attempt LoginAttempt) (*LoginResult, error) {
	if err := s.authenticator.Authenticate(ctx, attempt.Username, attempt.Password); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Debug(ctx, "login rejected", "username", attempt.Username)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error authenticating: %w", err)
	}

	acc, err := s.accounts.FindByUsername(ctx, attempt.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}

	token, err := s.tokens.Issue(acc.Username)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &LoginResult{
		ID:       acc.ID,
		Name:     acc.Name,
		Username: acc.Username,
		Avatar:   acc.Avatar,
		Password: "",
		Token:    common.BearerPrefix + token,
	}, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*models.Account, error) {
	acc, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}
	return acc, nil
}

func (s *AccountService) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	acc, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}
	return acc, nil
}

func (s *AccountService) List(ctx context.Context) ([]*models.Account, error) {
	list, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	return list, nil
}

// AvatarUploadURL allocates a new avatar key, records it on the account and
// returns it together with a presigned PUT URL.
func (s *AccountService) AvatarUploadURL(ctx context.Context, id int64) (*AvatarUpload, error) {
	acc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key, url, err := s.media.PresignPut(ctx)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	acc.Avatar = key
	if _, err := s.accounts.Update(ctx, acc); err != nil {
		return nil, fmt.Errorf("error storing avatar reference: %w", err)
	}

	s.logger.Info(ctx, "avatar upload issued", "id", id, "key", key)
	return &AvatarUpload{Key: key, URL: url}, nil
}

// AvatarURL returns a presigned GET URL for the account's avatar, or
// common.ErrorNotFound when none is set.
func (s *AccountService) AvatarURL(ctx context.Context, id int64) (string, error) {
	acc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if acc.Avatar == "" {
		return "", common.ErrorNotFound
	}

	url, err := s.media.PresignGet(ctx, acc.Avatar)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}
	return url, nil
}
