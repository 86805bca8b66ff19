package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/redesocial/internal/client/api"
	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// subjectOf reads the username from a bearer token without verifying it;
// the server remains the only verifier.
func subjectOf(token string) (string, error) {
	raw := strings.TrimPrefix(token, common.BearerPrefix)
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}

// currentAccount finds the account the token belongs to.
func (a *App) currentAccount(ctx context.Context) (*api.Account, error) {
	if !a.isLoggedIn() {
		return nil, common.ErrorUnauthorized
	}
	username, err := subjectOf(a.backend.Token())
	if err != nil {
		return nil, err
	}

	list, err := a.backend.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Username == username {
			return &list[i], nil
		}
	}
	return nil, common.ErrorUnauthorized
}
