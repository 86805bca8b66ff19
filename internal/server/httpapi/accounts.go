package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
	"github.com/dmitrijs2005/redesocial/internal/server/services"
	"github.com/julienschmidt/httprouter"
)

func (a *API) registerAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		a.encodeError(w, r, err)
		return
	}

	if err := req.validate(true); err != nil {
		a.encodeError(w, r, err)
		return
	}

	acc, err := a.accounts.Register(r.Context(), &models.Account{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		a.encodeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v1/accounts/%d", acc.ID))
	writeJSON(w, http.StatusCreated, newAccountResponse(acc))
}

func (a *API) updateAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		a.encodeError(w, r, err)
		return
	}

	if err := req.validate(false); err != nil {
		a.encodeError(w, r, err)
		return
	}

	if err := a.authorizeAccount(r, req.ID); err != nil {
		a.encodeError(w, r, err)
		return
	}

	acc, err := a.accounts.Update(r.Context(), &models.Account{
		ID:       req.ID,
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		a.encodeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(acc))
}

func (a *API) listAccounts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := a.accounts.List(r.Context())
	if err != nil {
		a.encodeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newAccountListResponse(list))
}

func (a *API) getAccount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := idParam(ps)
	if err != nil {
		a.encodeError(w, r, err)
		return
	}

	acc, err := a.accounts.Get(r.Context(), id)
	if err != nil {
		a.encodeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newAccountResponse(acc))
}

func (a *API) createAvatarUpload(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := idParam(ps)
	if err != nil {
		a.encodeError(w, r, err)
		return
	}

	if err := a.authorizeAccount(r, id); err != nil {
		a.encodeError(w, r, err)
		return
	}

	up, err := a.accounts.AvatarUploadURL(r.Context(), id)
	if err != nil {
		a.encodeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, up)
}

func (a *API) redirectToAvatar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := idParam(ps)
	if err != nil {
		a.encodeError(w, r, err)
		return
	}

	url, err := a.accounts.AvatarURL(r.Context(), id)
	if err != nil {
		a.encodeError(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (a *API) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var attempt services.LoginAttempt
	if err := decodeBody(r, &attempt); err != nil {
		a.encodeError(w, r, err)
		return
	}

	res, err := a.accounts.Authenticate(r.Context(), attempt)
	if err != nil {
		a.encodeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// authorizeAccount checks that the authenticated caller owns account id.
func (a *API) authorizeAccount(r *http.Request, id int64) error {
	username, ok := UsernameFromContext(r.Context())
	if !ok {
		return common.ErrorUnauthorized
	}

	caller, err := a.accounts.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return err
	}
	if caller.ID != id {
		return common.ErrorForbidden
	}
	return nil
}
