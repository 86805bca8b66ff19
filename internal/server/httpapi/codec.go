package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
	"github.com/julienschmidt/httprouter"
)

// maxBodyBytes caps request bodies; posts are at most a few KB.
const maxBodyBytes = 1 << 20

var (
	errMalformedBody = errors.New("malformed request body")
	errInvalidID     = errors.New("invalid id")
)

// accountRequest carries no avatar: avatar keys are only assigned by the
// presigned upload flow.
type accountRequest struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// validate rejects a blank username, and a blank password when one is required.
func (req accountRequest) validate(passwordRequired bool) error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username is required", common.ErrorValidation)
	}
	if passwordRequired && strings.TrimSpace(req.Password) == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	return nil
}

type accountResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type postRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type postResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	AuthorID  *int64    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newAccountResponse(acc *models.Account) accountResponse {
	return accountResponse{ID: acc.ID, Name: acc.Name, Username: acc.Username, Avatar: acc.Avatar, CreatedAt: acc.CreatedAt}
}

func newAccountListResponse(list []*models.Account) []accountResponse {
	out := make([]accountResponse, 0, len(list))
	for _, acc := range list {
		out = append(out, newAccountResponse(acc))
	}
	return out
}

func newPostResponse(p *models.Post) postResponse {
	return postResponse{ID: p.ID, Title: p.Title, Text: p.Text, AuthorID: p.AuthorID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func newPostListResponse(list []*models.Post) []postResponse {
	out := make([]postResponse, 0, len(list))
	for _, p := range list {
		out = append(out, newPostResponse(p))
	}
	return out
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errMalformedBody
	}
	return nil
}

func idParam(ps httprouter.Params) (int64, error) {
	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errMalformedBody), errors.Is(err, errInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrorValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) encodeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.Error(r.Context(), "request failed", "error", err.Error(), "path", r.URL.Path)
		writeError(w, status, common.ErrorInternal.Error())
		return
	}
	writeError(w, status, err.Error())
}
