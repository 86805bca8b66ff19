// Package httpapi exposes the account and post services over REST.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/redesocial/internal/logging"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
	"github.com/dmitrijs2005/redesocial/internal/server/services"
	"github.com/julienschmidt/httprouter"
)

type AccountService interface {
	Register(ctx context.Context, candidate *models.Account) (*models.Account, error)
	Update(ctx context.Context, candidate *models.Account) (*models.Account, error)
	Authenticate(ctx context.Context, attempt services.LoginAttempt) (*services.LoginResult, error)
	Get(ctx context.Context, id int64) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	AvatarUploadURL(ctx context.Context, id int64) (*services.AvatarUpload, error)
	AvatarURL(ctx context.Context, id int64) (string, error)
}

type PostService interface {
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	SearchByTitle(ctx context.Context, fragment string) ([]*models.Post, error)
	Create(ctx context.Context, authorUsername string, post *models.Post) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

// TokenVerifier resolves a raw (unprefixed) token to its subject.
type TokenVerifier interface {
	Subject(token string) (string, error)
}

type API struct {
	accounts AccountService
	posts    PostService
	tokens   TokenVerifier
	logger   logging.Logger
}

func NewAPI(as AccountService, ps PostService, tv TokenVerifier, l logging.Logger) *API {
	return &API{accounts: as, posts: ps, tokens: tv, logger: l.With("module", "http_api")}
}

// Handler builds the router with every route and the request logging middleware.
func (a *API) Handler() http.Handler {
	router := httprouter.New()

	router.GET("/ping", a.ping)

	router.POST("/v1/accounts", a.registerAccount)
	router.PUT("/v1/accounts", a.requireAuth(a.updateAccount))
	router.GET("/v1/accounts", a.requireAuth(a.listAccounts))
	router.GET("/v1/accounts/:id", a.requireAuth(a.getAccount))
	router.POST("/v1/accounts/:id/avatar", a.requireAuth(a.createAvatarUpload))
	router.GET("/v1/accounts/:id/avatar", a.requireAuth(a.redirectToAvatar))

	router.POST("/v1/sessions", a.login)

	router.GET("/v1/posts", a.requireAuth(a.listPosts))
	router.POST("/v1/posts", a.requireAuth(a.createPost))
	router.GET("/v1/posts/:id", a.requireAuth(a.getPost))
	router.PUT("/v1/posts/:id", a.requireAuth(a.updatePost))
	router.DELETE("/v1/posts/:id", a.requireAuth(a.deletePost))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		a.logger.Error(r.Context(), "handler panic", "panic", v, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
	}

	return a.logRequests(router)
}

func (a *API) ping(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
