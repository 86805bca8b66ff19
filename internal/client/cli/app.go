package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/redesocial/internal/client/api"
	"github.com/dmitrijs2005/redesocial/internal/client/config"
	"github.com/dmitrijs2005/redesocial/internal/common"
)

// Backend is the part of api.Client the commands use.
type Backend interface {
	SetToken(token string)
	Token() string
	Register(ctx context.Context, in api.AccountInput) (*api.Account, error)
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	UpdateAccount(ctx context.Context, in api.AccountInput) (*api.Account, error)
	ListAccounts(ctx context.Context) ([]api.Account, error)
	AvatarUpload(ctx context.Context, id int64) (*api.AvatarUpload, error)
	UploadToPresignedURL(ctx context.Context, url string, data []byte) error
	ListPosts(ctx context.Context, title string) ([]api.Post, error)
	GetPost(ctx context.Context, id int64) (*api.Post, error)
	CreatePost(ctx context.Context, in api.PostInput) (*api.Post, error)
	UpdatePost(ctx context.Context, id int64, in api.PostInput) (*api.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

type App struct {
	backend Backend
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) *App {
	client := api.New(c.ServerEndpointAddr, c.RequestTimeout)
	token := c.Token
	if token != "" && !strings.HasPrefix(token, common.BearerPrefix) {
		token = common.BearerPrefix + token
	}
	client.SetToken(token)
	return newApp(client, os.Stdin, os.Stdout)
}

func newApp(b Backend, in io.Reader, out io.Writer) *App {
	return &App{backend: b, reader: bufio.NewReader(in), out: out}
}

// Run executes args as one command, or starts the REPL when args is empty.
// It returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Welcome to redesocial CLI (type 'help' for commands)")
		runREPL(ctx, a, a.status, a.reader)
		return 0
	}

	if err := dispatch(ctx, a, args); err != nil {
		fmt.Fprintln(a.out, "error:", describe(err))
		return 1
	}
	return 0
}

func (a *App) isLoggedIn() bool {
	return a.backend.Token() != ""
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "guest"
	}
	if name, err := subjectOf(a.backend.Token()); err == nil {
		return name
	}
	return "?"
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// describe turns API errors into short user-facing text.
func describe(err error) string {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return "server unavailable"
	case errors.Is(err, common.ErrorUnauthorized):
		return "not logged in or credentials rejected"
	case errors.Is(err, common.ErrorConflict):
		return "username already taken"
	default:
		return err.Error()
	}
}
