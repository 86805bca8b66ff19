package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/redesocial/internal/client/api"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Display name", a.out)
	if err != nil {
		return err
	}
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}

	acc, err := a.backend.Register(ctx, api.AccountInput{Name: name, Username: username, Password: password})
	if err != nil {
		return err
	}
	a.printf("Registered account #%d (%s)\n", acc.ID, acc.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}

	res, err := a.backend.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.printf("Logged in as %s (#%d)\n%s\n", res.Username, res.ID, res.Token)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.backend.SetToken("")
	a.printf("Logged out\n")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	acc, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}
	a.printf("#%d %s (%s)\n", acc.ID, acc.Username, acc.Name)
	return nil
}

// Update edits the own profile; blank answers keep the current values.
func (a *App) Update(ctx context.Context) error {
	acc, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}

	name, err := GetSimpleText(a.reader, fmt.Sprintf("Display name [%s]", acc.Name), a.out)
	if err != nil {
		return err
	}
	username, err := GetSimpleText(a.reader, fmt.Sprintf("Username [%s]", acc.Username), a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("New password (blank keeps the current one)", a.out)
	if err != nil {
		return err
	}

	in := api.AccountInput{ID: acc.ID, Name: acc.Name, Username: acc.Username, Password: password}
	if name != "" {
		in.Name = name
	}
	if username != "" {
		in.Username = username
	}

	updated, err := a.backend.UpdateAccount(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Updated #%d %s (%s)\n", updated.ID, updated.Username, updated.Name)
	if updated.Username != acc.Username {
		a.printf("Username changed; log in again to get a matching token\n")
	}
	return nil
}

func (a *App) Accounts(ctx context.Context) error {
	list, err := a.backend.ListAccounts(ctx)
	if err != nil {
		return err
	}
	for _, acc := range list {
		a.printf("#%d\t%s\t%s\n", acc.ID, acc.Username, acc.Name)
	}
	return nil
}

func (a *App) Avatar(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	acc, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}

	up, err := a.backend.AvatarUpload(ctx, acc.ID)
	if err != nil {
		return err
	}
	if err := a.backend.UploadToPresignedURL(ctx, up.URL, data); err != nil {
		return err
	}
	a.printf("Avatar stored as %s\n", up.Key)
	return nil
}

func (a *App) ListPosts(ctx context.Context, fragment string) error {
	list, err := a.backend.ListPosts(ctx, fragment)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No posts\n")
		return nil
	}
	for _, p := range list {
		a.printf("#%d\t%s\t%s\n", p.ID, p.CreatedAt.Format("2006-01-02 15:04"), p.Title)
	}
	return nil
}

func (a *App) ShowPost(ctx context.Context, id int64) error {
	p, err := a.backend.GetPost(ctx, id)
	if err != nil {
		return err
	}
	a.printf("#%d %s\n%s\n", p.ID, p.Title, p.Text)
	return nil
}

func (a *App) CreatePost(ctx context.Context) error {
	in, err := a.readPost()
	if err != nil {
		return err
	}
	p, err := a.backend.CreatePost(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Created post #%d\n", p.ID)
	return nil
}

func (a *App) EditPost(ctx context.Context, id int64) error {
	in, err := a.readPost()
	if err != nil {
		return err
	}
	p, err := a.backend.UpdatePost(ctx, id, in)
	if err != nil {
		return err
	}
	a.printf("Updated post #%d\n", p.ID)
	return nil
}

func (a *App) DeletePost(ctx context.Context, id int64) error {
	if err := a.backend.DeletePost(ctx, id); err != nil {
		return err
	}
	a.printf("Deleted post #%d\n", id)
	return nil
}

func (a *App) readPost() (api.PostInput, error) {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return api.PostInput{}, err
	}
	text, err := GetMultiline(a.reader, "Text", a.out)
	if err != nil {
		return api.PostInput{}, err
	}
	return api.PostInput{Title: title, Text: text}, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
