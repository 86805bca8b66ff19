package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

var errUsage = errors.New("usage")

// execIface is the command surface the REPL and dispatch operate on.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Update(ctx context.Context) error
	Accounts(ctx context.Context) error
	Avatar(ctx context.Context, path string) error
	ListPosts(ctx context.Context, fragment string) error
	ShowPost(ctx context.Context, id int64) error
	CreatePost(ctx context.Context) error
	EditPost(ctx context.Context, id int64) error
	DeletePost(ctx context.Context, id int64) error
}

const (
	guestHelp  = "Available commands: register, login, accounts, posts list|search|show, exit"
	memberHelp = "Available commands: whoami, update, accounts, avatar <file>, posts list|search|show|create|edit|delete, logout, exit"
)

// runREPL reads commands line by line from reader until EOF or exit/quit.
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rs> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				printlnFn(memberHelp)
			} else {
				printlnFn(guestHelp)
			}
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			if derr := dispatch(ctx, a, parts); derr != nil {
				printlnFn("error:", describe(derr))
			}
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}

// dispatch runs a single command given as separate words.
func dispatch(ctx context.Context, a execIface, args []string) error {
	switch args[0] {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "update":
		return a.Update(ctx)
	case "accounts":
		return a.Accounts(ctx)
	case "avatar":
		if len(args) != 2 {
			return fmt.Errorf("%w: avatar <file>", errUsage)
		}
		return a.Avatar(ctx, args[1])
	case "posts":
		return dispatchPosts(ctx, a, args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func dispatchPosts(ctx context.Context, a execIface, args []string) error {
	if len(args) == 0 {
		return a.ListPosts(ctx, "")
	}

	switch args[0] {
	case "list":
		return a.ListPosts(ctx, "")
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("%w: posts search <fragment>", errUsage)
		}
		return a.ListPosts(ctx, strings.Join(args[1:], " "))
	case "create":
		return a.CreatePost(ctx)
	case "show", "edit", "delete":
		if len(args) != 2 {
			return fmt.Errorf("%w: posts %s <id>", errUsage, args[0])
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		switch args[0] {
		case "show":
			return a.ShowPost(ctx, id)
		case "edit":
			return a.EditPost(ctx, id)
		default:
			return a.DeletePost(ctx, id)
		}
	default:
		return fmt.Errorf("unknown posts command: %s", args[0])
	}
}
