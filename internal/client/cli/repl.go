package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	News(ctx context.Context) error
	Category(ctx context.Context, name string) error
	Read(ctx context.Context, arg string) error
	Back(ctx context.Context) error
	Share(ctx context.Context) error
	Save(ctx context.Context) error
	Saved(ctx context.Context) error
	Unsave(ctx context.Context, arg string) error
	Dashboard(ctx context.Context) error
	Settings(ctx context.Context) error
	Stats(ctx context.Context) error
	Open(ctx context.Context, path string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The first token is the command, the rest its argument. The loop exits on
// EOF, on "exit"/"quit" or when ctx is cancelled.
//
//	Signed out:
//	  help, login, signup, open <path>, exit
//
//	Signed in:
//	  news, category <name>, read <n>, back, share, save, saved,
//	  unsave <n>, dashboard, settings, stats, open <path>, whoami,
//	  logout, exit
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("nd> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if cmd == "help" {
			printlnFn(helpText(a.isLoggedIn()))
			continue
		}

		if cerr := dispatch(ctx, a, cmd, arg); cerr != nil {
			printlnFn("Error:", api.Message(cerr))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd, arg string) error {
	switch cmd {
	case "login":
		return a.Login(ctx)
	case "signup", "register":
		return a.Signup(ctx)
	case "open":
		return a.Open(ctx, arg)
	}

	if !a.isLoggedIn() {
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "news", "refresh":
		return a.News(ctx)
	case "category", "c":
		return a.Category(ctx, arg)
	case "read", "r":
		return a.Read(ctx, arg)
	case "back", "b":
		return a.Back(ctx)
	case "share":
		return a.Share(ctx)
	case "save":
		return a.Save(ctx)
	case "saved":
		return a.Saved(ctx)
	case "unsave":
		return a.Unsave(ctx, arg)
	case "dashboard":
		return a.Dashboard(ctx)
	case "settings":
		return a.Settings(ctx)
	case "stats":
		return a.Stats(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

func (a *App) printError(err error) {
	fmt.Fprintln(a.out, "Error:", api.Message(err))
}
