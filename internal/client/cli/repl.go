package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Refresh(ctx context.Context) error
	Validate(ctx context.Context) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help         show available commands
//	  - login        sign in
//	  - status       print session state
//	  - exit | quit  leave the program
//
//	Logged in:
//	  - help         show available commands
//	  - dashboard    show the current user
//	  - refresh      reload the user from the identity API
//	  - validate     check the stored token
//	  - status       print session state
//	  - logout       forget the token
//	  - exit | quit  leave the program
//
// Errors returned by command handlers are not fatal; handlers report them
// to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("yl%s> ", prefixed(statusFn())))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, refresh, validate, status, logout, exit")
			} else {
				printlnFn("Available commands: login, status, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "validate":
			_ = a.Validate(ctx)

		case "status":
			_ = a.Status(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}

func prefixed(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
