package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	AddFood(ctx context.Context) error
	RemoveFood(ctx context.Context, args []string) error
	Recent(ctx context.Context) error
	Summary(ctx context.Context) error
	AddIssue(ctx context.Context) error
	RemoveIssue(ctx context.Context, args []string) error
	Issues(ctx context.Context) error
	Plan(ctx context.Context, args []string) error
	Recognize(ctx context.Context, args []string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// Command failures are printed and the loop goes on; it ends on EOF, on
// "exit"/"quit" or when ctx is cancelled. prompt may be nil for scripted
// (non-terminal) input.
func runREPL(ctx context.Context, a execIface, prompt func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		if prompt != nil {
			fmt.Fprintf(w, "nt %s> ", prompt())
		}

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args, w); err != nil {
			fmt.Fprintln(w, "error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(w, "Available commands: add, rm <id>, recent, summary, issue, unissue <id>, issues, plan [regen], recognize <path|url>, logout, exit")
		} else {
			fmt.Fprintln(w, "Available commands: login [user|token], exit")
		}
		return nil
	case "login":
		return a.Login(ctx, args)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "logout", "add", "rm", "recent", "summary", "issue", "unissue", "issues", "plan", "recognize":
			fmt.Fprintln(w, "Please login first.")
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "add":
		return a.AddFood(ctx)
	case "rm":
		return a.RemoveFood(ctx, args)
	case "recent", "l":
		return a.Recent(ctx)
	case "summary":
		return a.Summary(ctx)
	case "issue":
		return a.AddIssue(ctx)
	case "unissue":
		return a.RemoveIssue(ctx, args)
	case "issues":
		return a.Issues(ctx)
	case "plan":
		return a.Plan(ctx, args)
	case "recognize":
		return a.Recognize(ctx, args)
	default:
		fmt.Fprintln(w, "Unknown command:", cmd)
		return nil
	}
}
