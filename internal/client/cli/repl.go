package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL needs. *App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Meetings(ctx context.Context) error
	Meeting(ctx context.Context, id string) error
	NewMeeting(ctx context.Context) error
	Tasks(ctx context.Context, status string) error
}

const (
	helpAnonymous = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: whoami, meetings, meeting <id>, newmeeting, tasks [status], logout, help, exit"
)

// runREPL reads commands from reader until EOF, "exit"/"quit" or ctx is
// done, and dispatches them to a.
//
// Commands:
//
//	help                 list the commands available in the current state
//	register             create an account and log into it
//	login                open a session
//	logout               drop the session (local only)           [session]
//	whoami               show the current user                    [session]
//	meetings, ls         list meetings, newest first              [session]
//	meeting, show <id>   show a meeting and its action items      [session]
//	newmeeting           create a meeting                         [session]
//	tasks [status]       list action items, optionally by status  [session]
//	exit, quit           leave the REPL
//
// Commands marked [session] are refused while logged out. Handler errors are
// reported by the handlers themselves.
//
// The reader is shared with the prompts of the command handlers, so lines
// are read one at a time and nothing is buffered ahead. Waiting for a
// command returns as soon as ctx is done (Ctrl-C); prompts inside a command
// still wait for their line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "smartmeet %s> ", statusFn())
		line, err := readLine(ctx, reader)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintln(w)
			return
		}
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsSession(cmd) && !a.isLoggedIn() {
			fmt.Fprintln(w, "You must be logged in to use", cmd)
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpAnonymous)
			}
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "meetings", "ls":
			_ = a.Meetings(ctx)
		case "meeting", "show":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: meeting <id>")
				continue
			}
			_ = a.Meeting(ctx, args[0])
		case "newmeeting":
			_ = a.NewMeeting(ctx)
		case "tasks":
			status := ""
			if len(args) > 0 {
				status = args[0]
			}
			_ = a.Tasks(ctx, status)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one line, giving up when ctx is done. An abandoned read
// keeps its goroutine until the reader returns; the REPL exits right after,
// so the reader is never used again.
func readLine(ctx context.Context, reader *bufio.Reader) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := reader.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case r := <-ch:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func needsSession(cmd string) bool {
	switch cmd {
	case "logout", "whoami", "meetings", "ls", "meeting", "show", "newmeeting", "tasks":
		return true
	}
	return false
}
