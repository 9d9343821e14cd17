// Package cli provides the interactive smartmeet command-line client.
//
// It wires configuration, the local session store, the API client and an
// interactive REPL. Typical flow: show the cached user as a hint, revalidate
// the stored session, start a background connectivity watcher, then execute
// user commands until exit.
//
// Commands:
//   - register / login / logout / whoami
//   - meetings, meeting <id>, newmeeting
//   - tasks [status]
//
// The REPL is started with App.Run(ctx), which blocks until the user exits.
package cli
