// Package cli provides the interactive login client.
//
// It wires configuration, local session storage, the identity client and
// the session store, then runs a small REPL. On start the persisted token
// is restored; with a token the dashboard is shown, otherwise the user is
// asked to log in.
//
// Commands:
//   - login     prompt for email and password and sign in
//   - dashboard show the current user
//   - refresh   look the user up again
//   - validate  check the stored token against the identity API
//   - status    print the session state
//   - logout    forget the token
//   - exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
