// Package cli provides the interactive influence command-line client.
//
// It wires configuration, the snapshot cache, the gRPC link and the session
// state into a REPL. Observers follow the board read-only; the operator
// (started with -gm) logs in with the passphrase and may create, edit,
// reveal and delete profiles.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
