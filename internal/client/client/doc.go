// Package client is the network side of the influence client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the
//     ProfileService backend: Login, Ping, Emit, UploadPhoto and the
//     Subscribe stream of profiles_updated snapshots.
//  2. A gRPC implementation (see GRPCClient) that manages the connection,
//     injects the operator access token via interceptors, logs in again
//     when the token expires and maps gRPC status codes to sentinel errors.
//  3. An Outbox that turns session edits into create_profile,
//     update_profile and delete_profile events and sends them in order
//     from a single goroutine, fire-and-forget.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNoUploadID.
package client
