// Package client contains the client-side building blocks for talking to the
// smartmeet backend.
//
// # Overview
//
//  1. Client, a transport-agnostic contract covering the identity endpoints
//     (Login, Register, Me), the health check (Ping), meetings and action
//     items. Calls made on behalf of a user take the bearer token explicitly;
//     the client itself holds no session.
//  2. HTTPClient, the HTTP/JSON implementation. Login and CreateMeeting send
//     form bodies, Register sends JSON.
//  3. InitDatabase and RunMigrations, which open the local SQLite database
//     and apply the embedded goose migrations.
//
// # Error Handling
//
// Error responses become *APIError, whose Detail is the server's message as
// sent. 401 and 403 match ErrUnauthorized with errors.Is. Transport failures
// wrap ErrUnavailable. Nothing is retried.
package client
