// Package auth implements the session token service and the request
// authorization layer.
//
// Tokens are opaque 40-character strings stored on the owning account row
// with an absolute expiry. Issuing a token overwrites the previous one, so
// each account has at most one live session. Resolution probes the account
// tables in a fixed order (user, publisher, admin); a token only ever
// matches the table it was issued against.
package auth
