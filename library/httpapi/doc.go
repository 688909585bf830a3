// Package httpapi exposes the borrow desk over HTTP.
//
// Routes are served by gin, requests are authenticated with HS256 bearer tokens carrying
// the claims "sub" and "role", and JSON bodies are checked with go-playground/validator.
// Domain error kinds map to status codes in one place, see writeError.
package httpapi
