// Package middleware provides gin middleware for the HTTP surface:
// CORS for the desktop shell and per-IP rate limiting.
package middleware
