// Package errors provides the structured error type shared by resource
// providers. Every failure surfaced by a provider is an *AppError carrying a
// machine-readable ErrorCode, so callers can branch with HasCode instead of
// matching message text.
package errors
