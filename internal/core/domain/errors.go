package domain

import "errors"

// Lookup and input failures. Stores return ErrNotFound for an absent record;
// services wrap ErrInvalidInput with the offending field.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented is returned when an optional capability, such as
	// watching the config file, is missing from the wired adapter.
	ErrNotImplemented = errors.New("not implemented")

	// ErrSearchUnavailable means the field has no service to search with.
	ErrSearchUnavailable = errors.New("search unavailable")
)

// Sign-in failures.
var (
	// ErrAuthRequired: no session, and the call needs one.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired: the identity token is stale and refreshing it failed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrAuthInvalid: the provider or Rocket Fuel rejected the exchange.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrReauthenticationFailed wraps the cause of a failed recovery from a
	// 401. The session is already cleared by the time callers see it.
	ErrReauthenticationFailed = errors.New("re-authentication failed")

	// ErrAuthCancelled: the user closed or declined the browser consent.
	ErrAuthCancelled = errors.New("authentication cancelled")
)
