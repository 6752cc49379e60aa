package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")

	// Authentication sentinels. ErrInvalidToken covers every token failure
	// mode: bad signature, malformed input, wrong algorithm, expired, or no
	// token at all. ErrUnknownUser stays distinct from ErrInvalidToken only
	// during session resolution; the login path folds it into a generic
	// ErrUnauthorized so callers cannot enumerate accounts.
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingSubject     = errors.New("token missing subject")
	ErrUnknownUser        = errors.New("unknown user")
	ErrBackendUnavailable = errors.New("backend unavailable")
)
