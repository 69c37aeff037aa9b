package service

import "errors"

// Sentinel errors shared by the services. Handlers map these to HTTP
// statuses; everything else is a 500.
var (
	// ErrForbidden: the authenticated identity lacks authority for the
	// operation. Never retried, always surfaced.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound: the referenced document or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBlobMissing: document metadata exists but the backing blob is gone.
	// Surfaced to the caller as a not-found, but logged separately: it means
	// orphaned metadata or a lost file, not a bad request.
	ErrBlobMissing = errors.New("document blob missing")

	// ErrUnknownRole: a role string outside the closed role set.
	ErrUnknownRole = errors.New("unknown role")

	// ErrInvalidInput: malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLoginTaken / ErrEmailTaken: registration uniqueness conflicts.
	ErrLoginTaken = errors.New("username already taken")
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials: bad username/password pair at login.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
