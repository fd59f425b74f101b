package hemis

import "errors"

// Error taxonomy for the federation layer. Handlers match these with
// errors.Is to pick a status code; everything else is a 500.
var (
	// ErrInvalidInput indicates a malformed student identifier. Raised
	// locally, before any network call.
	ErrInvalidInput = errors.New("invalid student id format")
	// ErrInvalidCredentials indicates the remote rejected the login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound indicates the identifier is absent from the roster.
	ErrNotFound = errors.New("student not found")
	// ErrTokenExpired indicates the remote no longer accepts the token.
	ErrTokenExpired = errors.New("token expired")
	// ErrRemoteUnavailable covers network errors, timeouts and
	// unexpected non-2xx responses.
	ErrRemoteUnavailable = errors.New("hemis unavailable")
	// ErrMalformedResponse indicates the remote payload is missing the
	// expected shape. Surfaced, never silently defaulted.
	ErrMalformedResponse = errors.New("malformed hemis response")
)
