package google

import "fmt"

// AuthError indicates that credentials could not be loaded or that no
// authenticated session could be constructed from them. It wraps the
// underlying cause and records where the credentials came from.
type AuthError struct {
	// Source describes the credential origin ("file:/path/to/key.json" or
	// "env:GOOGLE_SERVICE_ACCOUNT_CREDENTIALS").
	Source string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}
	return fmt.Sprintf("authentication failed (%s): %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// newAuthError wraps err as an AuthError for the given credential source.
func newAuthError(source string, err error) *AuthError {
	return &AuthError{Source: source, Err: err}
}
