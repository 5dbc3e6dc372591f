package errors

import (
	"fmt"
	"net/http"
)

// IssueError represents a failure in the token issuance pipeline. The
// Summary field is the human-readable category echoed to callers; Detail
// carries operator-facing context and is only exposed when the server runs
// with debug errors enabled.
type IssueError struct {
	Code    string `json:"code"`
	Summary string `json:"error"`
	Detail  string `json:"message,omitempty"`
}

func (e *IssueError) Error() string {
	if e.Detail == "" {
		return e.Summary
	}
	return fmt.Sprintf("%s: %s", e.Summary, e.Detail)
}

// HTTPStatus maps the error category to the response status code:
// client input problems are 400, credential mismatches 401, and any
// server-side key or signing failure 500.
func (e *IssueError) HTTPStatus() int {
	switch e.Code {
	case MissingParameters:
		return http.StatusBadRequest
	case AuthenticationFailed:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Stable machine codes for the issuance error taxonomy.
const (
	MissingParameters    = "missing_parameters"
	AuthenticationFailed = "authentication_failed"
	KeyNotConfigured     = "key_not_configured"
	KeyFileMissing       = "key_file_missing"
	SigningError         = "signing_error"
)

// Common error constructors
func NewMissingParameters(detail string) *IssueError {
	return &IssueError{
		Code:    MissingParameters,
		Summary: "Missing parameters",
		Detail:  detail,
	}
}

func NewAuthenticationFailed() *IssueError {
	return &IssueError{
		Code:    AuthenticationFailed,
		Summary: "Authentication failed",
		Detail:  "organization id or access code is incorrect",
	}
}

func NewKeyNotConfigured() *IssueError {
	return &IssueError{
		Code:    KeyNotConfigured,
		Summary: "Signing key not configured",
		Detail: "no signing key found: set SIGNING_KEY_FILE to a PEM file, " +
			"set SIGNING_KEY to an inline key, or place a key at one of the default paths",
	}
}

func NewKeyFileMissing(path string) *IssueError {
	return &IssueError{
		Code:    KeyFileMissing,
		Summary: "Signing key file missing",
		Detail:  fmt.Sprintf("configured signing key file does not exist: %s", path),
	}
}

func NewSigningError(cause error) *IssueError {
	return &IssueError{
		Code:    SigningError,
		Summary: "Signing error",
		Detail:  fmt.Sprintf("signing primitive rejected the key material: %v", cause),
	}
}
