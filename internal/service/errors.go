package service

import (
	"fmt"
	"net/http"
)

// APIError standardizes user-visible request failures. Message is the
// human-readable text surfaced in the response body; Code is an optional
// machine-readable tag.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

func newValidationError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// ErrNotSignedIn is returned when a request requires a verified identity
// and none is attached.
var ErrNotSignedIn = &APIError{Status: http.StatusUnauthorized, Message: "Not signed in."}

var (
	errSignupFieldsRequired = newValidationError("First name, last name, email, password, confirm password, and portal are required.")
	errLoginFieldsRequired  = newValidationError("Email, password, and portal are required.")
	errInvalidPortal        = newValidationError(`Invalid portal. Use "client" or "broker".`)
	errPasswordMismatch     = newValidationError("Passwords do not match.")
	errPasswordTooShort     = newValidationError("Password must be at least 6 characters.")
	errEmptyFields          = newValidationError("First name, last name, and email cannot be empty.")

	errEmailExists = &APIError{
		Status:  http.StatusConflict,
		Code:    "EMAIL_EXISTS",
		Message: "An account with this email already exists for this portal.",
	}

	// Wrong password and unknown email collapse to the same error so the
	// caller cannot probe which (email, portal) pairs are registered.
	errInvalidCredentials = &APIError{
		Status:  http.StatusUnauthorized,
		Message: "Invalid email or password for this portal.",
	}

	errUserNotFound = &APIError{
		Status:  http.StatusUnauthorized,
		Message: "User not found.",
	}
)
