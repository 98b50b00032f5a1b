package domain

import "fmt"

// Auth error codes. The codes are the contract with the frontend, which keys
// its own copy of the message table on them; the messages here are the
// user-facing strings served when the client does not translate.
const (
	AuthCodeEmailInUse          = "auth/email-already-in-use"
	AuthCodeInvalidEmail        = "auth/invalid-email"
	AuthCodeWeakPassword        = "auth/weak-password"
	AuthCodeUserNotFound        = "auth/user-not-found"
	AuthCodeWrongPassword       = "auth/wrong-password"
	AuthCodeNetworkFailed       = "auth/network-request-failed"
	AuthCodeTooManyRequests     = "auth/too-many-requests"
	AuthCodeInvalidCredential   = "auth/invalid-credential"
	AuthCodeUserDisabled        = "auth/user-disabled"
	AuthCodeRecentLoginNeeded   = "auth/requires-recent-login"
	AuthCodeOperationNotAllowed = "auth/operation-not-allowed"
)

// authMessages is the fixed code→message table. Unrecognized codes fall back
// to the generic default.
var authMessages = map[string]string{
	AuthCodeEmailInUse:          "This email is already in use. Please use a different email.",
	AuthCodeInvalidEmail:        "Invalid email address. Please check your email.",
	AuthCodeWeakPassword:        "Password is too weak. Please use a stronger password (at least 6 characters).",
	AuthCodeUserNotFound:        "No account found with this email. Please sign up first.",
	AuthCodeWrongPassword:       "Incorrect password. Please try again.",
	AuthCodeOperationNotAllowed: "Email/Password authentication is not enabled. Please contact support.",
	AuthCodeNetworkFailed:       "Network error. Please check your internet connection and try again.",
	AuthCodeTooManyRequests:     "Too many attempts. Please try again later.",
	AuthCodeInvalidCredential:   "Invalid credentials. Please check your email and password.",
	AuthCodeUserDisabled:        "This account has been disabled. Please contact support.",
	AuthCodeRecentLoginNeeded:   "This operation requires recent authentication. Please log in again.",
}

// AuthDefaultMessage is served for any code missing from the table.
const AuthDefaultMessage = "An unexpected error occurred. Please try again later."

// AuthError is an authentication failure classified by a fixed code.
type AuthError struct {
	Code string
}

// NewAuthError returns an AuthError carrying the given code.
func NewAuthError(code string) *AuthError {
	return &AuthError{Code: code}
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Code)
}

// Message returns the user-facing string for the error's code, falling back
// to the generic default for unrecognized codes.
func (e *AuthError) Message() string {
	if msg, ok := authMessages[e.Code]; ok {
		return msg
	}
	return AuthDefaultMessage
}
