package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ErrorDetail is the code/message pair inside every error response. The code
// is machine-readable; the message is safe to show a user.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures are
// swallowed: the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto the uniform error envelope. Unknown
// errors become an opaque 500; the detail goes to the log, never the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		writeJSON(w, authStatus(authErr.Code), ErrorResponse{Error: ErrorDetail{
			Code:    authErr.Code,
			Message: authErr.Message(),
		}})
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code:    "validation_error",
			Message: unwrapMessage(err),
		}})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{
			Code:    "not_found",
			Message: "resource not found",
		}})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: ErrorDetail{
			Code:    "forbidden",
			Message: "you are not a collaborator on this trip",
		}})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{
			Code:    "unauthorized",
			Message: "authentication required",
		}})
	default:
		s.deps.Log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code:    "internal_error",
			Message: "An unexpected error occurred. Please try again later.",
		}})
	}
}

// requestError rejects a request before it reaches the service layer (e.g.
// missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
		Code:    "validation_error",
		Message: message,
	}})
}

// authStatus maps an auth error code to its HTTP status.
func authStatus(code string) int {
	switch code {
	case domain.AuthCodeEmailInUse:
		return http.StatusConflict
	case domain.AuthCodeInvalidEmail, domain.AuthCodeWeakPassword:
		return http.StatusUnprocessableEntity
	case domain.AuthCodeUserNotFound:
		return http.StatusNotFound
	case domain.AuthCodeWrongPassword, domain.AuthCodeInvalidCredential:
		return http.StatusUnauthorized
	case domain.AuthCodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.TripService.Create: validation error: name is
// required" → "name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
