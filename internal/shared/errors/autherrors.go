package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Gate error types. Their Kind is what API clients see in the envelope.
const (
	ErrorTypeMissingToken     ErrorType = "missing_token"
	ErrorTypeMalformedToken   ErrorType = "malformed_token"
	ErrorTypeTokenExpired     ErrorType = "token_expired"
	ErrorTypeInsufficientRole ErrorType = "insufficient_role"
	ErrorTypeInvalidLogin     ErrorType = "invalid_credentials"
)

// AuthError is returned by the authorization gate and the identity client.
type AuthError struct {
	*AppError
	// ShouldLog is false for rejections that are part of normal traffic.
	ShouldLog bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewMissingTokenError is returned when neither a header nor a session carries a token.
func NewMissingTokenError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeMissingToken,
			Message: "Bearer Token is not Valid",
			Code:    http.StatusUnauthorized,
		},
	}
}

// NewMalformedTokenError is returned for an Authorization header that is not "Bearer <token>".
func NewMalformedTokenError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeMalformedToken,
			Message: "Authorization Bearer Token is missing or malformed",
			Code:    http.StatusUnauthorized,
		},
	}
}

// NewTokenExpiredError is returned when introspection reports the token inactive.
func NewTokenExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: "Bearer Token is expired",
			Code:    http.StatusUnauthorized,
		},
	}
}

// NewInsufficientRoleError is returned when an active or inactive token lacks role.
func NewInsufficientRoleError(role string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInsufficientRole,
			Message: fmt.Sprintf("Bearer Token is not related to a %s user", role),
			Code:    http.StatusForbidden,
		},
	}
}

// NewInvalidLoginError is returned when the IDP rejects a username/password or refresh token.
func NewInvalidLoginError(details ...string) *AuthError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidLogin,
			Message: "Invalid credentials",
			Code:    http.StatusBadRequest,
			Details: detail,
		},
	}
}

// NewIntrospectionError wraps a failure talking to the IDP while checking a token.
func NewIntrospectionError(err error) *AuthError {
	return &AuthError{
		AppError:  NewUnexpectedError(err.Error()).WithCause(err),
		ShouldLog: true,
	}
}

// GetAuthError extracts AuthError from error chain (supports wrapped errors via errors.As)
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError reports whether err deserves a log line.
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}
