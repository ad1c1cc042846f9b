package identity

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "fleetdesk/internal/shared/errors"
)

type providerError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorMessage     string `json:"errorMessage"`
}

// statusError maps a provider response status to the error taxonomy.
func statusError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var pe providerError
	if err := json.Unmarshal(body, &pe); err == nil {
		switch {
		case pe.ErrorMessage != "":
			msg = pe.ErrorMessage
		case pe.ErrorDescription != "":
			msg = pe.ErrorDescription
		case pe.Error != "":
			msg = pe.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch status {
	case http.StatusNotFound:
		return apperrors.NewNotFoundError(msg)
	case http.StatusConflict:
		return apperrors.NewIntegrityError(msg, map[string][]string{"identity": {msg}})
	case http.StatusBadRequest:
		return apperrors.NewValidationError(msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		// The service account itself was refused: a deployment problem.
		return apperrors.NewUnexpectedError(fmt.Sprintf("identity provider refused the service account: %s", msg))
	default:
		return apperrors.NewInternalError(fmt.Sprintf("identity provider returned status %d", status), msg)
	}
}

func mapTransportError(err error) error {
	return apperrors.NewUnexpectedError("identity provider is unreachable").WithCause(err)
}
