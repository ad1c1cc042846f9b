package errors

import (
	"errors"

	"gorm.io/gorm"
)

// Classify maps any error to the AppError that is reported to the client.
// Errors it does not recognise become an opaque internal error.
func Classify(err error) *AppError {
	if appErr := GetAppError(err); appErr != nil {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("Resource not found").WithCause(err)
	}
	if integrity := FromDatabase(err); integrity != nil {
		return integrity
	}
	return NewInternalError("Internal server error occurred").WithCause(err)
}
