package errors

// Kind names shown to API clients in the error envelope.
const (
	KindValue          = "Value Error"
	KindNotFound       = "Not Found"
	KindIntegrity      = "Integrity Error"
	KindAuthentication = "Authentication Error"
	KindAuthorization  = "Authorization Error"
	KindUnexpected     = "Unexpected Error"
	KindInternal       = "Internal Error"
	KindRateLimit      = "Rate Limit Error"
)

// Kind maps an error type to its client-facing kind.
func (t ErrorType) Kind() string {
	switch t {
	case ErrorTypeValidation, ErrorTypeBadRequest, ErrorTypeInvalidLogin:
		return KindValue
	case ErrorTypeNotFound:
		return KindNotFound
	case ErrorTypeIntegrity:
		return KindIntegrity
	case ErrorTypeMissingToken, ErrorTypeUnauthorized:
		return KindAuthentication
	case ErrorTypeMalformedToken, ErrorTypeTokenExpired, ErrorTypeInsufficientRole, ErrorTypeForbidden:
		return KindAuthorization
	case ErrorTypeUnexpected:
		return KindUnexpected
	case ErrorTypeRateLimited:
		return KindRateLimit
	default:
		return KindInternal
	}
}
