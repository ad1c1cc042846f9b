package constants

const (
	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyRequestID = "request_id"

	// Flash levels shown by the UI
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "danger"

	// API prefix
	APIPrefix = "/api/v1"

	// Table names
	TableComputers = "computers"
	TableEntries   = "entries"
	TableOperators = "operators"
	TableTickets   = "tickets"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgSessionExpired      = "Session Expired, Please Login Again"
)
