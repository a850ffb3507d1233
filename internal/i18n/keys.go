package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyInvalidCredentials indicates invalid staff login credentials.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyQuoteNotFound indicates the quote id is unknown.
	ErrKeyQuoteNotFound = "error.quote_not_found"
	// ErrKeyInvalidStatus indicates an unknown quote status.
	ErrKeyInvalidStatus = "error.invalid_status"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyServiceUnavailable indicates the quote store is unavailable.
	ErrKeyServiceUnavailable = "error.service_unavailable"
	// ErrKeyExportFailed indicates the PDF could not be rendered.
	ErrKeyExportFailed = "error.export_failed"
)

// Success message translation keys.
const (
	SuccessKeyQuoteCreated  = "success.quote_created"
	SuccessKeyStatusUpdated = "success.status_updated"
	SuccessKeyQuoteDeleted  = "success.quote_deleted"
)

// Form message keys, shown by form hosts after submit and export.
const (
	// FormKeySubmitted takes the quote id as its single argument.
	FormKeySubmitted      = "form.submitted"
	FormKeyRejected       = "form.rejected"
	FormKeyUnreachable    = "form.unreachable"
	FormKeyInvalidDraft   = "form.invalid_draft"
	FormKeyExported       = "form.exported"
	FormKeyExportFailed   = "form.export_failed"
	FormKeySubmitInFlight = "form.submit_in_flight"
)
