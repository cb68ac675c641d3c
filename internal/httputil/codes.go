package httputil

// Machine-readable error codes returned alongside human-readable messages.
// Clients branch on these instead of parsing message text.
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"

	CodeMissingAuth       = "MISSING_AUTH"
	CodeInvalidAuthHeader = "INVALID_AUTH_HEADER"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeTokenExpired      = "TOKEN_EXPIRED"

	CodeNotFound        = "NOT_FOUND"
	CodeInvalidResponse = "INVALID_RESPONSE"
	CodeInternalError   = "INTERNAL_ERROR"
)
