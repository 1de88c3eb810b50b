package constants

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// PageSizeAll asks list queries for every matching row.
	PageSizeAll = -1

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Gin context keys set by the auth middleware.
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyUserRole = "user_role"

	ContextKeyRequestID = "request_id"

	TableIssues         = "issues"
	TableComments       = "issue_comments"
	TableAttachments    = "attachments"
	TableSystemSettings = "system_settings"

	ErrMsgInternalServerError = "Internal server error occurred"
)
