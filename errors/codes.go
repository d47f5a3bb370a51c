package errors

// ErrorCode identifies an error category for clients and logs
type ErrorCode string

const (
	// General
	ErrorCode_INTERNAL          ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT  ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND         ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS    ErrorCode = "ALREADY_EXISTS"
	ErrorCode_PERMISSION_DENIED ErrorCode = "PERMISSION_DENIED"
	ErrorCode_FORBIDDEN         ErrorCode = "FORBIDDEN"
	ErrorCode_INVALID_PAYLOAD   ErrorCode = "INVALID_PAYLOAD"
	ErrorCode_HTTP_OK           ErrorCode = "OK"

	// Meetings
	ErrorCode_MEETING_NOT_FOUND       ErrorCode = "MEETING_NOT_FOUND"
	ErrorCode_MEETING_ALREADY_EXISTS  ErrorCode = "MEETING_ALREADY_EXISTS"
	ErrorCode_MEETING_INVALID_STATE   ErrorCode = "MEETING_INVALID_STATE"
	ErrorCode_MEETING_CREATION_FAILED ErrorCode = "MEETING_CREATION_FAILED"

	// Analysis pipeline
	ErrorCode_ANALYSIS_NOT_FOUND     ErrorCode = "ANALYSIS_NOT_FOUND"
	ErrorCode_ANALYSIS_FAILED        ErrorCode = "ANALYSIS_FAILED"
	ErrorCode_ANALYSIS_JOB_NOT_FOUND ErrorCode = "ANALYSIS_JOB_NOT_FOUND"
	ErrorCode_MISSING_ARTIFACT       ErrorCode = "MISSING_ARTIFACT"
	ErrorCode_ARTIFACT_FETCH_FAILED  ErrorCode = "ARTIFACT_FETCH_FAILED"
	ErrorCode_UNKNOWN_COMPONENT      ErrorCode = "UNKNOWN_COMPONENT"

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = "INTEGRATION_STORAGE_FAILED"
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = "INTEGRATION_CACHE_FAILED"
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = "INTEGRATION_EXTERNAL_API_FAILED"

	// Database
	ErrorCode_DB_CONNECTION_FAILED    ErrorCode = "DB_CONNECTION_FAILED"
	ErrorCode_DB_QUERY_FAILED         ErrorCode = "DB_QUERY_FAILED"
	ErrorCode_DB_TRANSACTION_FAILED   ErrorCode = "DB_TRANSACTION_FAILED"
	ErrorCode_DB_CONSTRAINT_VIOLATION ErrorCode = "DB_CONSTRAINT_VIOLATION"
)

// String returns the code as a string
func (c ErrorCode) String() string {
	return string(c)
}
