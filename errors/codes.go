package errors

// ErrorCode identifies a class of application error. The numeric value is
// what clients receive in the "code" field of an error response.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1
	ErrorCode_INVALID_ARGUMENT ErrorCode = 2
	ErrorCode_NOT_FOUND        ErrorCode = 3
	ErrorCode_UNAUTHENTICATED  ErrorCode = 4
	ErrorCode_CONFIGURATION    ErrorCode = 5

	// Audio input validation
	ErrorCode_UNSUPPORTED_FORMAT  ErrorCode = 100
	ErrorCode_INCOMPATIBLE_FORMAT ErrorCode = 101

	// Upstream AI services
	ErrorCode_UPSTREAM_FAILURE    ErrorCode = 200
	ErrorCode_MALFORMED_RESPONSE  ErrorCode = 201
	ErrorCode_UPSTREAM_RATE_LIMIT ErrorCode = 202

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 300
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 301

	// Database
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 400
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 401
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_CONFIGURATION:              "CONFIGURATION",
	ErrorCode_UNSUPPORTED_FORMAT:         "UNSUPPORTED_FORMAT",
	ErrorCode_INCOMPATIBLE_FORMAT:        "INCOMPATIBLE_FORMAT",
	ErrorCode_UPSTREAM_FAILURE:           "UPSTREAM_FAILURE",
	ErrorCode_MALFORMED_RESPONSE:         "MALFORMED_RESPONSE",
	ErrorCode_UPSTREAM_RATE_LIMIT:        "UPSTREAM_RATE_LIMIT",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:       "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
