package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeUnknownDomain    = "unknown_domain"
	ErrCodeInvalidCount     = "invalid_count"
	ErrCodeInvalidSessionID = "invalid_session_id"

	// Resource errors
	ErrCodeSessionNotFound = "session_not_found"
	ErrCodeNoWeakSpots     = "no_weak_spots"

	// Business logic errors
	ErrCodeSessionStartFailed = "session_start_failed"
	ErrCodeExamStartFailed    = "exam_start_failed"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
