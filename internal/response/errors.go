package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrAuthenticationFailed ErrCode = "AUTHENTICATION_FAILED"
	ErrTokenRequired        ErrCode = "TOKEN_REQUIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrNoDepartmentAssigned ErrCode = "NO_DEPARTMENT_ASSIGNED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrDuplicateKey ErrCode = "DUPLICATE_KEY"

	// ─── Scheduling ────────────────────────────────────────────────────
	ErrRoomConflict    ErrCode = "ROOM_CONFLICT"
	ErrFacultyConflict ErrCode = "FACULTY_CONFLICT"

	// ─── Documents ─────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"
	ErrUploadFailed    ErrCode = "UPLOAD_FAILED"
	ErrFetchFailed     ErrCode = "FETCH_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrAuthenticationFailed:
		return "Authentication failed."
	case ErrTokenRequired:
		return "An authentication token is required."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrNoDepartmentAssigned:
		return "Your account is not assigned to a department."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrDuplicateKey:
		return "A record with this value already exists."

	// ─── Scheduling ────────────────────────────────────────────────────
	case ErrRoomConflict:
		return "This room is already booked for this time slot."
	case ErrFacultyConflict:
		return "This faculty member is already assigned to a class in this time slot."

	// ─── Documents ─────────────────────────────────────────────────────
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Only PDF files are allowed."
	case ErrFileTooLarge:
		return "The file exceeds the size limit."
	case ErrUploadFailed:
		return "Failed to upload the file to storage."
	case ErrFetchFailed:
		return "Failed to fetch the file from storage."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
