package errors

import "fmt"

type ErrorCode string

const (
	ErrUnsupportedAppType   ErrorCode = "UNSUPPORTED_APP_TYPE"
	ErrInvalidAuthorization ErrorCode = "INVALID_AUTHORIZATION"
	ErrInvalidState         ErrorCode = "INVALID_STATE"
	ErrMissingAccessToken   ErrorCode = "MISSING_ACCESS_TOKEN"
	ErrNotConnected         ErrorCode = "NOT_CONNECTED"
	ErrTokenRefreshFailed   ErrorCode = "TOKEN_REFRESH_FAILED"
	ErrRemoteProvider       ErrorCode = "REMOTE_PROVIDER_ERROR"
	ErrNoMeetLink           ErrorCode = "NO_MEET_LINK_RETURNED"
	ErrNotFound             ErrorCode = "NOT_FOUND"
	ErrInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData   ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized         ErrorCode = "UNAUTHORIZED"
	ErrInternalServer       ErrorCode = "INTERNAL_SERVER_ERROR"
)

// AppError carries an application error code together with a human-readable
// message and the wrapped upstream error, if any.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	if ae, ok := err.(*AppError); ok {
		return ae.Code == code
	}
	return false
}
