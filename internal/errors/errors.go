package errors

import "fmt"

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code, message string, cause ...error) *AppError {
	var c error
	if len(cause) > 0 {
		c = cause[0]
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   c,
	}
}

var (
	ErrConfigNotFound = &AppError{Code: "CONFIG_001", Message: "configuration not found"}
	ErrConfigInvalid  = &AppError{Code: "CONFIG_002", Message: "invalid configuration"}

	ErrProviderNotConfigured = &AppError{Code: "LLM_001", Message: "no LLM provider configured"}
	ErrProviderUnavailable   = &AppError{Code: "LLM_002", Message: "LLM provider unavailable"}
	ErrEmptyCompletion       = &AppError{Code: "LLM_003", Message: "empty completion from provider"}

	ErrEmptyName     = &AppError{Code: "SCHED_001", Message: "medication name is empty"}
	ErrBadTime       = &AppError{Code: "SCHED_002", Message: "scheduled time is not a valid HH:MM clock time"}
	ErrNoDates       = &AppError{Code: "SCHED_003", Message: "no target dates for entry"}
	ErrEntryNotFound = &AppError{Code: "SCHED_004", Message: "medication entry not found"}

	ErrConversationNotFound = &AppError{Code: "CONV_001", Message: "conversation not found"}
	ErrEmptyTranscript      = &AppError{Code: "CONV_002", Message: "transcript has no user turn"}

	ErrProfileNotFound = &AppError{Code: "PROF_001", Message: "profile not found"}

	ErrNotFound   = &AppError{Code: "GEN_001", Message: "resource not found"}
	ErrBadRequest = &AppError{Code: "GEN_002", Message: "bad request"}
	ErrInternal   = &AppError{Code: "GEN_003", Message: "internal error"}
)

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}
