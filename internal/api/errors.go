package api

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "bad request"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "unauthorized"}
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "not found"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "internal server error"}

	// ErrQuotaExceeded is the user-facing daily-cap outcome. Not an infra
	// error: the user is told to come back tomorrow.
	ErrQuotaExceeded = &AppError{
		Code:    http.StatusTooManyRequests,
		Message: "오늘은 공개 테스트 사용량이 모두 소진되었습니다. 내일 다시 이용해주세요.",
	}

	// ErrQuotaUnavailable is the fail-closed outcome when the counter store
	// is unreachable in prod. Deliberately vague: no internal detail leaks.
	ErrQuotaUnavailable = &AppError{
		Code:    http.StatusServiceUnavailable,
		Message: "서비스 점검 중입니다. 잠시 후 다시 시도해주세요.",
	}
)

func NewBadRequestError(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg}
}

func NewValidationError(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg}
}

func HandleError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		JSONErrorMessage(w, appErr.Code, appErr.Message)
		return
	}
	JSONErrorMessage(w, http.StatusInternalServerError, "internal server error")
}
