package common

import (
	"encoding/json"
	"net/http"
	"vidtube-api/logger"

	"github.com/sirupsen/logrus"
)

// ErrorKind is a stable machine-readable classification of an AppError.
// The transport layer maps each kind to an HTTP status in one place.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindConflict       ErrorKind = "conflict"
	KindNotFound       ErrorKind = "not_found"
	KindAuth           ErrorKind = "auth"
	KindInfrastructure ErrorKind = "infrastructure"
)

type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(kind ErrorKind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewValidationError(message string) *AppError {
	return NewAppError(KindValidation, http.StatusBadRequest, message, nil)
}

func NewConflictError(message string) *AppError {
	return NewAppError(KindConflict, http.StatusConflict, message, nil)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(KindNotFound, http.StatusNotFound, message, nil)
}

// NewAuthError covers every credential and token failure. Callers must not
// reveal which check failed, so the message stays generic.
func NewAuthError(err error) *AppError {
	return NewAppError(KindAuth, http.StatusUnauthorized, "Unauthorized request", err)
}

func NewInfrastructureError(message string, err error) *AppError {
	return NewAppError(KindInfrastructure, http.StatusInternalServerError, message, err)
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"kind":           e.Kind,
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
