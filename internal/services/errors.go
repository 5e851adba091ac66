package services

import (
	"errors"
	"fmt"

	"github.com/colibri-edu/content-service/internal/repositories"
)

// ErrorKind partitions service failures; handlers map each kind to one HTTP
// status.
type ErrorKind int

const (
	ErrorInternal ErrorKind = iota
	ErrorValidation
	ErrorNotFound
	ErrorConflict
	ErrorForeignKey
	ErrorUnauthorized
	ErrorPermission
)

// ServiceError carries the user-facing message (Spanish, like the rest of the
// API) and the wrapped cause for logs.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *ServiceError {
	return &ServiceError{Kind: ErrorValidation, Message: message}
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: ErrorNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: ErrorConflict, Message: message}
}

func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{Kind: ErrorUnauthorized, Message: message}
}

func NewPermissionError(message string) *ServiceError {
	return &ServiceError{Kind: ErrorPermission, Message: message}
}

func NewInternalError(message string, err error) *ServiceError {
	return &ServiceError{Kind: ErrorInternal, Message: message, Err: err}
}

// FromRepositoryError folds a classified store failure into the taxonomy.
// notFoundMessage personalizes the 404 ("Grado no encontrado", ...); the other
// categories keep their generic Spanish messages.
func FromRepositoryError(err error, notFoundMessage string) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	switch {
	case repositories.IsNotFound(err):
		return &ServiceError{Kind: ErrorNotFound, Message: notFoundMessage, Err: err}
	case repositories.IsDuplicate(err):
		return &ServiceError{Kind: ErrorConflict, Message: "Registro duplicado", Err: err}
	case repositories.IsForeignKey(err):
		return &ServiceError{Kind: ErrorForeignKey, Message: "Violación de clave foránea", Err: err}
	case errors.Is(err, repositories.ErrNotNull):
		return &ServiceError{Kind: ErrorValidation, Message: "Campo obligatorio faltante", Err: err}
	case errors.Is(err, repositories.ErrInvalidInput):
		return &ServiceError{Kind: ErrorValidation, Message: "Formato de datos inválido", Err: err}
	case errors.Is(err, repositories.ErrUnknownTable):
		return &ServiceError{Kind: ErrorNotFound, Message: "Tabla no encontrada", Err: err}
	case errors.Is(err, repositories.ErrColumnNotAllowed):
		return &ServiceError{Kind: ErrorValidation, Message: "Columna no permitida", Err: err}
	default:
		return &ServiceError{Kind: ErrorInternal, Message: "Error interno del servidor", Err: err}
	}
}

// KindOf extracts the error kind, defaulting to internal.
func KindOf(err error) ErrorKind {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ErrorInternal
}

// IsNotFoundError reports whether err is a not-found service error.
func IsNotFoundError(err error) bool {
	return KindOf(err) == ErrorNotFound
}

// UserMessage returns the user-facing message for err.
func UserMessage(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return "Error interno del servidor"
}
