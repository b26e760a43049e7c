package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	// Err is the underlying cause, if any
	Err error `json:"-"`

	base *AppError
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// User-facing messages shared by forms and imports.
const (
	MsgRequiredField      = "Questo campo è obbligatorio"
	MsgInvalidEmail       = "Email non valida"
	MsgInvalidPartitaIVA  = "Partita IVA non valida (11 cifre)"
	MsgInvalidCodFiscale  = "Codice Fiscale non valido"
	MsgGenericError       = "Si è verificato un errore. Riprova."
	MsgEmptyCart          = "Aggiungi almeno un prodotto all'ordine"
	MsgInvalidTransition  = "Transizione di stato non consentita"
	MsgDiscountOutOfRange = "Sconto non valido"
)

// Common errors
var (
	ErrNotFound          = &AppError{Code: http.StatusNotFound, Message: "Risorsa non trovata"}
	ErrBadRequest        = &AppError{Code: http.StatusBadRequest, Message: "Richiesta non valida"}
	ErrInternalServer    = &AppError{Code: http.StatusInternalServerError, Message: MsgGenericError}
	ErrConflict          = &AppError{Code: http.StatusConflict, Message: "Risorsa già esistente"}
	ErrUnprocessable     = &AppError{Code: http.StatusUnprocessableEntity, Message: "Dati non elaborabili"}
	ErrInvalidTransition = &AppError{Code: http.StatusUnprocessableEntity, Message: MsgInvalidTransition}
	ErrTooManyRequests   = &AppError{Code: http.StatusTooManyRequests, Message: "Troppe richieste, riprova più tardi"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WithDetail returns a copy of e with detail appended to the message.
// Sentinels stay untouched; errors.Is still matches the copy.
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Message = e.Message + ": " + detail
	cp.base = e.root()
	return &cp
}

func (e *AppError) root() *AppError {
	if e.base != nil {
		return e.base
	}
	return e
}

// Is reports whether target is the sentinel e was derived from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t == e.root()
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validazione non riuscita",
		Errors:  fieldErrors,
		base:    ErrUnprocessable,
	}
}

// NewFieldError is shorthand for a validation error on a single field.
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " non trovato",
		base:    ErrNotFound,
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
		base:    ErrConflict,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
		base:    ErrBadRequest,
	}
}

// NewInternalError wraps an unexpected failure. The cause is kept for logging
// and never shown to clients.
func NewInternalError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: MsgGenericError,
		Err:     cause,
		base:    ErrInternalServer,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible. Anything that is not
// an AppError becomes a generic 500 so driver messages never reach clients.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: MsgGenericError,
	}
}
