package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("save order: %w", NewNotFoundError("Cliente"))
	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.True(t, IsAppError(wrapped))

	plain := GetAppError(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, MsgGenericError, plain.Message)
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("righe", MsgEmptyCart)
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, []FieldError{{Field: "righe", Message: MsgEmptyCart}}, err.Errors)
}

func TestNewInternalError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, MsgGenericError, GetAppError(err).Message)
}

func TestWithDetail(t *testing.T) {
	err := ErrInvalidTransition.WithDetail("da Evaso a Bozza")

	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, MsgInvalidTransition+": da Evaso a Bozza", err.Message)
	assert.Equal(t, MsgInvalidTransition, ErrInvalidTransition.Message)
	assert.True(t, errors.Is(fmt.Errorf("change status: %w", err), ErrInvalidTransition))
	assert.True(t, errors.Is(err.WithDetail("x"), ErrInvalidTransition))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestConstructorsMatchSentinels(t *testing.T) {
	assert.ErrorIs(t, NewNotFoundError("Ordine"), ErrNotFound)
	assert.ErrorIs(t, NewConflictError("Codice già usato"), ErrConflict)
	assert.ErrorIs(t, NewBadRequestError("File vuoto"), ErrBadRequest)
	assert.ErrorIs(t, NewFieldError("nome", MsgRequiredField), ErrUnprocessable)
	assert.ErrorIs(t, NewInternalError(errors.New("disk full")), ErrInternalServer)
	assert.NotErrorIs(t, NewNotFoundError("Ordine"), ErrConflict)
}
