package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/canastillas-console/internal/domain"
)

func TestUserMessage_PrefiereMensajeDelServidor(t *testing.T) {
	err := fmt.Errorf("crear canastilla: %w", &domain.ApplicationError{Status: 400, Message: "Ya existe una canastilla con este ID"})
	assert.Equal(t, "Ya existe una canastilla con este ID", domain.UserMessage(err, "genérico"))

	err = &domain.TransportError{Method: "DELETE", Path: "/usuario/3", Status: 400, Message: "tiene movimientos asociados"}
	assert.Equal(t, "tiene movimientos asociados", domain.UserMessage(err, "genérico"))
}

func TestUserMessage_FallbackSinMensaje(t *testing.T) {
	assert.Equal(t, "genérico", domain.UserMessage(&domain.TransportError{Status: 500}, "genérico"))
	assert.Equal(t, "genérico", domain.UserMessage(&domain.EmptyResponseError{Path: "/inventario"}, "genérico"))
	assert.Equal(t, "genérico", domain.UserMessage(errors.New("dial tcp: refused"), "genérico"))
	assert.Equal(t, "genérico", domain.UserMessage(nil, "genérico"))
}

func TestUserMessage_Validacion(t *testing.T) {
	err := domain.NewValidationError("email", "es obligatorio")
	assert.Equal(t, "email: es obligatorio", domain.UserMessage(err, "x"))
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("listar: %w", &domain.TransportError{Method: "GET", Path: "/inventario", Err: cause})
	assert.ErrorIs(t, err, cause)

	var tr *domain.TransportError
	assert.True(t, errors.As(err, &tr))
	assert.Contains(t, tr.Error(), "connection reset")
}
