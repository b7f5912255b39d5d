package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidTransition = errors.New("operación no permitida en el estado actual del formulario")
	ErrMissingConfirm    = errors.New("no hay eliminación pendiente de confirmación")
)

// TransportError falla de red o respuesta HTTP no exitosa del backend.
// Status es 0 cuando la petición no llegó a obtener respuesta.
type TransportError struct {
	Method  string
	Path    string
	Status  int
	Message string // campo "error" del sobre, si el servidor lo envió
	Err     error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.Status)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// EmptyResponseError el servidor respondió sin cuerpo. Siempre es un fallo,
// nunca se interpreta como colección vacía.
type EmptyResponseError struct {
	Method string
	Path   string
	Status int
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("%s %s: la respuesta del servidor está vacía (HTTP %d)", e.Method, e.Path, e.Status)
}

// ApplicationError cuerpo bien formado que trae el campo "error".
type ApplicationError struct {
	Status  int
	Message string
}

func (e *ApplicationError) Error() string { return e.Message }

// ValidationError error del lado del cliente; nunca llega a la red.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UserMessage devuelve el texto que se muestra en el banner de error:
// el mensaje del servidor o de validación cuando existe; si no, fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	var trErr *TransportError
	if errors.As(err, &trErr) && trErr.Message != "" {
		return trErr.Message
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}
	if errors.Is(err, ErrMissingConfirm) || errors.Is(err, ErrInvalidTransition) {
		return err.Error()
	}
	return fallback
}
