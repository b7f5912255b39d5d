package dto

// Envelope sobre { data | error } que usan todas las respuestas del backend.
// En las mutaciones el éxito viene como { message }.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
