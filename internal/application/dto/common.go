package dto

// AllFilter valor centinela de un filtro categórico inactivo.
const AllFilter = "all"

// ErrorResponse cuerpo de error HTTP de la superficie de la consola.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de éxito de una acción de la consola.
type MessageResponse struct {
	Message string `json:"message"`
}
