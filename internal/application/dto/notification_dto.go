package dto

import "time"

// Tipos de notificación.
const (
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// Notification banner transitorio (éxito) o descartable (error).
type Notification struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Screen      string    `json:"screen,omitempty"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	Dismissible bool      `json:"dismissible"`
}
