package ports

// Notifier superficie de notificaciones: sumidero desacoplado de la lógica.
type Notifier interface {
	Success(screen, message string)
	Error(screen, message string)
}
