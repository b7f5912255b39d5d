package entity

// Roles y estados de usuario conocidos por la consola.
const (
	RoleAdministrator = "Administrador"
	RoleOperator      = "Operador"

	UserStatusActive   = "Activo"
	UserStatusInactive = "Inactivo"
)

// User usuario del sistema. La contraseña nunca viaja en las lecturas.
type User struct {
	ID         int       `json:"id_usuario"`
	Name       string    `json:"nombre"`
	Email      string    `json:"email"`
	Role       string    `json:"rol"`
	Status     string    `json:"estado"`
	CreatedAt  Timestamp `json:"fecha_creacion,omitempty"`
	LastAccess Timestamp `json:"ultimo_acceso,omitempty"`
}
