package entity

// Estados válidos de una canastilla.
const (
	ContainerStatusAvailable = "Disponible"
	ContainerStatusInTransit = "En Tránsito"
	ContainerStatusInRepair  = "En Reparación"
)

// Container canastilla: caja de transporte reutilizable que se rastrea entre ubicaciones.
type Container struct {
	ID           string    `json:"id_canastilla"`
	Status       string    `json:"estado"`
	Location     string    `json:"ubicacion"`
	AssignedUser string    `json:"usuario_asignado,omitempty"` // nombre; el backend hace el join
	LastMovement Timestamp `json:"fecha_ultimo_movimiento,omitempty"`
}
