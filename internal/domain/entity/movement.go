package entity

// Tipos de movimiento de canastillas.
const (
	MovementTypeEntry = "entrada"
	MovementTypeExit  = "salida"
)

// Movement traslado registrado de una canastilla entre dos ubicaciones.
// El listado trae el nombre del responsable; la consulta por ID trae además su ID.
type Movement struct {
	ID                int       `json:"id_movimiento"`
	ContainerID       string    `json:"id_canastilla"`
	Type              string    `json:"tipo_movimiento"`
	Origin            string    `json:"ubicacion_origen"`
	Destination       string    `json:"ubicacion_destino"`
	ResponsibleUserID int       `json:"id_usuario_responsable,omitempty"`
	ResponsibleUser   string    `json:"usuario_responsable,omitempty"`
	Date              Timestamp `json:"fecha_movimiento,omitempty"`
}
