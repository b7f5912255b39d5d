package dto

// Acciones de fila; se regeneran en cada render porque las filas se reemplazan completas.
const (
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Etiquetas del control de recarga (indicador de ocupado).
const (
	RefreshLabelIdle = "Actualizar"
	RefreshLabelBusy = "Cargando..."
)

// Cell celda renderizada. Badge es la clase visual del estado/tipo, si aplica.
type Cell struct {
	Column string `json:"column"`
	Text   string `json:"text"`
	Badge  string `json:"badge,omitempty"`
}

// Action acción ligada al identificador de la entidad de la fila.
type Action struct {
	Kind     string `json:"kind"`
	EntityID string `json:"entity_id"`
}

// Row fila de la tabla.
type Row struct {
	ID      string   `json:"id"`
	Cells   []Cell   `json:"cells"`
	Actions []Action `json:"actions"`
}

// Counter contador de cabecera calculado sobre la vista filtrada.
type Counter struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// View proyección de la vista filtrada. Empty es un estado propio (mensaje), no una tabla vacía.
type View struct {
	Rows         []Row     `json:"rows"`
	Counters     []Counter `json:"counters"`
	Empty        bool      `json:"empty"`
	EmptyMessage string    `json:"empty_message,omitempty"`
}

// CounterValue valor del contador key (0 si no existe).
func (v View) CounterValue(key string) int {
	for _, c := range v.Counters {
		if c.Key == key {
			return c.Value
		}
	}
	return 0
}

// RefreshButton control que se deshabilita y cambia de etiqueta mientras hay una carga en curso.
type RefreshButton struct {
	Disabled bool   `json:"disabled"`
	Label    string `json:"label"`
}

// ModalState estado visible del modal de alta/edición/eliminación.
type ModalState struct {
	State           string `json:"state"`
	Open            bool   `json:"open"`
	ConfirmOpen     bool   `json:"confirm_open"`
	Title           string `json:"title,omitempty"`
	SubmitLabel     string `json:"submit_label,omitempty"`
	EditingID       string `json:"editing_id,omitempty"`
	PendingDeleteID string `json:"pending_delete_id,omitempty"`
	LastError       string `json:"last_error,omitempty"`
}

// ScreenState todo lo que la vista de una pantalla CRUD necesita para pintarse.
type ScreenState[F any, Form any] struct {
	Screen        string        `json:"screen"`
	Loaded        bool          `json:"loaded"`
	RefreshButton RefreshButton `json:"refresh_button"`
	Filters       F             `json:"filters"`
	View          View          `json:"view"`
	Modal         ModalState    `json:"modal"`
	Form          Form          `json:"form"`
	Options       []string      `json:"options,omitempty"` // p. ej. canastillas seleccionables en movimientos
}

// ScreenActionResponse resultado de un envío o eliminación: mensaje del servidor + estado resultante.
type ScreenActionResponse[F any, Form any] struct {
	Message string               `json:"message"`
	State   ScreenState[F, Form] `json:"state"`
}
