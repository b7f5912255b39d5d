// Package apitest levanta un backend de canastillas en memoria para los tests.
// Reproduce el contrato HTTP del backend real (rutas, sobres, códigos) y permite
// forzar respuestas, registrar peticiones y retener una respuesta para simular
// cargas que se solapan.
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

// Recorded petición recibida por el backend falso.
type Recorded struct {
	Method string
	Path   string
	Body   []byte
}

// JSONBody decodifica el cuerpo como mapa (útil para comprobar claves ausentes).
func (r Recorded) JSONBody() map[string]any {
	var m map[string]any
	_ = json.Unmarshal(r.Body, &m)
	return m
}

type override struct {
	status int
	body   string
}

type gate struct {
	entered chan struct{}
	release chan struct{}
}

// Server backend falso.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	containers map[string]entity.Container
	movements  map[int]entity.Movement
	users      map[int]entity.User
	passwords  map[int]string
	nextMovID  int
	nextUserID int
	overrides  map[string]override
	gates      map[string]*gate
	requests   []Recorded
	now        func() time.Time
}

// New arranca el servidor y lo cierra al terminar el test.
func New(t testing.TB) *Server {
	s := &Server{
		containers: map[string]entity.Container{},
		movements:  map[int]entity.Movement{},
		users:      map[int]entity.User{},
		passwords:  map[int]string{},
		nextMovID:  1,
		nextUserID: 1,
		overrides:  map[string]override{},
		gates:      map[string]*gate{},
		now:        time.Now,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dashboard/metrics", s.dashboard)
	mux.HandleFunc("GET /api/inventario", s.listContainers)
	mux.HandleFunc("POST /api/canastilla/add", s.addContainer)
	mux.HandleFunc("PUT /api/canastilla/{id}", s.updateContainer)
	mux.HandleFunc("DELETE /api/canastilla/{id}", s.deleteContainer)
	mux.HandleFunc("GET /api/movimientos", s.listMovements)
	mux.HandleFunc("GET /api/movimiento/{id}", s.getMovement)
	mux.HandleFunc("POST /api/movimiento/add", s.addMovement)
	mux.HandleFunc("PUT /api/movimiento/{id}", s.updateMovement)
	mux.HandleFunc("DELETE /api/movimiento/{id}", s.deleteMovement)
	mux.HandleFunc("GET /api/usuarios", s.listUsers)
	mux.HandleFunc("GET /api/usuario/{id}", s.getUser)
	mux.HandleFunc("POST /api/usuario/add", s.addUser)
	mux.HandleFunc("PUT /api/usuario/{id}", s.updateUser)
	mux.HandleFunc("DELETE /api/usuario/{id}", s.deleteUser)

	s.Server = httptest.NewServer(s.middleware(mux))
	t.Cleanup(s.Close)
	return s
}

// BaseURL URL con el prefijo /api.
func (s *Server) BaseURL() string { return s.URL + "/api" }

// SetNow fija el reloj con el que el backend fecha los movimientos nuevos.
func (s *Server) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SeedContainers carga canastillas.
func (s *Server) SeedContainers(items ...entity.Container) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range items {
		s.containers[c.ID] = c
	}
}

// SeedMovements carga movimientos; los que no traen ID reciben uno.
func (s *Server) SeedMovements(items ...entity.Movement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range items {
		if m.ID == 0 {
			m.ID = s.nextMovID
		}
		if m.ID >= s.nextMovID {
			s.nextMovID = m.ID + 1
		}
		s.movements[m.ID] = m
	}
}

// SeedUsers carga usuarios con contraseña opcional.
func (s *Server) SeedUsers(items ...entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range items {
		if u.ID == 0 {
			u.ID = s.nextUserID
		}
		if u.ID >= s.nextUserID {
			s.nextUserID = u.ID + 1
		}
		s.users[u.ID] = u
		if _, ok := s.passwords[u.ID]; !ok {
			s.passwords[u.ID] = "secreta"
		}
	}
}

// Password contraseña almacenada del usuario (solo existe en el backend falso).
func (s *Server) Password(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passwords[id]
}

// Override fuerza la respuesta de una ruta (ej. "GET", "/api/inventario").
func (s *Server) Override(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = override{status: status, body: body}
}

// ClearOverride quita una respuesta forzada.
func (s *Server) ClearOverride(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, method+" "+path)
}

// Hold retiene la próxima respuesta de la ruta. La respuesta se calcula al
// llegar la petición (con los datos de ese momento) y se entrega al llamar release.
// entered se cierra cuando la petición retenida ya llegó.
func (s *Server) Hold(method, path string) (entered <-chan struct{}, release func()) {
	g := &gate{entered: make(chan struct{}), release: make(chan struct{})}
	s.mu.Lock()
	s.gates[method+" "+path] = g
	s.mu.Unlock()
	var once sync.Once
	return g.entered, func() { once.Do(func() { close(g.release) }) }
}

// Requests peticiones recibidas para method+path (path sin query).
func (s *Server) Requests(method, path string) []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Recorded
	for _, r := range s.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		key := r.Method + " " + r.URL.Path

		s.mu.Lock()
		s.requests = append(s.requests, Recorded{Method: r.Method, Path: r.URL.Path, Body: body})
		ov, forced := s.overrides[key]
		g := s.gates[key]
		delete(s.gates, key)
		s.mu.Unlock()

		rec := httptest.NewRecorder()
		if forced {
			rec.WriteHeader(ov.status)
			_, _ = rec.WriteString(ov.body)
		} else {
			next.ServeHTTP(rec, r)
		}

		if g != nil {
			close(g.entered)
			<-g.release
		}

		for k, v := range rec.Header() {
			w.Header()[k] = v
		}
		w.WriteHeader(rec.Code)
		_, _ = w.Write(rec.Body.Bytes())
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func pathInt(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil
}

// ── Dashboard ────────────────────────────────────────────────────────────────

func (s *Server) dashboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := entity.DashboardMetrics{Total: len(s.containers)}
	byLocation := map[string]int{}
	for _, c := range s.containers {
		switch c.Status {
		case entity.ContainerStatusAvailable:
			m.Available++
		case entity.ContainerStatusInTransit:
			m.InTransit++
		case entity.ContainerStatusInRepair:
			m.InRepair++
		}
		byLocation[c.Location]++
	}
	locations := make([]string, 0, len(byLocation))
	for loc := range byLocation {
		locations = append(locations, loc)
	}
	sort.Slice(locations, func(i, j int) bool {
		if byLocation[locations[i]] != byLocation[locations[j]] {
			return byLocation[locations[i]] > byLocation[locations[j]]
		}
		return locations[i] < locations[j]
	})
	m.BarChart = entity.Series{Labels: []string{}, Data: []int{}}
	for _, loc := range locations {
		m.BarChart.Labels = append(m.BarChart.Labels, loc)
		m.BarChart.Data = append(m.BarChart.Data, byLocation[loc])
	}

	byMonth := map[string]int{}
	for _, mv := range s.movements {
		if len(mv.Date) >= 7 {
			byMonth[string(mv.Date)[:7]]++
		}
	}
	months := make([]string, 0, len(byMonth))
	for k := range byMonth {
		months = append(months, k)
	}
	sort.Strings(months)
	m.TrendChart = entity.Series{Labels: []string{}, Data: []int{}}
	for _, k := range months {
		m.TrendChart.Labels = append(m.TrendChart.Labels, k)
		m.TrendChart.Data = append(m.TrendChart.Data, byMonth[k])
	}

	recent := s.sortedMovements()
	if len(recent) > 5 {
		recent = recent[:5]
	}
	for i := range recent {
		recent[i].ResponsibleUserID = 0
	}
	m.RecentMovements = recent

	writeJSON(w, http.StatusOK, m)
}

// ── Canastillas ──────────────────────────────────────────────────────────────

func (s *Server) listContainers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]entity.Container, 0, len(s.containers))
	for _, c := range s.containers {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}

func (s *Server) addContainer(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID       string `json:"id_canastilla"`
		Status   string `json:"estado"`
		Location string `json:"ubicacion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ID == "" {
		writeError(w, http.StatusBadRequest, "Faltan datos requeridos")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.containers[in.ID]; dup {
		writeError(w, http.StatusBadRequest, "Ya existe una canastilla con este ID")
		return
	}
	s.containers[in.ID] = entity.Container{ID: in.ID, Status: in.Status, Location: in.Location}
	writeMessage(w, http.StatusCreated, fmt.Sprintf("Canastilla %s agregada con éxito", in.ID))
}

func (s *Server) updateContainer(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status   string `json:"estado"`
		Location string `json:"ubicacion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Faltan datos requeridos")
		return
	}
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.containers[id]
	if !ok {
		writeError(w, http.StatusNotFound, "No existe una canastilla con este ID")
		return
	}
	c.Status, c.Location = in.Status, in.Location
	s.containers[id] = c
	writeMessage(w, http.StatusOK, fmt.Sprintf("Canastilla %s actualizada con éxito", id))
}

func (s *Server) deleteContainer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.containers[id]; !ok {
		writeError(w, http.StatusNotFound, "No existe una canastilla con este ID")
		return
	}
	for _, m := range s.movements {
		if m.ContainerID == id {
			writeError(w, http.StatusBadRequest, "No se puede eliminar la canastilla porque tiene movimientos asociados")
			return
		}
	}
	delete(s.containers, id)
	writeMessage(w, http.StatusOK, fmt.Sprintf("Canastilla %s eliminada con éxito", id))
}

// ── Movimientos ──────────────────────────────────────────────────────────────

// sortedMovements por fecha descendente con el nombre del responsable resuelto. Requiere s.mu.
func (s *Server) sortedMovements() []entity.Movement {
	items := make([]entity.Movement, 0, len(s.movements))
	for _, m := range s.movements {
		if u, ok := s.users[m.ResponsibleUserID]; ok {
			m.ResponsibleUser = u.Name
		}
		items = append(items, m)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		return items[i].ID > items[j].ID
	})
	return items
}

func (s *Server) listMovements(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.sortedMovements()
	for i := range items {
		items[i].ResponsibleUserID = 0
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}

func (s *Server) getMovement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "ID de movimiento inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movements[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Movimiento no encontrado")
		return
	}
	if u, ok := s.users[m.ResponsibleUserID]; ok {
		m.ResponsibleUser = u.Name
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": m})
}

type movementIn struct {
	ContainerID       string `json:"id_canastilla"`
	Type              string `json:"tipo_movimiento"`
	Origin            string `json:"ubicacion_origen"`
	Destination       string `json:"ubicacion_destino"`
	ResponsibleUserID int    `json:"id_usuario_responsable"`
}

func (s *Server) addMovement(w http.ResponseWriter, r *http.Request) {
	var in movementIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Faltan datos requeridos")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.containers[in.ContainerID]
	if !ok {
		writeError(w, http.StatusBadRequest, "No existe una canastilla con este ID")
		return
	}
	now := entity.Timestamp(s.now().Format("2006-01-02 15:04:05"))
	m := entity.Movement{
		ID: s.nextMovID, ContainerID: in.ContainerID, Type: in.Type,
		Origin: in.Origin, Destination: in.Destination,
		ResponsibleUserID: in.ResponsibleUserID, Date: now,
	}
	s.nextMovID++
	s.movements[m.ID] = m

	if in.Type == entity.MovementTypeEntry {
		c.Location = in.Destination
		c.Status = entity.ContainerStatusAvailable
		if in.Destination == "Taller" {
			c.Status = entity.ContainerStatusInRepair
		}
	} else {
		c.Location = entity.ContainerStatusInTransit
		c.Status = entity.ContainerStatusInTransit
	}
	c.LastMovement = now
	s.containers[c.ID] = c

	writeMessage(w, http.StatusCreated, "Movimiento registrado con éxito para la canastilla "+in.ContainerID)
}

func (s *Server) updateMovement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "ID de movimiento inválido")
		return
	}
	var in movementIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Faltan datos requeridos")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movements[id]
	if !ok {
		writeError(w, http.StatusNotFound, "No existe un movimiento con este ID")
		return
	}
	if _, ok := s.containers[in.ContainerID]; !ok {
		writeError(w, http.StatusBadRequest, "No existe una canastilla con este ID")
		return
	}
	m.ContainerID, m.Type = in.ContainerID, in.Type
	m.Origin, m.Destination = in.Origin, in.Destination
	m.ResponsibleUserID = in.ResponsibleUserID
	s.movements[id] = m
	writeMessage(w, http.StatusOK, fmt.Sprintf("Movimiento %d actualizado con éxito", id))
}

func (s *Server) deleteMovement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "ID de movimiento inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movements[id]; !ok {
		writeError(w, http.StatusNotFound, "No existe un movimiento con este ID")
		return
	}
	delete(s.movements, id)
	writeMessage(w, http.StatusOK, fmt.Sprintf("Movimiento %d eliminado con éxito", id))
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		items = append(items, u)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "ID de usuario inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": u})
}

type userIn struct {
	Name     string  `json:"nombre"`
	Email    string  `json:"email"`
	Password *string `json:"password"`
	Role     string  `json:"rol"`
	Status   string  `json:"estado"`
}

func (s *Server) emailTaken(email string, except int) bool {
	for id, u := range s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (s *Server) addUser(w http.ResponseWriter, r *http.Request) {
	var in userIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Password == nil || *in.Password == "" {
		writeError(w, http.StatusBadRequest, "Faltan datos requeridos")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(in.Email, 0) {
		writeError(w, http.StatusBadRequest, "Ya existe un usuario con este email")
		return
	}
	u := entity.User{
		ID: s.nextUserID, Name: in.Name, Email: in.Email, Role: in.Role, Status: in.Status,
		CreatedAt: entity.Timestamp(s.now().Format("2006-01-02 15:04:05")),
	}
	s.nextUserID++
	s.users[u.ID] = u
	s.passwords[u.ID] = *in.Password
	writeMessage(w, http.StatusCreated, fmt.Sprintf("Usuario %s agregado con éxito", in.Name))
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "ID de usuario inválido")
		return
	}
	var in userIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Faltan datos requeridos")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		writeError(w, http.StatusNotFound, "No existe un usuario con este ID")
		return
	}
	if s.emailTaken(in.Email, id) {
		writeError(w, http.StatusBadRequest, "Ya existe otro usuario con este email")
		return
	}
	u.Name, u.Email, u.Role, u.Status = in.Name, in.Email, in.Role, in.Status
	s.users[id] = u
	if in.Password != nil && *in.Password != "" {
		s.passwords[id] = *in.Password
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Usuario %s actualizado con éxito", in.Name))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "ID de usuario inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		writeError(w, http.StatusNotFound, "No existe un usuario con este ID")
		return
	}
	for _, m := range s.movements {
		if m.ResponsibleUserID == id {
			writeError(w, http.StatusBadRequest, "No se puede eliminar el usuario porque tiene movimientos asociados")
			return
		}
	}
	delete(s.users, id)
	delete(s.passwords, id)
	writeMessage(w, http.StatusOK, fmt.Sprintf("Usuario %d eliminado con éxito", id))
}
