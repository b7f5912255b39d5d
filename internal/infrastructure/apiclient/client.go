// Package apiclient implementa los puertos de salida hacia el backend REST de
// canastillas (http://<host>/api) usando net/http.
//
// Reglas del sobre { data | error } / { message | error }:
//   - cuerpo vacío                  → *domain.EmptyResponseError (aunque el estado sea 2xx)
//   - estado no 2xx                 → *domain.TransportError (con el "error" del servidor si viene)
//   - 2xx con campo "error"         → *domain.ApplicationError
//   - JSON mal formado              → *domain.TransportError
//
// No hay reintentos. El timeout por defecto es 0 (sin límite); la cancelación
// llega por el context del llamador.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/ports"
	"github.com/jhoicas/canastillas-console/internal/domain"
	"github.com/jhoicas/canastillas-console/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ ports.InventoryAPI = (*Client)(nil)
	_ ports.MovementAPI  = (*Client)(nil)
	_ ports.UserAPI      = (*Client)(nil)
	_ ports.DashboardAPI = (*Client)(nil)
)

// maxBodyBytes límite de lectura de una respuesta.
const maxBodyBytes = 8 << 20

// Client adaptador HTTP del backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. baseURL incluye el prefijo /api
// (ej. "http://localhost:8000/api"). timeout 0 = sin límite.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Named("apiclient"),
	}
}

// response respuesta cruda: estado + cuerpo.
type response struct {
	method string
	path   string
	status int
	body   []byte
}

// do ejecuta la petición. Solo devuelve error de transporte (sin respuesta);
// la interpretación del sobre es de decode.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("apiclient: serializar %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &domain.TransportError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		c.log.Warn().Str("method", method).Str("path", path).Err(err).Msg("llamada HTTP fallida")
		return nil, &domain.TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.TransportError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("respuesta del backend")

	return &response{method: method, path: path, status: resp.StatusCode, body: raw}, nil
}

func (r *response) ok() bool { return r.status >= 200 && r.status < 300 }

// decode aplica las reglas del sobre sobre out, que debe tener un campo Error.
// errorOf extrae ese campo tras el unmarshal.
func decode(r *response, out any, errorOf func() string) error {
	if len(bytes.TrimSpace(r.body)) == 0 {
		return &domain.EmptyResponseError{Method: r.method, Path: r.path, Status: r.status}
	}
	if err := json.Unmarshal(r.body, out); err != nil {
		return &domain.TransportError{
			Method: r.method, Path: r.path, Status: r.status,
			Err: fmt.Errorf("respuesta JSON inválida: %w", err),
		}
	}
	msg := errorOf()
	if !r.ok() {
		return &domain.TransportError{Method: r.method, Path: r.path, Status: r.status, Message: msg}
	}
	if msg != "" {
		return &domain.ApplicationError{Status: r.status, Message: msg}
	}
	return nil
}

// fetchCollection GET de una colección { data: [...] }. data null o ausente es colección vacía.
func fetchCollection[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	r, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var env dto.Envelope[[]T]
	if err := decode(r, &env, func() string { return env.Error }); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []T{}, nil
	}
	return env.Data, nil
}

// fetchOne GET de un recurso { data: {...} }.
func fetchOne[T any](ctx context.Context, c *Client, path string) (*T, error) {
	r, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var env dto.Envelope[*T]
	if err := decode(r, &env, func() string { return env.Error }); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, fmt.Errorf("apiclient: GET %s: %w", path, domain.ErrNotFound)
	}
	return env.Data, nil
}

// mutate POST/PUT/DELETE que responde { message } o { error }.
func (c *Client) mutate(ctx context.Context, method, path string, payload any) (string, error) {
	r, err := c.do(ctx, method, path, payload)
	if err != nil {
		return "", err
	}
	var env dto.Envelope[json.RawMessage]
	if err := decode(r, &env, func() string { return env.Error }); err != nil {
		return "", err
	}
	return env.Message, nil
}
