package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

// ListContainers GET /inventario.
func (c *Client) ListContainers(ctx context.Context) ([]entity.Container, error) {
	return fetchCollection[entity.Container](ctx, c, "/inventario")
}

// CreateContainer POST /canastilla/add.
func (c *Client) CreateContainer(ctx context.Context, in dto.ContainerForm) (string, error) {
	return c.mutate(ctx, http.MethodPost, "/canastilla/add", in)
}

// UpdateContainer PUT /canastilla/{id}.
func (c *Client) UpdateContainer(ctx context.Context, id string, in dto.ContainerForm) (string, error) {
	return c.mutate(ctx, http.MethodPut, "/canastilla/"+url.PathEscape(id), in)
}

// DeleteContainer DELETE /canastilla/{id}.
func (c *Client) DeleteContainer(ctx context.Context, id string) (string, error) {
	return c.mutate(ctx, http.MethodDelete, "/canastilla/"+url.PathEscape(id), nil)
}
