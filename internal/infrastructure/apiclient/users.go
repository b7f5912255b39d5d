package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	return fetchCollection[entity.User](ctx, c, "/usuarios")
}

func (c *Client) GetUser(ctx context.Context, id int) (*entity.User, error) {
	return fetchOne[entity.User](ctx, c, "/usuario/"+strconv.Itoa(id))
}

func (c *Client) CreateUser(ctx context.Context, in dto.UserPayload) (string, error) {
	return c.mutate(ctx, http.MethodPost, "/usuario/add", in)
}

// UpdateUser PUT /usuario/{id}; in.Password nil no se serializa.
func (c *Client) UpdateUser(ctx context.Context, id int, in dto.UserPayload) (string, error) {
	return c.mutate(ctx, http.MethodPut, "/usuario/"+strconv.Itoa(id), in)
}

func (c *Client) DeleteUser(ctx context.Context, id int) (string, error) {
	return c.mutate(ctx, http.MethodDelete, "/usuario/"+strconv.Itoa(id), nil)
}
