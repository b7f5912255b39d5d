package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

func (c *Client) ListMovements(ctx context.Context) ([]entity.Movement, error) {
	return fetchCollection[entity.Movement](ctx, c, "/movimientos")
}

func (c *Client) GetMovement(ctx context.Context, id int) (*entity.Movement, error) {
	return fetchOne[entity.Movement](ctx, c, "/movimiento/"+strconv.Itoa(id))
}

func (c *Client) CreateMovement(ctx context.Context, in dto.MovementForm) (string, error) {
	return c.mutate(ctx, http.MethodPost, "/movimiento/add", in)
}

func (c *Client) UpdateMovement(ctx context.Context, id int, in dto.MovementForm) (string, error) {
	return c.mutate(ctx, http.MethodPut, "/movimiento/"+strconv.Itoa(id), in)
}

func (c *Client) DeleteMovement(ctx context.Context, id int) (string, error) {
	return c.mutate(ctx, http.MethodDelete, "/movimiento/"+strconv.Itoa(id), nil)
}
