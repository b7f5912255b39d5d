package ports

import (
	"context"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

// InventoryAPI puerto de salida hacia los endpoints de canastillas del backend.
// Las mutaciones devuelven el mensaje de éxito del servidor ({ message }).
type InventoryAPI interface {
	ListContainers(ctx context.Context) ([]entity.Container, error)
	CreateContainer(ctx context.Context, in dto.ContainerForm) (string, error)
	UpdateContainer(ctx context.Context, id string, in dto.ContainerForm) (string, error)
	DeleteContainer(ctx context.Context, id string) (string, error)
}

// MovementAPI puerto de salida hacia los endpoints de movimientos.
type MovementAPI interface {
	ListMovements(ctx context.Context) ([]entity.Movement, error)
	GetMovement(ctx context.Context, id int) (*entity.Movement, error)
	CreateMovement(ctx context.Context, in dto.MovementForm) (string, error)
	UpdateMovement(ctx context.Context, id int, in dto.MovementForm) (string, error)
	DeleteMovement(ctx context.Context, id int) (string, error)
}

// UserAPI puerto de salida hacia los endpoints de usuarios.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, id int) (*entity.User, error)
	CreateUser(ctx context.Context, in dto.UserPayload) (string, error)
	UpdateUser(ctx context.Context, id int, in dto.UserPayload) (string, error)
	DeleteUser(ctx context.Context, id int) (string, error)
}

// DashboardAPI puerto de salida hacia GET /dashboard/metrics.
type DashboardAPI interface {
	GetDashboardMetrics(ctx context.Context) (*entity.DashboardMetrics, error)
}
