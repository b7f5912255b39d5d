package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/canastillas-console/internal/application/console"
	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/notify"
	"github.com/jhoicas/canastillas-console/internal/application/ports"
	"github.com/jhoicas/canastillas-console/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory     *console.InventoryScreen
	Movements     *console.MovementsScreen
	Users         *console.UsersScreen
	Dashboard     *console.DashboardScreen
	Notifications *notify.Center
	Reporter      ports.ViewReporter // opcional: sin él no se exponen las exportaciones
	Log           *logger.Logger
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/console", RequestLogger(deps.Log))

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard", dashboardHandler.Get)
	api.Post("/dashboard/refresh", dashboardHandler.Refresh)

	// Notificaciones
	notificationHandler := NewNotificationHandler(deps.Notifications)
	api.Get("/notifications", notificationHandler.List)
	api.Delete("/notifications/:id", notificationHandler.Dismiss)

	// Inventario
	inventory := api.Group("/" + console.ScreenInventory)
	if deps.Reporter != nil {
		inventory.Get("/export.pdf", NewExportHandler(deps.Reporter, deps.Inventory, "Inventario de canastillas", "inventario.pdf").PDF)
	}
	NewScreenHandler[dto.InventoryFilters, dto.ContainerForm](deps.Inventory).register(inventory)

	// Movimientos
	movements := api.Group("/" + console.ScreenMovements)
	if deps.Reporter != nil {
		movements.Get("/export.pdf", NewExportHandler(deps.Reporter, deps.Movements, "Movimientos de canastillas", "movimientos.pdf").PDF)
	}
	NewScreenHandler[dto.MovementFilters, dto.MovementForm](deps.Movements).register(movements)

	// Usuarios
	users := api.Group("/" + console.ScreenUsers)
	NewScreenHandler[dto.UserFilters, dto.UserForm](deps.Users).register(users)
}
