package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/canastillas-console/internal/application/console"
	"github.com/jhoicas/canastillas-console/internal/application/notify"
	"github.com/jhoicas/canastillas-console/internal/infrastructure/apiclient"
	infrapdf "github.com/jhoicas/canastillas-console/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/canastillas-console/internal/interfaces/http"
	"github.com/jhoicas/canastillas-console/pkg/config"
	"github.com/jhoicas/canastillas-console/pkg/datefmt"
	"github.com/jhoicas/canastillas-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando consola")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria")
	}
	clock := datefmt.RealClock{Location: loc}

	client := apiclient.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), log)
	center := notify.NewCenter(clock, cfg.Console.NotifyTTL(), log)
	opts := console.Options{
		Notifier:     center,
		Logger:       log,
		Clock:        clock,
		RefreshDelay: cfg.Console.RefetchDelay(),
	}

	inventory := console.NewInventoryScreen(client, opts)
	movements := console.NewMovementsScreen(client, client, opts)
	users := console.NewUsersScreen(client, opts)
	dashboard := console.NewDashboardScreen(client, opts)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Carga inicial; los fallos ya quedan en los banners de cada pantalla.
	for _, s := range []interface{ Refresh(context.Context) error }{inventory, movements, users} {
		if err := s.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("carga inicial")
		}
	}
	go dashboard.Run(ctx, cfg.Console.DashboardPoll())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.Docs.Enabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.FilePath,
			Path:     "docs",
			Title:    "Consola de Canastillas",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Inventory:     inventory,
		Movements:     movements,
		Users:         users,
		Dashboard:     dashboard,
		Notifications: center,
		Reporter:      infrapdf.NewMarotoPDFGenerator(clock),
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("consola detenida")
}
