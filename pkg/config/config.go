package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	HTTP    HTTPConfig
	Console ConsoleConfig
	Docs    DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // zona en la que se interpretan y muestran las fechas
}

// Location zona horaria configurada.
func (c AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// APIConfig backend REST de canastillas.
type APIConfig struct {
	BaseURL        string // incluye el prefijo /api
	TimeoutSeconds int    // 0 = sin límite
}

// Timeout como time.Duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HTTPConfig configuración del servidor HTTP de la consola.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ConsoleConfig tiempos del motor de la consola.
type ConsoleConfig struct {
	DashboardPollSeconds int
	RefetchDelayMS       int // espera antes de recargar tras una mutación (inventario y movimientos)
	NotifyTTLSeconds     int // duración de los banners de éxito
}

func (c ConsoleConfig) DashboardPoll() time.Duration {
	return time.Duration(c.DashboardPollSeconds) * time.Second
}

func (c ConsoleConfig) RefetchDelay() time.Duration {
	return time.Duration(c.RefetchDelayMS) * time.Millisecond
}

func (c ConsoleConfig) NotifyTTL() time.Duration {
	return time.Duration(c.NotifyTTLSeconds) * time.Second
}

// DocsConfig Swagger UI de la superficie HTTP.
type DocsConfig struct {
	Enabled  bool
	FilePath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "canastillas-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "TIMEZONE", "America/Bogota"),
		},
		API: APIConfig{
			BaseURL:        getString(v, "API_BASE_URL", "http://localhost:8000/api"),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 0),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8090),
		},
		Console: ConsoleConfig{
			DashboardPollSeconds: getInt(v, "DASHBOARD_POLL_SECONDS", 60),
			RefetchDelayMS:       getInt(v, "REFETCH_DELAY_MS", 500),
			NotifyTTLSeconds:     getInt(v, "NOTIFY_TTL_SECONDS", 3),
		},
		Docs: DocsConfig{
			Enabled:  getBool(v, "DOCS_ENABLED", true),
			FilePath: getString(v, "DOCS_PATH", "./docs/swagger.json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: API_BASE_URL inválida: %q", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("config: API_TIMEOUT_SECONDS no puede ser negativo")
	}
	if c.Console.DashboardPollSeconds <= 0 {
		return fmt.Errorf("config: DASHBOARD_POLL_SECONDS debe ser mayor que cero")
	}
	if c.Console.RefetchDelayMS < 0 {
		return fmt.Errorf("config: REFETCH_DELAY_MS no puede ser negativo")
	}
	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("config: TIMEZONE %q: %w", c.App.Timezone, err)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
