package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente (lectura vía Viper desde env y
// opcionalmente archivo .env).
type Config struct {
	API APIConfig
	Log LogConfig
}

// APIConfig apunta al backend de inventario.
type APIConfig struct {
	URL string
	// TimeoutSeconds limita cada petición HTTP. 0 = sin límite: una petición
	// lanzada corre hasta completarse o fallar.
	TimeoutSeconds int
}

// Timeout devuelve el límite como time.Duration (0 = sin límite).
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogConfig configura el log estructurado. La TUI es dueña de stdout, así
// que sin File el log queda desactivado.
type LogConfig struct {
	File  string
	Level string // trace, debug, info, warn, error
}

// Load lee la configuración desde variables de entorno (y opcionalmente un
// archivo .env en el directorio actual). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		API: APIConfig{
			URL:            getString(v, "INVENTARIO_API_URL", "http://127.0.0.1:8000"),
			TimeoutSeconds: v.GetInt("INVENTARIO_TIMEOUT_SECONDS"),
		},
		Log: LogConfig{
			File:  getString(v, "INVENTARIO_LOG_FILE", ""),
			Level: getString(v, "INVENTARIO_LOG_LEVEL", "info"),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("INVENTARIO_API_URL", "http://127.0.0.1:8000")
	v.SetDefault("INVENTARIO_TIMEOUT_SECONDS", 0)
	v.SetDefault("INVENTARIO_LOG_LEVEL", "info")
}

func getString(v *viper.Viper, key, fallback string) string {
	s := strings.TrimSpace(v.GetString(key))
	if s == "" {
		return fallback
	}
	return s
}
