package logger

import (
	"os"

	"github.com/rs/zerolog"

	"inventario-cli/internal/config"
)

// New crea un logger estructurado escribiendo al archivo configurado. La TUI
// es dueña de la terminal, por eso nunca se loguea a stdout: sin archivo el
// logger es no-op. El cierre devuelto libera el archivo.
func New(cfg config.LogConfig) (zerolog.Logger, func(), error) {
	if cfg.File == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	zl := zerolog.New(f).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	return zl, func() { _ = f.Close() }, nil
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
