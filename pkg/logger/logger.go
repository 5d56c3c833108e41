package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger del servicio.
type Config struct {
	Service string // nombre fijo que acompaña cada línea (ej. "socorro-api")
	Env     string // development -> consola legible; otro valor -> JSON
	Level   string // trace, debug, info, warn, error
}

// Logger wrapper fino sobre zerolog, pensado para inyectarse por constructor.
// Component deriva sub-loggers etiquetados por subsistema (sync, cache, audit).
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger raíz. En development escribe consola legible; en
// cualquier otro entorno, JSON por línea. También sustituye el logger global
// de zerolog para las librerías que escriben a través de él.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	ctx := zerolog.New(w).Level(lvl).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Component devuelve un sub-logger con el campo "component" fijado, para
// distinguir el origen de cada línea sin repetir el campo en cada evento.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sub-logger con campos arbitrarios fijos.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog expone el logger interno para quien necesite la API directa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
