package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const permission = 0o664

// ============================================================
// Logger Builder
// ============================================================

type Builder struct {
	writer io.Writer
	path   string
	level  string
	format string
}

func New() *Builder {
	return &Builder{level: "info", format: "console"}
}

func (b *Builder) ToWriter(w io.Writer) *Builder {
	b.writer = w
	return b
}

// ToFile пишет логи в файл вместо stdout.
func (b *Builder) ToFile(path string) *Builder {
	b.path = path
	return b
}

func (b *Builder) Level(level string) *Builder {
	b.level = level
	return b
}

// Format задаёт формат вывода: "console" или "json".
func (b *Builder) Format(format string) *Builder {
	b.format = format
	return b
}

// Make собирает логгер; неизвестный уровень заменяется на info.
// The returned closer releases the log file, if any.
func (b *Builder) Make() (zerolog.Logger, io.Closer, error) {
	var out io.Writer = os.Stdout
	if b.writer != nil {
		out = b.writer
	}

	var closer io.Closer = nopCloser{}
	if b.path != "" {
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		out = zerolog.SyncWriter(f)
		closer = f
	}

	if b.format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: b.writer != nil || b.path != ""}
	}

	level, err := zerolog.ParseLevel(b.level)
	if err != nil || b.level == "" {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
