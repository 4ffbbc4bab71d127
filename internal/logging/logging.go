package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Форматы вывода логов
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel разбирает уровень логирования (debug|info|warn|error)
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// New создает logger с текстовым или JSON обработчиком.
// Пустой level означает info, пустой format означает text.
func New(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl := slog.LevelInfo
	if level != "" {
		var err error
		if lvl, err = ParseLevel(level); err != nil {
			return nil, err
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be one of [%s %s]", format, FormatText, FormatJSON)
	}
}

// Discard logger для тихих команд и тестов
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
