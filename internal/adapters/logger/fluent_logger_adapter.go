package logger_adapter

import (
	"errors"
	"log/slog"
	"time"

	"listing-service/internal/core/port"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// fluentPoster - то, что нам нужно от *fluent.Fluent
type fluentPoster interface {
	Post(tag string, message interface{}) error
	Close() error
}

// FluentLoggerAdapter отправляет записи в Fluent Bit.
// Тег формируется как "<prefix>.<level>", например "listing.error".
type FluentLoggerAdapter struct {
	client    fluentPoster
	tagPrefix string
	fields    port.Fields
	minLevel  slog.Level
}

func NewFluentLoggerAdapter(client *fluent.Fluent, tagPrefix string, minLevel slog.Leveler) (*FluentLoggerAdapter, error) {
	if client == nil {
		return nil, errors.New("fluent client cannot be nil")
	}
	return newFluentAdapter(client, tagPrefix, minLevel), nil
}

func newFluentAdapter(client fluentPoster, tagPrefix string, minLevel slog.Leveler) *FluentLoggerAdapter {
	level := slog.LevelInfo
	if minLevel != nil {
		level = minLevel.Level()
	}
	return &FluentLoggerAdapter{
		client:    client,
		tagPrefix: tagPrefix,
		fields:    port.Fields{},
		minLevel:  level,
	}
}

func (a *FluentLoggerAdapter) merged(fields port.Fields) port.Fields {
	out := make(port.Fields, len(a.fields)+len(fields)+3)
	for k, v := range a.fields {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func (a *FluentLoggerAdapter) post(level slog.Level, name, msg string, data port.Fields) {
	if level < a.minLevel {
		return
	}
	data["level"] = name
	data["message"] = msg
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)

	tag := name
	if a.tagPrefix != "" {
		tag = a.tagPrefix + "." + name
	}
	// ошибка отправки не должна ронять запрос
	_ = a.client.Post(tag, map[string]interface{}(data))
}

func (a *FluentLoggerAdapter) Info(msg string, fields port.Fields) {
	a.post(slog.LevelInfo, "info", msg, a.merged(fields))
}

func (a *FluentLoggerAdapter) Warn(msg string, fields port.Fields) {
	a.post(slog.LevelWarn, "warn", msg, a.merged(fields))
}

func (a *FluentLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	data := a.merged(fields)
	if err != nil {
		data["error"] = err.Error()
	}
	a.post(slog.LevelError, "error", msg, data)
}

func (a *FluentLoggerAdapter) Debug(msg string, fields port.Fields) {
	a.post(slog.LevelDebug, "debug", msg, a.merged(fields))
}

func (a *FluentLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &FluentLoggerAdapter{
		client:    a.client,
		tagPrefix: a.tagPrefix,
		fields:    a.merged(fields),
		minLevel:  a.minLevel,
	}
}

func (a *FluentLoggerAdapter) Close() error {
	return a.client.Close()
}
