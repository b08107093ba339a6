package logger

import (
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

func initSentry(cfg *LogConfig) error {
	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		AttachStacktrace: true,
	})
}

func flushSentry() {
	sentry.Flush(2 * time.Second)
}

// SentryHook forwards error, fatal and panic entries to Sentry.
type SentryHook struct {
	hub *sentry.Hub
}

// NewSentryHook uses the hub configured by Init.
func NewSentryHook() *SentryHook {
	return &SentryHook{hub: sentry.CurrentHub()}
}

// Levels implements logrus.Hook.
func (h *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

// Fire implements logrus.Hook.
func (h *SentryHook) Fire(entry *logrus.Entry) error {
	if filtered, ok := entry.Data[filteredKey].(bool); ok && filtered {
		return nil
	}

	extra := sentry.Context{}
	var cause error
	for k, v := range entry.Data {
		if k == logrus.ErrorKey {
			if err, ok := v.(error); ok {
				cause = err
				continue
			}
		}
		extra[k] = fmt.Sprint(v)
	}

	h.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetContext("log", extra)
		if module, ok := entry.Data["module"].(string); ok {
			scope.SetTag("module", module)
		}
		if cause != nil {
			h.hub.CaptureException(fmt.Errorf("%s: %w", entry.Message, cause))
			return
		}
		h.hub.CaptureException(errors.New(entry.Message))
	})
	return nil
}
