package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

const filteredKey = "_filtered"

// FilterHook marks entries outside the configured module and level allow lists.
// AsyncHook skips marked entries.
type FilterHook struct {
	allowedModules  map[string]bool
	allowedLogTypes map[string]bool
}

// NewFilterHook builds the allow lists from cfg.
func NewFilterHook(cfg *LogConfig) *FilterHook {
	return &FilterHook{
		allowedModules:  parseFilter(cfg.FilterModules),
		allowedLogTypes: parseFilter(cfg.FilterLogTypes),
	}
}

// parseFilter turns "a,b,c" into a set. Empty input or "*" yields nil, which allows everything.
func parseFilter(filter string) map[string]bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == "*" {
		return nil
	}
	result := make(map[string]bool)
	for _, v := range strings.Split(filter, ",") {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			result[v] = true
		}
	}
	return result
}

// Levels implements logrus.Hook.
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if h.allowedLogTypes != nil && !h.allowedLogTypes[entry.Level.String()] {
		entry.Data[filteredKey] = true
		return nil
	}

	// Entries without a module field always pass.
	if h.allowedModules != nil {
		if module, ok := entry.Data["module"].(string); ok && module != "" {
			if !h.allowedModules[strings.ToLower(module)] {
				entry.Data[filteredKey] = true
			}
		}
	}
	return nil
}
