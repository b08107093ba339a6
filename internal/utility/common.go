package utility

import (
	"runtime/debug"

	"github.com/Dhairyash-1/videotube-api/internal/logger"
)

// GoProtect runs f, logging a panic instead of letting it take the process down.
func GoProtect(f func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetAppLogger().WithField("stack", string(debug.Stack())).Errorf("Recovered panic: %v", r)
		}
	}()
	f()
}
