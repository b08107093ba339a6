package logger

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(cfg *LogConfig, out *syncBuffer) (*logrus.Logger, *AsyncHook) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	l.AddHook(NewFilterHook(cfg))
	hook := NewAsyncHookWithWriters([]io.Writer{out}, 10)
	l.AddHook(hook)
	l.SetOutput(&bytes.Buffer{})
	return l, hook
}

func TestParseFilter(t *testing.T) {
	assert.Nil(t, parseFilter(""))
	assert.Nil(t, parseFilter("*"))
	assert.Equal(t, map[string]bool{"auth": true, "video": true}, parseFilter(" Auth, video ,"))
}

func TestAsyncHook_WritesMessageAndLevel(t *testing.T) {
	out := &syncBuffer{}
	l, hook := newTestLogger(&LogConfig{}, out)

	l.WithField("module", "video").Warn("video deleted")
	require.NoError(t, hook.Close())

	assert.Contains(t, out.String(), "level=warning")
	assert.Contains(t, out.String(), "video deleted")
	assert.NotContains(t, out.String(), filteredKey)
}

func TestFilterHook_DropsUnlistedModules(t *testing.T) {
	out := &syncBuffer{}
	l, hook := newTestLogger(&LogConfig{FilterModules: "auth"}, out)

	l.WithField("module", "video").Info("dropped")
	l.WithField("module", "auth").Info("kept")
	l.Info("no module")
	require.NoError(t, hook.Close())

	assert.NotContains(t, out.String(), "dropped")
	assert.Contains(t, out.String(), "kept")
	assert.Contains(t, out.String(), "no module")
}

func TestFilterHook_DropsUnlistedLevels(t *testing.T) {
	out := &syncBuffer{}
	l, hook := newTestLogger(&LogConfig{FilterLogTypes: "error"}, out)

	l.Info("info line")
	l.Error("error line")
	require.NoError(t, hook.Close())

	assert.NotContains(t, out.String(), "info line")
	assert.Contains(t, out.String(), "error line")
}
