package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("videos", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("videos", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	got, ok := r.Get("videos")
	assert.True(t, ok)
	assert.Equal(t, 2, got)

	_, err = r.Register("", 3)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry[string]()
	_, _ = r.Register("users", "u")
	_, _ = r.Register("likes", "l")
	_, _ = r.Register("comments", "c")
	assert.Equal(t, []string{"comments", "likes", "users"}, r.Names())
}

func TestRegistry_MustGetPanics(t *testing.T) {
	r := NewRegistry[int]()
	assert.Panics(t, func() { r.MustGet("missing") })
}
