package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDMapPutGet(t *testing.T) {
	m := NewIDMap()
	require.NoError(t, m.Put("local-1", "remote-1"))
	require.NoError(t, m.Put("local-2", "remote-2"))

	got, ok := m.Get("local-1")
	assert.True(t, ok)
	assert.Equal(t, "remote-1", got)

	_, ok = m.Get("local-9")
	assert.False(t, ok)

	assert.Equal(t, 2, m.Len())
}

func TestIDMapRejectsDuplicateOld(t *testing.T) {
	m := NewIDMap()
	require.NoError(t, m.Put("local-1", "remote-1"))

	err := m.Put("local-1", "remote-2")
	require.Error(t, err)

	// The original mapping survives.
	got, ok := m.Get("local-1")
	assert.True(t, ok)
	assert.Equal(t, "remote-1", got)
}

func TestIDMapRejectsDuplicateNew(t *testing.T) {
	m := NewIDMap()
	require.NoError(t, m.Put("local-1", "remote-1"))

	err := m.Put("local-2", "remote-1")
	require.Error(t, err)
	assert.Equal(t, 1, m.Len())
}
