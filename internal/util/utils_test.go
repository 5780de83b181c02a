package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, Clamp(-2, 0, 1))
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
}

func TestClamp32(t *testing.T) {
	assert.Equal(t, float32(0.25), Clamp32(0.25, 0, 1))
	assert.Equal(t, float32(0), Clamp32(-1, 0, 1))
	assert.Equal(t, float32(1), Clamp32(1.5, 0, 1))
}

func TestCreateDirIfNotExist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.False(t, DirExists(dir))
	require.NoError(t, CreateDirIfNotExist(dir))
	assert.True(t, DirExists(dir))
	// Idempotent
	assert.NoError(t, CreateDirIfNotExist(dir))
}
