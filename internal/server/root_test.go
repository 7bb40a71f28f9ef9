package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	tests := []struct {
		name   string
		folder string
	}{
		{"capitalized", "TES3MP-Server-GNU-Linux-x86_64"},
		{"mixed case", "TES3MP-server-0.8.1"},
		{"lowercase", "tes3mp-server-build"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(base, tt.folder), 0755))

			root, ok := Root(base)
			require.True(t, ok)
			assert.Equal(t, filepath.Join(base, tt.folder), root)
		})
	}
}

func TestRoot_NotInstalled(t *testing.T) {
	_, ok := Root(t.TempDir())
	assert.False(t, ok)

	_, ok = Root(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.False(t, ok)
}

func TestRoot_IgnoresUnrelatedEntries(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "backups"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "notes.txt"), []byte("x"), 0644))

	_, ok := Root(base)
	assert.False(t, ok)
}
