package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs_ProsecraftHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PROSECRAFT_HOME", home)

	cfgDir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, cfgDir)

	dataDir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), dataDir)
}

func TestDataDir_XDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("PROSECRAFT_HOME", "")
	t.Setenv("XDG_DATA_HOME", xdg)

	dataDir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "prosecraft"), dataDir)
}
