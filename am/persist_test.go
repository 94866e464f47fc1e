package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTOML(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, toml.Unmarshal(data, &out))
	return out
}

func TestWriteDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", ConfigFileName)
	require.NoError(t, WriteDefaults(path))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "hiero.db", cfg.History.Path)

	err = WriteDefaults(path)
	assert.ErrorContains(t, err, "already exists")
}

func TestSetValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	require.NoError(t, SetValue(path, "server.port", "9300"))
	require.NoError(t, SetValue(path, "convert.warn_unsupported", "false"))
	require.NoError(t, SetValue(path, "server.requests_per_second", "2.5"))
	require.NoError(t, SetValue(path, "server.allowed_origins", "http://a, http://b"))
	require.NoError(t, SetValue(path, "server.log_theme", "gruvbox"))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9300, cfg.Server.Port)
	assert.False(t, cfg.Convert.WarnUnsupported)
	assert.Equal(t, 2.5, cfg.Server.RequestsPerSecond)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gruvbox", cfg.Server.LogTheme)

	server := readTOML(t, path)["server"].(map[string]interface{})
	assert.EqualValues(t, 9300, server["port"])
}

func TestSetValueRejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	assert.ErrorContains(t, SetValue(path, "server.nope", "1"), "unknown config key")
	assert.ErrorContains(t, SetValue(path, "server", "1"), "is a section")
	assert.ErrorContains(t, SetValue(path, "server.port", "many"), "expects an integer")
	assert.ErrorContains(t, SetValue(path, "batch.tolerant", "maybe"), "expects true or false")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing written on error")
}

func TestSetValueRotatesBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	for _, port := range []string{"9001", "9002", "9003", "9004", "9005"} {
		require.NoError(t, SetValue(path, "server.port", port))
	}

	for suffix, want := range map[string]int64{".back1": 9004, ".back2": 9003, ".back3": 9002} {
		server := readTOML(t, path+suffix)["server"].(map[string]interface{})
		assert.EqualValues(t, want, server["port"], suffix)
	}
	_, err := os.Stat(path + ".back4")
	assert.True(t, os.IsNotExist(err))
}
