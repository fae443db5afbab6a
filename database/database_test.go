package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
		"db_host": "localhost",
		"db_user": "quiz",
		"db_password": "secret",
		"db_name": "quizdb",
		"db_sslmode": "disable"
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", config.DBHost)
	assert.Equal(t, "quiz", config.DBUser)
	assert.Equal(t, "secret", config.DBPassword)
	assert.Equal(t, "quizdb", config.DBName)
	assert.Equal(t, "disable", config.DBSSLMode)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
