package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"

[admin]
user_ids = ["admin-1"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "Europe/London", cfg.Business.Timezone)
	assert.Equal(t, 5, cfg.Booking.Timeout)
	assert.Equal(t, []string{"admin-1"}, cfg.Admin.UserIDs)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv(EnvDBPassword, "s3cret")
	t.Setenv(EnvMongoURI, "mongodb://mongo:27017")

	path := writeConfig(t, `
[database]
password = "from-file"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown driver", body: "[storage]\ndriver = \"firestore\""},
		{name: "bad timezone", body: "[business]\ntimezone = \"Mars/Olympus\""},
		{name: "zero timeout", body: "[booking]\ntimeout = 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
