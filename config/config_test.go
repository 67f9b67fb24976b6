package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, "media", cfg.MediaDir)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoadConfigMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateStorageBackend(t *testing.T) {
	cfg := &Config{JWTSecret: "s", StorageBackend: "s3"}
	assert.Error(t, cfg.Validate(), "s3 backend requires a bucket")

	cfg.S3Bucket = "recipebook-images"
	assert.NoError(t, cfg.Validate())

	cfg.StorageBackend = "ftp"
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5432", DBUser: "app",
		DBPassword: "pw", DBName: "recipebook", DBSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=recipebook sslmode=disable", cfg.DSN())
}
