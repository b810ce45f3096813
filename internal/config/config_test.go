package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "sqlite", cfg.DB.Driver)
	require.Equal(t, "local", cfg.Storage.Backend)
	require.Equal(t, time.Hour, cfg.JWT.AccessTTL)
	require.Equal(t, []string{"csv"}, cfg.Upload.AllowedExtensions)
	require.Equal(t, int64(32<<20), cfg.Upload.MaxBytes)
	require.Equal(t, int64(1<<20), cfg.API.MaxBodyBytes)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	settings := `
db:
  driver: postgres
  source: postgres://from-file
jwt:
  secret: file-secret
  access_ttl: 15m
storage:
  backend: s3
  s3:
    bucket: tables
upload:
  allowed_extensions: [csv, tsv]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yml"), []byte(settings), 0644))
	t.Setenv("DB_SOURCE", "postgres://from-env")
	t.Setenv("STORAGE_S3_PREFIX", "prod")

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	require.Equal(t, "postgres", cfg.DB.Driver)
	require.Equal(t, "postgres://from-env", cfg.DB.Source)
	require.Equal(t, "file-secret", cfg.JWT.Secret)
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	require.Equal(t, "tables", cfg.Storage.S3.Bucket)
	require.Equal(t, "prod", cfg.Storage.S3.Prefix)
	require.Equal(t, []string{"csv", "tsv"}, cfg.Upload.AllowedExtensions)
}
