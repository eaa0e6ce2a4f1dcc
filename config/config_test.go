package config

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("NUTRISAUR_JWT__SECRET", "test-secret")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfigDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "nutrisaur", cfg.Database.Name)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 20, cfg.Engine.CacheSize)
	assert.Equal(t, 150, cfg.Engine.CandidateCap)
	assert.Equal(t, 50, cfg.Engine.ResultCap)
	assert.Equal(t, "db", cfg.Catalog.Source)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("NUTRISAUR_ENGINE__CACHE_SIZE", "5")
	t.Setenv("NUTRISAUR_RATE_LIMIT__WINDOW", "30s")
	t.Setenv("NUTRISAUR_SERVER__CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "dishes")
	t.Setenv("CATALOG_ADMINS", "maria, jun")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Engine.CacheSize)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "dishes", cfg.Database.Name)
	assert.Equal(t, []string{"maria", "jun"}, cfg.Catalog.Admins)
}

func TestLoadConfigFileAndSecrets(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("database:\n  driver: sqlite\n  path: /tmp/dishes.db\ncatalog:\n  source: file\n  path: dishes.json\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	secrets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "jwt_secret"), []byte("from-secret-file\n"), 0o600))
	t.Setenv("SECRETS_DIR", secrets)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/dishes.db", cfg.Database.Path)
	assert.Equal(t, "file", cfg.Catalog.Source)
	assert.Equal(t, "from-secret-file", cfg.JWT.Secret)
}

func TestValidateConfig(t *testing.T) {
	t.Run("valid defaults", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.JWT.Secret = "dev"
		cfg.Environment = Development
		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("bad enum values", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.JWT.Secret = "dev"
		cfg.Database.Driver = "mysql"
		cfg.Catalog.Source = "s3"
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Database.Driver")
		assert.Contains(t, err.Error(), "Catalog.Bucket")
	})

	t.Run("production requires real secrets", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Environment = Production
		cfg.JWT.Secret = "short"
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT.Secret")
		assert.Contains(t, err.Error(), "Database.Password")
	})

	t.Run("engine limits", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.JWT.Secret = "dev"
		cfg.Engine.BackfillTarget = 500
		assert.Error(t, ValidateConfig(cfg))
	})
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("Production"))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}

type fakeObjects struct {
	body []byte
	key  string
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.key = *in.Key
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func TestS3Fetch(t *testing.T) {
	objects := &fakeObjects{body: []byte(`[{"code":"adobo"}]`)}
	s := &S3Config{Client: objects, BucketName: "catalog"}

	data, err := s.Fetch(context.Background(), "dishes.json")
	require.NoError(t, err)
	assert.Equal(t, "dishes.json", objects.key)
	assert.JSONEq(t, `[{"code":"adobo"}]`, string(data))
}
