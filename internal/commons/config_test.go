package commons

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  host: db.internal
  port: 3307
  user: svc
  password: pw
  name: orders
  maxOpenConns: 10
  maxIdleConns: 2
  connMaxLifetime: 10m
log:
  level: debug
order:
  cancelTxTimeout: 3s
job:
  promotionInterval: 1m
`)

	cfg, err := LoadConfig(path)

	assert.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 10*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3*time.Second, cfg.Order.CancelTxTimeout)
	assert.Equal(t, time.Minute, cfg.Job.PromotionInterval)
}

func TestLoadConfig_DurationDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	cfg, err := LoadConfig(path)

	assert.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Order.CancelTxTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Job.PromotionInterval)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("does/not/exist.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_BadDuration(t *testing.T) {
	path := writeConfig(t, `
job:
  promotionInterval: soon
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
