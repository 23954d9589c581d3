package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, "/games", c.BasePath)
	assert.Equal(t, "Asia/Seoul", c.TimeZone)
	assert.Equal(t, 4, c.QuestionCount)
	assert.Equal(t, 2*time.Second, c.RenderWait)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "quizweb.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
addr: ":9000"
db:
  driver: pgx
  dsn: postgres://localhost/quiz
base_path: quiz/
render_wait: 500ms
session_ttl: 1h
log:
  level: debug
`), 0o600))

	t.Setenv("QUIZWEB_LOG_LEVEL", "warn")
	t.Setenv("PORT", "")
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "pgx", c.DB.Driver)
	assert.Equal(t, "postgres://localhost/quiz", c.DB.DSN)
	assert.Equal(t, "/quiz", c.BasePath)
	assert.Equal(t, 500*time.Millisecond, c.RenderWait)
	assert.Equal(t, time.Hour, c.SessionTTL)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, time.Minute, c.SweepInterval, "unset keys keep defaults")
}

func TestLoad_PortEnv(t *testing.T) {
	t.Setenv("PORT", "8181")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8181", c.Addr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("addr: [unterminated"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("QUIZWEB_RENDER_WAIT", "soon")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"driver", func(c *Config) { c.DB.Driver = "mysql" }},
		{"dsn", func(c *Config) { c.DB.DSN = "" }},
		{"questions", func(c *Config) { c.QuestionCount = 0 }},
		{"ttl", func(c *Config) { c.SessionTTL = 0 }},
		{"base", func(c *Config) { c.BasePath = "/" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}
