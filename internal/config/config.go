// Package config handles runtime settings: defaults, an optional YAML file
// and environment overrides, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// DBConfig selects the archive store.
type DBConfig struct {
	Driver string `yaml:"driver"` // sqlite or pgx
	DSN    string `yaml:"dsn"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Config holds all quizweb settings.
type Config struct {
	Addr          string        `yaml:"addr"`
	DB            DBConfig      `yaml:"db"`
	CatalogPath   string        `yaml:"catalog_path"` // empty uses the embedded catalog
	StaticDir     string        `yaml:"static_dir"`
	BasePath      string        `yaml:"base_path"`
	TimeZone      string        `yaml:"time_zone"`
	QuestionCount int           `yaml:"question_count"`
	RenderWait    time.Duration `yaml:"render_wait"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	Log           LogConfig     `yaml:"log"`
}

// Default returns development defaults.
func Default() *Config {
	return &Config{
		Addr:          ":8080",
		DB:            DBConfig{Driver: "sqlite", DSN: "quizweb.db"},
		StaticDir:     "static",
		BasePath:      "/games",
		TimeZone:      "Asia/Seoul",
		QuestionCount: 4,
		RenderWait:    2 * time.Second,
		SessionTTL:    30 * time.Minute,
		SweepInterval: time.Minute,
		Log:           LogConfig{Level: "info"},
	}
}

// Load builds a Config from defaults, the YAML file at path (if any) and
// the environment, then validates it.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	strs := map[string]*string{
		"QUIZWEB_ADDR":      &c.Addr,
		"QUIZWEB_DB_DRIVER": &c.DB.Driver,
		"QUIZWEB_DB_DSN":    &c.DB.DSN,
		"QUIZWEB_CATALOG":   &c.CatalogPath,
		"QUIZWEB_STATIC":    &c.StaticDir,
		"QUIZWEB_TZ":        &c.TimeZone,
		"QUIZWEB_LOG_LEVEL": &c.Log.Level,
	}
	for k, p := range strs {
		if v := getenv(k); v != "" {
			*p = v
		}
	}
	if v := getenv("QUIZWEB_RENDER_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: QUIZWEB_RENDER_WAIT: %v", ErrInvalidConfig, err)
		}
		c.RenderWait = d
	}
	return nil
}

// Validate checks field ranges and normalises the base path.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("%w: db.driver %q", ErrInvalidConfig, c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("%w: db.dsn is empty", ErrInvalidConfig)
	}
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is empty", ErrInvalidConfig)
	}
	if c.QuestionCount <= 0 {
		return fmt.Errorf("%w: question_count must be positive", ErrInvalidConfig)
	}
	if c.RenderWait < 0 || c.SessionTTL <= 0 || c.SweepInterval <= 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidConfig)
	}
	c.BasePath = "/" + strings.Trim(c.BasePath, "/")
	if c.BasePath == "/" {
		return fmt.Errorf("%w: base_path must not be the root", ErrInvalidConfig)
	}
	return nil
}
