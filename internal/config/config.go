package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"mutt/internal/bloodline"
)

const (
	DefaultConfigFile = "mutt.yaml"
	EnvPrefix         = "MUTT_"
)

type ProjectConfig struct {
	Project     string            `yaml:"project" koanf:"project"`
	Version     int               `yaml:"version" koanf:"version"`
	Database    DatabaseConfig    `yaml:"database" koanf:"database"`
	Neo4j       Neo4jConfig       `yaml:"neo4j,omitempty" koanf:"neo4j"`
	Server      ServerConfig      `yaml:"server" koanf:"server"`
	Log         LogConfig         `yaml:"log" koanf:"log"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard" koanf:"leaderboard"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" koanf:"driver"`
	DSN    string `yaml:"dsn" koanf:"dsn"`
}

// Neo4jConfig enables the lineage graph projection when URI is set.
type Neo4jConfig struct {
	URI      string `yaml:"uri,omitempty" koanf:"uri"`
	Username string `yaml:"username,omitempty" koanf:"username"`
	Password string `yaml:"password,omitempty" koanf:"password"`
	Database string `yaml:"database,omitempty" koanf:"database"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" koanf:"addr"`
}

type LogConfig struct {
	Mode  string `yaml:"mode" koanf:"mode"`
	Level string `yaml:"level" koanf:"level"`
}

type LeaderboardConfig struct {
	Limit int `yaml:"limit" koanf:"limit"`
}

func defaults() map[string]any {
	return map[string]any{
		"version":           1,
		"database.driver":   "sqlite",
		"server.addr":       ":8080",
		"log.mode":          "development",
		"log.level":         "info",
		"leaderboard.limit": bloodline.SacredCount,
	}
}

// LoadProjectConfig reads path and applies MUTT_ environment overrides on
// top. MUTT_DATABASE_DSN maps to database.dsn.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading project config defaults: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading project config env: %w", err)
	}

	var cfg ProjectConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Database.Driver)) {
	case "postgres", "sqlite":
		cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	default:
		return fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	if cfg.Database.Driver == "sqlite" && !strings.HasPrefix(cfg.Database.DSN, "sqlite://") {
		return fmt.Errorf("sqlite dsn must start with sqlite://")
	}

	if cfg.Leaderboard.Limit < 1 {
		return fmt.Errorf("leaderboard limit must be at least 1")
	}
	if cfg.Neo4j.URI != "" && strings.TrimSpace(cfg.Neo4j.Username) == "" {
		return fmt.Errorf("neo4j username is required when uri is set")
	}

	return nil
}

// GraphEnabled reports whether the neo4j projection is configured.
func (c *ProjectConfig) GraphEnabled() bool {
	return c != nil && strings.TrimSpace(c.Neo4j.URI) != ""
}
