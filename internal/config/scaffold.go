package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"mutt/internal/bloodline"
)

// Scaffold renders a starter mutt.yaml for project backed by a local sqlite
// file.
func Scaffold(project string) ([]byte, error) {
	cfg := ProjectConfig{
		Project: project,
		Version: 1,
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "sqlite://./mutt.db",
		},
		Server:      ServerConfig{Addr: ":8080"},
		Log:         LogConfig{Mode: "development", Level: "info"},
		Leaderboard: LeaderboardConfig{Limit: bloodline.SacredCount},
	}
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering config scaffold: %w", err)
	}
	return out, nil
}
