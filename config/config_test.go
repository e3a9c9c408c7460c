package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Environment: EnvLocal,
		LocalURL:    "ws://localhost:8001/",
		PageURL:     "http://localhost:8000/",
		Columns:     7,
		Rows:        6,
		NotifyDelay: 50 * time.Millisecond,
		Mode:        ModeConsole,
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Environment)
	assert.Equal(t, "ws://localhost:8001/", cfg.LocalURL)
	assert.Equal(t, "http://localhost:8000/", cfg.PageURL)
	assert.Equal(t, 7, cfg.Columns)
	assert.Equal(t, 6, cfg.Rows)
	assert.Equal(t, 50*time.Millisecond, cfg.NotifyDelay)
	assert.Equal(t, ModeConsole, cfg.Mode)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CONNECT4_ENV", EnvProduction)
	t.Setenv("CONNECT4_PRODUCTION_URL", "wss://connect4.example.com/")
	t.Setenv("CONNECT4_GAME_ID", "abcd")
	t.Setenv("CONNECT4_NOTIFY_DELAY", "10ms")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "wss://connect4.example.com/", cfg.Endpoint())
	assert.Equal(t, 10*time.Millisecond, cfg.NotifyDelay)

	id, err := cfg.JoinGameID()
	require.NoError(t, err)
	assert.Equal(t, "abcd", id)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "connect4.yml")
	content := `environment: production
production-url: wss://connect4.example.com/
page-url: https://connect4.example.com/
columns: 9
rows: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, "wss://connect4.example.com/", cfg.Endpoint())
	assert.Equal(t, "https://connect4.example.com/", cfg.PageURL)
	assert.Equal(t, 9, cfg.Columns)
	assert.Equal(t, 7, cfg.Rows)
	assert.Equal(t, ModeConsole, cfg.Mode, "defaults fill fields missing from the file")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.ProductionURL = "wss://prod/"
	assert.Equal(t, "ws://localhost:8001/", cfg.Endpoint())

	cfg.Environment = EnvProduction
	assert.Equal(t, "wss://prod/", cfg.Endpoint())

	cfg.ServerURL = "ws://override:9000/"
	assert.Equal(t, "ws://override:9000/", cfg.Endpoint())
}

func TestJoinGameID(t *testing.T) {
	cfg := validConfig()

	id, err := cfg.JoinGameID()
	require.NoError(t, err)
	assert.Empty(t, id, "no token means a new game")

	cfg.JoinLink = "http://localhost:8000/?game_id=wxyz"
	id, err = cfg.JoinGameID()
	require.NoError(t, err)
	assert.Equal(t, "wxyz", id)

	cfg.GameID = "abcd"
	id, err = cfg.JoinGameID()
	require.NoError(t, err)
	assert.Equal(t, "abcd", id, "explicit game id wins over the link")

	cfg.GameID = ""
	cfg.JoinLink = "http://localhost:8000/"
	_, err = cfg.JoinGameID()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown environment", func(c *Config) { c.Environment = "staging" }},
		{"missing production url", func(c *Config) { c.Environment = EnvProduction }},
		{"http endpoint", func(c *Config) { c.ServerURL = "http://localhost:8001/" }},
		{"zero columns", func(c *Config) { c.Columns = 0 }},
		{"negative rows", func(c *Config) { c.Rows = -1 }},
		{"negative delay", func(c *Config) { c.NotifyDelay = -time.Second }},
		{"unknown mode", func(c *Config) { c.Mode = "gui" }},
		{"join link without id", func(c *Config) { c.JoinLink = "http://localhost:8000/" }},
		{"bad page url", func(c *Config) { c.PageURL = "http://[::1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, validConfig().Validate())
}
