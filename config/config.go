package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Runtime environments
const (
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Front-end modes
const (
	ModeConsole = "console"
	ModeMCP     = "mcp"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every client setting
type Config struct {
	Environment   string `yaml:"environment" env:"CONNECT4_ENV" env-default:"local"`
	LocalURL      string `yaml:"local-url" env:"CONNECT4_LOCAL_URL" env-default:"ws://localhost:8001/"`
	ProductionURL string `yaml:"production-url" env:"CONNECT4_PRODUCTION_URL"`
	// ServerURL overrides the environment's endpoint when set.
	ServerURL string `yaml:"server-url" env:"CONNECT4_SERVER_URL"`

	PageURL  string `yaml:"page-url" env:"CONNECT4_PAGE_URL" env-default:"http://localhost:8000/"`
	GameID   string `yaml:"game-id" env:"CONNECT4_GAME_ID"`
	JoinLink string `yaml:"join-link" env:"CONNECT4_JOIN_LINK"`

	Columns     int           `yaml:"columns" env:"CONNECT4_COLUMNS" env-default:"7"`
	Rows        int           `yaml:"rows" env:"CONNECT4_ROWS" env-default:"6"`
	NotifyDelay time.Duration `yaml:"notify-delay" env:"CONNECT4_NOTIFY_DELAY" env-default:"50ms"`

	Mode     string `yaml:"mode" env:"CONNECT4_MODE" env-default:"console"`
	HTTPAddr string `yaml:"http-addr" env:"CONNECT4_HTTP_ADDR"`
	Debug    bool   `yaml:"debug" env:"CONNECT4_DEBUG"`
}

// Load reads path, if given, and then the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// Endpoint returns the WebSocket URL to connect to.
func (c *Config) Endpoint() string {
	if c.ServerURL != "" {
		return c.ServerURL
	}
	if c.Environment == EnvProduction {
		return c.ProductionURL
	}
	return c.LocalURL
}

// JoinGameID returns the game to join, or "" to start a new one.
// An explicit GameID wins over the game_id carried by JoinLink.
func (c *Config) JoinGameID() (string, error) {
	if c.GameID != "" {
		return c.GameID, nil
	}
	if c.JoinLink == "" {
		return "", nil
	}

	id, err := gameIDFromLink(c.JoinLink)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return id, nil
}

func gameIDFromLink(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("join link: %v", err)
	}
	id := u.Query().Get("game_id")
	if id == "" {
		return "", fmt.Errorf("join link %q has no game_id", link)
	}
	return id, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	var problems []string

	switch c.Environment {
	case EnvLocal, EnvProduction:
	default:
		problems = append(problems, fmt.Sprintf("unknown environment %q", c.Environment))
	}

	endpoint := c.Endpoint()
	if endpoint == "" {
		problems = append(problems, fmt.Sprintf("no server URL for environment %q", c.Environment))
	} else if u, err := url.Parse(endpoint); err != nil || (u.Scheme != "ws" && u.Scheme != "wss") {
		problems = append(problems, fmt.Sprintf("server URL %q must be a ws:// or wss:// URL", endpoint))
	}

	if _, err := url.Parse(c.PageURL); err != nil {
		problems = append(problems, fmt.Sprintf("invalid page URL %q", c.PageURL))
	}
	if c.GameID == "" && c.JoinLink != "" {
		if _, err := gameIDFromLink(c.JoinLink); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if c.Columns <= 0 || c.Rows <= 0 {
		problems = append(problems, fmt.Sprintf("board must have positive size, got %dx%d", c.Columns, c.Rows))
	}
	if c.NotifyDelay < 0 {
		problems = append(problems, "notify delay must not be negative")
	}

	switch c.Mode {
	case ModeConsole, ModeMCP:
	default:
		problems = append(problems, fmt.Sprintf("unknown mode %q", c.Mode))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
