// Package config provides configuration for the Connect Four client.
//
// The config package handles:
//   - Defaults declared on the Config struct
//   - An optional YAML configuration file
//   - Environment variable overrides
//   - Selecting the server endpoint for the runtime environment
//   - Deriving the join token from a game id or an invitation link
//   - Validation
//
// Configuration Format:
//
//	environment: production
//	production-url: wss://connect4.example.com/
//	page-url: https://connect4.example.com/
//	columns: 7
//	rows: 6
//	notify-delay: 50ms
//
// Environment variables use the CONNECT4_ prefix, for example
// CONNECT4_ENV, CONNECT4_SERVER_URL and CONNECT4_GAME_ID.
//
// Usage:
//
//	cfg, err := config.Load(path)
//	if err != nil {
//		log.Fatal(err)
//	}
//	endpoint := cfg.Endpoint()
package config
