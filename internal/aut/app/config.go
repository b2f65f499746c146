package app

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the process configuration, loaded once at startup from AUT_*
// environment variables and passed by value from there on.
type Config struct {
	Host      string `default:"0.0.0.0"`                       // Optional: bind address
	Port      int    `default:"5555"`                          // Optional: HTTP server port
	UsersFile string `envconfig:"USERS_FILE" required:"true"`  // Required: path to the user directory file

	Env                 string        `default:"dev"`                     // Environment (dev, staging, prod)
	LogLevel            string        `split_words:"true" default:"info"` // Log level (debug, info, warn, error)
	LogFormat           string        `split_words:"true" default:"json"` // Log format (json, text)
	ShutdownGracePeriod time.Duration `split_words:"true" default:"10s"`  // Graceful shutdown timeout
}

// LoadConfig populates Config from the environment (AUT_HOST, AUT_PORT,
// AUT_USERS_FILE, ...).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("aut", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
