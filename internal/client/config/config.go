package config

import (
	"os"
	"time"
)

// TokenEnv names the environment variable that may carry the bearer token.
const TokenEnv = "REDESOCIAL_TOKEN"

// Config holds runtime settings for the redesocial CLI.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	Token              string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.Token = os.Getenv(TokenEnv)
}

// LoadConfig applies defaults, then JSON, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
