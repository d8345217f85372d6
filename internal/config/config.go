package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the NutriTrack shell.
type Config struct {
	StoreDriver     string
	StoreDSN        string
	StorePassphrase string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string

	Window   time.Duration
	SeedDemo bool

	LogLevel  string
	LogFormat string

	JWTSecret string

	ClassifierBaseURL string
	ClassifierModel   string
	ClassifierToken   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreDriver = "sqlite"
	c.StoreDSN = "data/nutritrack.db"
	c.S3Region = "us-east-1"
	c.S3Prefix = "nutritrack"
	c.Window = 24 * time.Hour
	c.SeedDemo = true
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.ClassifierBaseURL = "https://api.openai.com/v1"
	c.ClassifierModel = "gpt-4o-mini"
}

// Load builds a Config from defaults, the JSON file named in args, the
// environment and finally args themselves. Later sources take precedence.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	parseEnv(cfg, getenv)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.Getenv)
}

// ClassifierEnabled reports whether image recognition can be used.
func (c *Config) ClassifierEnabled() bool {
	return c.ClassifierToken != "" && c.ClassifierModel != ""
}
