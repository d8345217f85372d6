package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/nutritrack/internal/flagx"
)

var knownFlags = []string{
	"-store", "-dsn", "-bucket", "-s3-region", "-s3-endpoint", "-s3-prefix",
	"-window", "-seed-demo", "-log-level", "-log-format",
	"-classifier-url", "-classifier-model",
}

// parseFlags populates cfg from command-line flags. Arguments that belong
// to other loaders (such as -c) are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("nutritrack", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "store backend: memory, sqlite, postgres or s3")
	fs.StringVar(&cfg.StoreDSN, "dsn", cfg.StoreDSN, "database DSN")
	fs.StringVar(&cfg.S3Bucket, "bucket", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3-compatible endpoint URL")
	fs.StringVar(&cfg.S3Prefix, "s3-prefix", cfg.S3Prefix, "key prefix inside the bucket")
	fs.DurationVar(&cfg.Window, "window", cfg.Window, "span of the recent view")
	fs.BoolVar(&cfg.SeedDemo, "seed-demo", cfg.SeedDemo, "seed new users with demo data")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.StringVar(&cfg.ClassifierBaseURL, "classifier-url", cfg.ClassifierBaseURL, "OpenAI-compatible API base URL")
	fs.StringVar(&cfg.ClassifierModel, "classifier-model", cfg.ClassifierModel, "vision model name")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if cfg.Window <= 0 {
		return fmt.Errorf("parse flags: window must be positive, got %s", cfg.Window)
	}
	return nil
}
