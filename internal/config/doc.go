// Package config loads runtime configuration for the NutriTrack shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. NUTRITRACK_* environment variables (secrets and the store choice).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-store string        memory | sqlite | postgres | s3
//	-dsn string          database DSN (sqlite file or postgres URL)
//	-bucket string       S3 bucket
//	-s3-region string    S3 region
//	-s3-endpoint string  S3-compatible endpoint, e.g. http://127.0.0.1:9000
//	-s3-prefix string    key prefix inside the bucket
//	-window duration     span of the recent view, e.g. 24h
//	-seed-demo bool      seed new users with the demo day
//	-log-level string    debug | info | warn | error
//	-log-format string   text | json
//	-classifier-url string, -classifier-model string
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "24h" or integer
// nanoseconds. Absent keys keep their previous value:
//
//	{
//	  "store_driver": "sqlite",
//	  "store_dsn": "data/nutritrack.db",
//	  "window": "24h",
//	  "seed_demo": true,
//	  "log_level": "info"
//	}
//
// # Environment
//
//	NUTRITRACK_STORE_DRIVER, NUTRITRACK_STORE_DSN, NUTRITRACK_STORE_PASSPHRASE,
//	NUTRITRACK_S3_ACCESS_KEY, NUTRITRACK_S3_SECRET_KEY, NUTRITRACK_JWT_SECRET,
//	NUTRITRACK_CLASSIFIER_TOKEN
package config
