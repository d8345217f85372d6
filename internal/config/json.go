package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/nutritrack/internal/flagx"
	"github.com/dmitrijs2005/nutritrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// empty values mean "not set" and leave the Config untouched.
type JsonConfig struct {
	StoreDriver     string `json:"store_driver"`
	StoreDSN        string `json:"store_dsn"`
	StorePassphrase string `json:"store_passphrase"`

	S3Bucket    string `json:"s3_bucket"`
	S3Region    string `json:"s3_region"`
	S3Endpoint  string `json:"s3_endpoint"`
	S3AccessKey string `json:"s3_access_key"`
	S3SecretKey string `json:"s3_secret_key"`
	S3Prefix    string `json:"s3_prefix"`

	Window   *timex.Duration `json:"window"`
	SeedDemo *bool           `json:"seed_demo"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	JWTSecret string `json:"jwt_secret"`

	ClassifierBaseURL string `json:"classifier_base_url"`
	ClassifierModel   string `json:"classifier_model"`
	ClassifierToken   string `json:"classifier_token"`
}

// parseJSON overlays cfg with the JSON file given by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.StoreDriver, jc.StoreDriver)
	setString(&cfg.StoreDSN, jc.StoreDSN)
	setString(&cfg.StorePassphrase, jc.StorePassphrase)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.JWTSecret, jc.JWTSecret)
	setString(&cfg.ClassifierBaseURL, jc.ClassifierBaseURL)
	setString(&cfg.ClassifierModel, jc.ClassifierModel)
	setString(&cfg.ClassifierToken, jc.ClassifierToken)

	if jc.Window != nil && jc.Window.Duration > 0 {
		cfg.Window = jc.Window.Duration
	}
	if jc.SeedDemo != nil {
		cfg.SeedDemo = *jc.SeedDemo
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
