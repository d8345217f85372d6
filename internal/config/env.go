package config

const envPrefix = "NUTRITRACK_"

// parseEnv overlays cfg with NUTRITRACK_* variables. Secrets are expected
// here rather than in files or on the command line.
func parseEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}
	vars := map[string]*string{
		"STORE_DRIVER":     &cfg.StoreDriver,
		"STORE_DSN":        &cfg.StoreDSN,
		"STORE_PASSPHRASE": &cfg.StorePassphrase,
		"S3_ACCESS_KEY":    &cfg.S3AccessKey,
		"S3_SECRET_KEY":    &cfg.S3SecretKey,
		"JWT_SECRET":       &cfg.JWTSecret,
		"CLASSIFIER_TOKEN": &cfg.ClassifierToken,
	}
	for name, dst := range vars {
		setString(dst, getenv(envPrefix+name))
	}
}
