package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/nutritrack/internal/buildinfo"
	"github.com/dmitrijs2005/nutritrack/internal/config"
	"github.com/dmitrijs2005/nutritrack/internal/filex"
	"github.com/dmitrijs2005/nutritrack/internal/identity"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/dmitrijs2005/nutritrack/internal/recognition"
	"github.com/dmitrijs2005/nutritrack/internal/session"
	"github.com/dmitrijs2005/nutritrack/internal/shell"
	"github.com/dmitrijs2005/nutritrack/internal/store"
	"github.com/tmc/langchaingo/llms/openai"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout, shell.StdinIsTerminal()); err != nil {
		logger.Error(ctx, "nutritrack stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer, interactive bool) error {
	if isFileDSN(cfg.StoreDriver, cfg.StoreDSN) {
		if _, err := filex.EnsureParentDir(cfg.StoreDSN); err != nil {
			return err
		}
	}

	st, closeStore, err := store.Open(ctx, store.Options{
		Driver: cfg.StoreDriver,
		DSN:    cfg.StoreDSN,
		S3: store.S3Options{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		},
		Bucket:     cfg.S3Bucket,
		Prefix:     cfg.S3Prefix,
		Passphrase: cfg.StorePassphrase,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn(ctx, "failed to close store", "error", err)
		}
	}()
	logger.Info(ctx, "store opened", "driver", cfg.StoreDriver, "encrypted", cfg.StorePassphrase != "")

	seed := session.EmptySeed
	if cfg.SeedDemo {
		seed = session.DemoSeed
	}
	sess := session.New(st,
		session.WithSeed(seed),
		session.WithWindow(cfg.Window),
		session.WithLogger(logger),
	)
	defer sess.Deactivate()

	opts := []shell.Option{shell.WithLogger(logger), shell.WithInteractive(interactive)}
	if cfg.JWTSecret != "" {
		opts = append(opts, shell.WithVerifier(identity.NewVerifier([]byte(cfg.JWTSecret))))
	}
	if cfg.ClassifierEnabled() {
		llm, err := openai.New(
			openai.WithBaseURL(cfg.ClassifierBaseURL),
			openai.WithToken(cfg.ClassifierToken),
			openai.WithModel(cfg.ClassifierModel),
		)
		if err != nil {
			return err
		}
		opts = append(opts, shell.WithClassifier(recognition.NewLLMClassifier(llm, recognition.WithLogger(logger))))
	}

	shell.NewApp(sess, in, out, opts...).Run(ctx)
	return nil
}

// isFileDSN reports whether dsn names a SQLite file whose folder may need
// creating.
func isFileDSN(driver, dsn string) bool {
	if driver != "sqlite" && driver != "sqlite3" {
		return false
	}
	return dsn != "" && !strings.Contains(dsn, ":memory:") && !strings.Contains(dsn, "mode=memory")
}
