package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndanilin/accountd/internal/config"
	"github.com/ndanilin/accountd/internal/logger"
	"github.com/ndanilin/accountd/internal/notify"
	"github.com/ndanilin/accountd/internal/repository/postgres"
	"github.com/ndanilin/accountd/internal/secret"
	"github.com/ndanilin/accountd/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	resetCodeRepo := postgres.NewResetCodeRepository(db)

	generator := secret.NewGenerator(cfg.Tokens.ResetCodeBytes)

	var sink notify.Sink
	if cfg.SMTP.Host != "" {
		sink = notify.NewMailerSink(cfg.SMTP)
	} else {
		logger.Info("no SMTP host configured, logging events instead")
		sink = notify.NewLogSink(logger.Component("notify"))
	}
	dispatcher := notify.NewDispatcher(sink, 64, logger.Component("notify"))
	defer dispatcher.Close()

	resetCodes := service.NewResetCodes(userRepo, resetCodeRepo, generator, dispatcher, cfg.Tokens.ResetCodeTTL, cfg.Tokens.ResetBaseURL, logger)

	logAppVersion()
	logger.Info("accountd started", "purge_interval", cfg.Tokens.PurgeInterval.String())

	runPurgeLoop(ctx, logger, resetCodes, cfg.Tokens.PurgeInterval)

	logger.Info("received interruption signal, shutting down")
	logger.Info("shutdown complete")
}

// runPurgeLoop deletes expired reset codes on a fixed interval until the
// context is cancelled.
func runPurgeLoop(ctx context.Context, logger *logger.Logger, resetCodes *service.ResetCodes, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := resetCodes.PurgeExpired(ctx); err != nil {
				logger.Error("failed to purge expired reset codes", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
