package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alexanderramin/driverlog/internal/cli"
	"github.com/alexanderramin/driverlog/internal/intelligence"
	"github.com/alexanderramin/driverlog/internal/llm"
	"github.com/alexanderramin/driverlog/internal/repository"
	"github.com/alexanderramin/driverlog/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("DRIVERLOG_LOG_LEVEL")),
	}))

	ctx := context.Background()

	// Open storage
	store, err := repository.OpenKVStore(ctx, repository.LoadStoreConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	ledger := service.NewLedgerService(ctx,
		repository.NewKVLedgerRepo(store),
		service.NewSlogUseCaseObserver(logger),
	)

	app := &cli.App{
		Ledger: ledger,
		Logger: logger,
	}

	// Detect interactive terminal for forms and the history view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire the coach. Without a key it still answers with a fixed message.
	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	llmClient, err := llm.NewClient(ctx, llmCfg, observer)
	switch {
	case errors.Is(err, llm.ErrMissingCredential):
		logger.Debug("coach disabled: no API key")
		app.Coach = intelligence.NewCoachService(nil)
	case err != nil:
		return fmt.Errorf("configuring llm: %w", err)
	default:
		defer llmClient.Close()
		app.Coach = intelligence.NewCoachService(llmClient)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
