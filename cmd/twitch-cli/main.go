package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"twitchCli/internal/infrastructure/browser"
	"twitchCli/internal/infrastructure/config"
	"twitchCli/internal/infrastructure/logging"
	"twitchCli/internal/infrastructure/persistence"
	twitchinfra "twitchCli/internal/infrastructure/platform/twitch"
	"twitchCli/internal/infrastructure/player"
	"twitchCli/internal/interface/cli"
	"twitchCli/internal/interface/console"
	"twitchCli/internal/usecase/auth"
	"twitchCli/internal/usecase/catalog"
	"twitchCli/internal/usecase/playback"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, filepath.Base(os.Args[0]), buildApp, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func buildApp(ctx context.Context, opts cli.Options) (*cli.App, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	cfg.ApplyFlags(opts.ConfigPath, opts.Verbose)

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := persistence.OpenSessionStore(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	session, err := store.Load(ctx)
	if err != nil {
		if c, ok := store.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, fmt.Errorf("loading session from %s: %w", cfg.ConfigPath, err)
	}
	session.ClientID = cfg.ClientID

	logger.Debug("session loaded",
		zap.String("path", cfg.ConfigPath),
		zap.Bool("authenticated", session.Authenticated()),
	)

	httpCli := &http.Client{Timeout: cfg.HTTPTimeout}

	gateway, err := twitchinfra.NewGateway(cfg.APIBaseURL, httpCli, logger.Named("helix"))
	if err != nil {
		return nil, err
	}
	oauth, err := twitchinfra.NewOAuthClient(cfg.ClientID, cfg.RedirectURI, httpCli)
	if err != nil {
		return nil, err
	}

	prompter := console.NewPrompter(os.Stdin, os.Stdout)
	catalogSvc := catalog.NewService(gateway, logger.Named("catalog"))

	return &cli.App{
		Session: session,
		Store:   store,
		Catalog: catalogSvc,
		Auth: auth.NewService(auth.Deps{
			URLs:      oauth,
			Validator: oauth,
			Browser:   browser.NewLauncher(),
			Prompter:  prompter,
			Store:     store,
			Out:       os.Stdout,
			Logger:    logger.Named("auth"),
		}),
		Playback: playback.NewService(
			catalogSvc,
			player.NewStreamlink(cfg.Player, logger.Named("player")),
			logger.Named("playback"),
		),
		Renderer: console.NewRenderer(os.Stdout),
		Picker:   console.NewNumberPicker(prompter),
		Fuzzy:    console.NewFuzzyPicker(),
		Logger:   logger,
	}, nil
}
