package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"contactsui/apiclient"
	"contactsui/contact"
	"contactsui/httpserver"
	"contactsui/pkg/config"
	"contactsui/pkg/logger"
	"contactsui/pkg/sentry"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides PORT")
	return cmd
}

func serve(ctx context.Context, addr string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("cannot init sentry: %w", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	client, err := apiclient.NewClient(apiClientOptions(cfg))
	if err != nil {
		return err
	}
	repo := apiclient.NewContactRepository(client, apiclient.Paths{
		Contacts: cfg.API.ContactsPath,
		Upload:   cfg.API.UploadPath,
	})

	options := []httpserver.Options{
		httpserver.WithConfig(cfg),
		httpserver.WithLogger(log),
		httpserver.WithContactService(contact.NewUsecase(repo)),
	}
	if addr != "" {
		options = append(options, httpserver.WithAddr(addr))
	}
	server, err := httpserver.New(options...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("server started", "addr", server.Addr, "api", cfg.API.Host)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Infow("shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Errorw("server stopped with error", "error", err)
		sentry.Error(err)
		return err
	}
	return nil
}

// apiClientOptions leaves HTTPClient unset: calls to the contacts API have no
// timeout and are never retried.
func apiClientOptions(cfg *config.Config) apiclient.Options {
	return apiclient.Options{Host: cfg.API.Host}
}
