package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell/publishing-api/internal/api"
	"github.com/inkwell/publishing-api/internal/infrastructure/config"
	mongorepo "github.com/inkwell/publishing-api/internal/infrastructure/db/mongo"
	"github.com/inkwell/publishing-api/internal/infrastructure/storage"
	"github.com/inkwell/publishing-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// serveCmd starts the HTTP API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}

		log := logger.Init(logger.Options{
			Level:  cfg.LogLevel,
			Pretty: cfg.Env == "development",
		})

		client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return err
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		if err := mongorepo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}

		images, err := storage.NewImageStore(ctx, storage.Config{
			Endpoint:  cfg.Media.Endpoint,
			AccessKey: cfg.Media.AccessKey,
			SecretKey: cfg.Media.SecretKey,
			Bucket:    cfg.Media.Bucket,
			UseSSL:    cfg.Media.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("image store: %w", err)
		}

		e := api.NewRouter(client, db, images, cfg, log)

		go func() {
			addr := ":" + cfg.Port
			log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
			if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("server stopped")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
