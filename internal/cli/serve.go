package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/agencia1/merch-catalog/app/notify"
	"github.com/agencia1/merch-catalog/app/server"
	"github.com/agencia1/merch-catalog/internal/database"
	"github.com/agencia1/merch-catalog/models"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, db, err := setup(cmd.Context())
		if err != nil {
			return err
		}

		if !skipMigrate {
			if err := models.AutoMigrate(db); err != nil {
				database.Close(db)
				return err
			}
		}

		handler, err := server.New(db, server.Options{
			SalesEmail: cfg.SalesEmail,
			Mailer:     notify.NewLogMailer(logger),
			Logger:     logger,
		})
		if err != nil {
			database.Close(db)
			return err
		}

		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		serveErr := make(chan error, 1)
		go func() {
			logger.Info("http server listening", "addr", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		wait := gfshutdown.GracefulShutdown(
			context.Background(),
			cfg.ShutdownTimeout,
			map[string]gfshutdown.Operation{
				"http-server": func(ctx context.Context) error {
					logger.Info("shutting down http server")
					return srv.Shutdown(ctx)
				},
			},
		)

		var code int
		select {
		case err := <-serveErr:
			if err != nil {
				database.Close(db)
				return err
			}
			code = <-wait
		case code = <-wait:
		}
		if err := database.Close(db); err != nil {
			logger.Error("failed to close database", "error", err)
		}
		if code != 0 {
			return errors.New("shutdown did not complete cleanly")
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not run schema migrations on startup")
	rootCmd.AddCommand(serveCmd)
}
