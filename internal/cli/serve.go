package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/varunisrani/marketscope/internal/config"
	"github.com/varunisrani/marketscope/internal/pipeline"
	"github.com/varunisrani/marketscope/internal/report"
	"github.com/varunisrani/marketscope/internal/server"
)

const shutdownTimeout = 15 * time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve the report pipeline as a JSON API under /api.

Example:
  marketscope serve
  marketscope serve --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != 0 {
			appConfig.Server.Port = servePort
		}
		if err := config.Validate(appConfig, "serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, err := pipeline.NewFromConfig(appConfig)
		if err != nil {
			return err
		}

		api := server.New(p, report.NewStore(".", appConfig.Reports.Dir), server.Options{
			AllowedOrigins:       appConfig.Server.AllowedOrigins,
			MaxConcurrentReports: appConfig.Server.MaxConcurrentReports,
			SessionTTL:           appConfig.Server.SessionTTL,
		})

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", appConfig.Server.Port),
			Handler:           api.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", appConfig.Server.Port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config, 5001)")
	rootCmd.AddCommand(serveCmd)
}
