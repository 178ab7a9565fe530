package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/fieldswitch/pkg/cli/config"
	httpctrl "github.com/secmon-lab/fieldswitch/pkg/controller/http"
	"github.com/secmon-lab/fieldswitch/pkg/service/worker"
	"github.com/secmon-lab/fieldswitch/pkg/usecase"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var title string
	var assetsDir string
	var publicOnly bool
	var refreshInterval time.Duration
	var propCfg config.Properties
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("FIELDSWITCH_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Title of the search page",
			Value:       "Location search",
			Sources:     cli.EnvVars("FIELDSWITCH_TITLE"),
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "assets-dir",
			Usage:       "Directory with fieldswitch.wasm and wasm_exec.js; enables client side switching",
			Sources:     cli.EnvVars("FIELDSWITCH_ASSETS_DIR"),
			Destination: &assetsDir,
		},
		&cli.BoolFlag{
			Name:        "public-only",
			Usage:       "Only offer public properties in the search form",
			Sources:     cli.EnvVars("FIELDSWITCH_PUBLIC_ONLY"),
			Destination: &publicOnly,
		},
		&cli.DurationFlag{
			Name:        "refresh-interval",
			Usage:       "Interval to reload property definitions from the repository (0 disables)",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("FIELDSWITCH_REFRESH_INTERVAL"),
			Destination: &refreshInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, propCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, repo, err := setupUseCases(ctx, &propCfg, &repoCfg, usecase.WithPublicOnly(publicOnly))
			if err != nil {
				return err
			}
			defer closeRepository(repo)
			cache := uc.Cache()

			// Load the first snapshot before accepting requests
			if err := cache.Refresh(ctx); err != nil {
				return goerr.Wrap(err, "failed to load property definitions")
			}

			var refreshWorker *worker.PropertyRefreshWorker
			if refreshInterval > 0 {
				refreshWorker = worker.NewPropertyRefreshWorker(cache, refreshInterval)
				refreshWorker.Start(ctx)
			}

			httpOpts := []httpctrl.Options{
				httpctrl.WithTitle(title),
			}
			if assetsDir != "" {
				httpOpts = append(httpOpts, httpctrl.WithAssetsDir(assetsDir))
				logging.Default().Info("Client side field switching enabled", "assets_dir", assetsDir)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc.Search, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(sigCtx)
			eg.Go(func() error {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"public_only", publicOnly,
					"refresh_interval", refreshInterval,
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})
			eg.Go(func() error {
				<-egCtx.Done()
				logging.Default().Info("Shutting down HTTP server")

				// Stop the refresh worker first
				if refreshWorker != nil {
					refreshWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}
