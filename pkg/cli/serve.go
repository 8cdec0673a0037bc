package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/cli/config"
	controller "github.com/scrysheet/scrysheet/pkg/controller/http"
	"github.com/scrysheet/scrysheet/pkg/infra/fetch"
	"github.com/scrysheet/scrysheet/pkg/infra/sheet"
	"github.com/scrysheet/scrysheet/pkg/infra/storage"
	"github.com/scrysheet/scrysheet/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		docCfg    config.Document
	)

	flags := append(serverCfg.Flags(), docCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Accept edit events over HTTP",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			props, closeStore, err := openDocumentStore(&docCfg)
			if err != nil {
				return err
			}
			defer closeStore()

			workbook, err := sheet.Open(docCfg.Workbook)
			if err != nil {
				return err
			}
			defer workbook.Close()

			editUC := usecase.NewEditHandler(props, workbook, fetch.New(), storage.Open)

			server, err := controller.NewServer(
				ctx,
				editUC,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
