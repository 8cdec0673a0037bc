package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/cli/config"
	"github.com/scrysheet/scrysheet/pkg/controller/watch"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
	"github.com/scrysheet/scrysheet/pkg/infra/fetch"
	"github.com/scrysheet/scrysheet/pkg/infra/sheet"
	"github.com/scrysheet/scrysheet/pkg/infra/storage"
	"github.com/scrysheet/scrysheet/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdWatch() *cli.Command {
	var docCfg config.Document

	return &cli.Command{
		Name:  "watch",
		Usage: "Run the installed edit trigger against the workbook",
		Flags: docCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			props, closeStore, err := openDocumentStore(&docCfg)
			if err != nil {
				return err
			}
			defer closeStore()

			stored, err := props.Properties(ctx)
			if err != nil {
				return err
			}
			if stored[model.KeyTriggerInstalled] != "true" {
				return goerr.New("edit trigger is not installed; run `scrysheet setup` first")
			}

			workbook, err := sheet.Open(docCfg.Workbook)
			if err != nil {
				return err
			}
			defer workbook.Close()

			editUC := usecase.NewEditHandler(props, workbook, fetch.New(), storage.Open)
			watcher := watch.New(absPath(docCfg.Workbook), props, workbook, editUC)

			ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logger.Info("edit trigger running", "workbook", docCfg.Workbook)
			return watcher.Run(ctx)
		},
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
