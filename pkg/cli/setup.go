package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/cli/config"
	"github.com/scrysheet/scrysheet/pkg/domain/interfaces"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
	"github.com/scrysheet/scrysheet/pkg/infra/store"
	"github.com/urfave/cli/v3"
)

// openDocumentStore opens the property store scoped to the workbook. The
// returned closer releases the underlying database.
func openDocumentStore(docCfg *config.Document) (interfaces.PropertyStore, func() error, error) {
	workbook, err := filepath.Abs(docCfg.Workbook)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "invalid workbook path", goerr.V("path", docCfg.Workbook))
	}

	db, err := store.Open(docCfg.Store)
	if err != nil {
		return nil, nil, err
	}
	return db.ForDocument(workbook), db.Close, nil
}

// runWizard loads the stored settings as defaults, prompts, and saves all
// five values as one batch.
func runWizard(ctx context.Context, props interfaces.PropertyStore) (*model.Settings, error) {
	stored, err := props.Properties(ctx)
	if err != nil {
		return nil, err
	}

	current, err := model.SettingsFromProperties(stored)
	if err != nil {
		current = nil // first run, wizard falls back to hard-coded defaults
	}

	settings, err := newWizard(os.Stdin, os.Stdout).Run(current)
	if err != nil {
		return nil, err
	}

	if err := props.SetProperties(ctx, settings.Properties()); err != nil {
		return nil, err
	}
	return settings, nil
}

func cmdSetup() *cli.Command {
	var docCfg config.Document

	return &cli.Command{
		Name:  "setup",
		Usage: "Run the configuration wizard and install the edit trigger",
		Flags: docCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			props, closeStore, err := openDocumentStore(&docCfg)
			if err != nil {
				return err
			}
			defer closeStore()

			settings, err := runWizard(ctx, props)
			if err != nil {
				return err
			}

			if err := props.SetProperties(ctx, map[string]string{
				model.KeyTriggerInstalled: "true",
			}); err != nil {
				return err
			}

			logger.Info("setup complete",
				"watched_sheet", settings.WatchedSheet,
				"url_column", settings.URLColumn,
				"folder_id", settings.FolderID,
			)
			fmt.Println("Setup complete. Run `scrysheet watch` to start the edit trigger.")
			return nil
		},
	}
}

func cmdConfigure() *cli.Command {
	var docCfg config.Document

	return &cli.Command{
		Name:  "configure",
		Usage: "Run the configuration wizard",
		Flags: docCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			props, closeStore, err := openDocumentStore(&docCfg)
			if err != nil {
				return err
			}
			defer closeStore()

			if _, err := runWizard(ctx, props); err != nil {
				return err
			}
			fmt.Println("Configuration saved.")
			return nil
		},
	}
}

func cmdShowConfig() *cli.Command {
	var docCfg config.Document

	return &cli.Command{
		Name:  "config",
		Usage: "Display the current configuration",
		Flags: docCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			props, closeStore, err := openDocumentStore(&docCfg)
			if err != nil {
				return err
			}
			defer closeStore()

			stored, err := props.Properties(ctx)
			if err != nil {
				return err
			}
			settings, err := model.SettingsFromProperties(stored)
			if err != nil {
				return err
			}

			fmt.Printf("Watched sheet:      %s\n", settings.WatchedSheet)
			fmt.Printf("URL column:         %d\n", settings.URLColumn)
			fmt.Printf("Destination folder: %s\n", settings.FolderID)
			fmt.Printf("Header rows:        %d\n", settings.HeaderRows)
			if settings.NameColumn > 0 {
				fmt.Printf("Name column:        %d\n", settings.NameColumn)
			} else {
				fmt.Printf("Name column:        disabled\n")
			}
			fmt.Printf("Trigger installed:  %s\n", triggerState(stored))
			return nil
		},
	}
}

func cmdRemoveTrigger() *cli.Command {
	var docCfg config.Document

	return &cli.Command{
		Name:  "remove-trigger",
		Usage: "Remove the installed edit trigger",
		Flags: docCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			props, closeStore, err := openDocumentStore(&docCfg)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := props.DeleteProperty(ctx, model.KeyTriggerInstalled); err != nil {
				return err
			}
			fmt.Println("Edit trigger removed.")
			return nil
		},
	}
}

func triggerState(props map[string]string) string {
	if props[model.KeyTriggerInstalled] == "true" {
		return "yes"
	}
	return "no"
}
