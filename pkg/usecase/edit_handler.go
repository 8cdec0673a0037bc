package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/domain/interfaces"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
)

type editHandler struct {
	props   interfaces.PropertyStore
	sheet   interfaces.Sheet
	fetcher interfaces.ImageFetcher
	folders interfaces.FolderOpener
}

// NewEditHandler creates the edit-trigger use case.
func NewEditHandler(
	props interfaces.PropertyStore,
	sheet interfaces.Sheet,
	fetcher interfaces.ImageFetcher,
	folders interfaces.FolderOpener,
) interfaces.EditHandlerUseCase {
	return &editHandler{
		props:   props,
		sheet:   sheet,
		fetcher: fetcher,
		folders: folders,
	}
}

// HandleEdit qualifies one edit event and downloads an image for each
// candidate row holding a URL. Every gate returns early without side
// effects; missing configuration fails loudly since triggers run
// unattended. Row failures are logged and the remaining rows still run.
func (uc *editHandler) HandleEdit(ctx context.Context, event *model.EditEvent) error {
	logger := ctxlog.From(ctx)

	if event == nil || !event.Valid() {
		return goerr.New("edit event has no valid range descriptor")
	}

	props, err := uc.props.Properties(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load configuration")
	}
	settings, err := model.SettingsFromProperties(props)
	if err != nil {
		return err
	}

	if event.Sheet != settings.WatchedSheet {
		logger.Debug("ignoring edit on unwatched sheet", "sheet", event.Sheet)
		return nil
	}

	rows := event.CandidateRows(settings.HeaderRows)
	if len(rows) == 0 {
		logger.Debug("edit does not extend below header boundary", "event_id", event.ID)
		return nil
	}

	if !event.TouchesColumn(settings.URLColumn) {
		logger.Debug("edit does not touch URL column", "event_id", event.ID)
		return nil
	}

	folder, err := uc.folders(ctx, settings.FolderID)
	if err != nil {
		return goerr.Wrap(err, "failed to open destination folder", goerr.V("folder_id", settings.FolderID))
	}

	for _, row := range rows {
		value, err := uc.sheet.DisplayValue(settings.WatchedSheet, row, settings.URLColumn)
		if err != nil {
			logger.Error("failed to read URL cell", "row", row, "error", err)
			continue
		}

		url := strings.TrimSpace(value)
		if !model.IsDownloadURL(url) {
			continue
		}

		if err := uc.downloadRow(ctx, folder, settings, row, url); err != nil {
			logger.Error("failed to download image", "row", row, "url", url, "error", err)
		}
	}

	return nil
}

// downloadRow fetches one URL and stores the blob under a derived name.
// A non-2xx response is a logged no-op for the row.
func (uc *editHandler) downloadRow(ctx context.Context, folder interfaces.FolderStore, settings *model.Settings, row int, url string) error {
	logger := ctxlog.From(ctx)

	result, err := uc.fetcher.Fetch(ctx, url)
	if err != nil {
		return goerr.Wrap(err, "fetch failed")
	}
	if !result.OK() {
		logger.Warn("skipping row: image fetch returned error status",
			"row", row,
			"url", url,
			"status", result.StatusCode,
		)
		return nil
	}

	name := uc.fileName(settings, row, url, result.ContentType)
	if err := folder.Put(ctx, name, result.ContentType, result.Body); err != nil {
		return goerr.Wrap(err, "store failed", goerr.V("file", name))
	}

	logger.Info("stored image",
		"row", row,
		"file", name,
		"bytes", len(result.Body),
		"content_type", result.ContentType,
	)
	return nil
}

// fileName prefers the configured name-source column; when that is disabled
// or the cell is empty, the name derives from the URL.
func (uc *editHandler) fileName(settings *model.Settings, row int, url, contentType string) string {
	if settings.NameColumn > 0 {
		label, err := uc.sheet.DisplayValue(settings.WatchedSheet, row, settings.NameColumn)
		if err == nil {
			if label = strings.TrimSpace(label); label != "" {
				return model.FileNameFromLabel(label, contentType)
			}
		}
	}
	return model.FileNameFromURL(url, row, contentType)
}
