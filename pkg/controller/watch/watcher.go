package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/domain/interfaces"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
)

// settleDelay gives editors time to finish replacing the workbook file
// before we re-read it.
const settleDelay = 200 * time.Millisecond

// Watcher is the installed edit trigger: it watches the workbook file and
// synthesizes edit events from changes in the configured URL column.
type Watcher struct {
	path     string
	props    interfaces.PropertyStore
	sheet    interfaces.Sheet
	editUC   interfaces.EditHandlerUseCase
	snapshot map[int]string
}

// New creates a watcher for the workbook at path.
func New(
	path string,
	props interfaces.PropertyStore,
	sheet interfaces.Sheet,
	editUC interfaces.EditHandlerUseCase,
) *Watcher {
	return &Watcher{
		path:   path,
		props:  props,
		sheet:  sheet,
		editUC: editUC,
	}
}

// Run blocks until the context is cancelled. Handler and snapshot failures
// are logged and the watcher keeps running; only a broken file watch ends
// the loop with an error.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.From(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return goerr.Wrap(err, "failed to create file watcher")
	}
	defer fw.Close()

	// Watch the directory: editors typically replace the file on save,
	// which drops a watch registered on the file itself.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return goerr.Wrap(err, "failed to watch workbook directory", goerr.V("path", w.path))
	}

	if snapshot, err := w.takeSnapshot(ctx); err != nil {
		logger.Warn("could not take initial snapshot", "error", err)
	} else {
		w.snapshot = snapshot
	}

	logger.Info("watching workbook for edits", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			time.Sleep(settleDelay)
			w.handleChange(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", "error", err)
		}
	}
}

// handleChange diffs the URL column against the previous snapshot and runs
// the edit handler over the changed row span.
func (w *Watcher) handleChange(ctx context.Context) {
	logger := ctxlog.From(ctx)

	current, err := w.takeSnapshot(ctx)
	if err != nil {
		logger.Error("failed to snapshot workbook", "error", err)
		return
	}

	previous := w.snapshot
	w.snapshot = current

	minRow, maxRow := 0, 0
	for row, value := range current {
		if previous[row] == value {
			continue
		}
		if minRow == 0 || row < minRow {
			minRow = row
		}
		if row > maxRow {
			maxRow = row
		}
	}
	// Cleared rows also count as changes even when nothing replaced them.
	for row, value := range previous {
		if _, ok := current[row]; ok || value == "" {
			continue
		}
		if minRow == 0 || row < minRow {
			minRow = row
		}
		if row > maxRow {
			maxRow = row
		}
	}
	if minRow == 0 {
		return
	}

	props, err := w.props.Properties(ctx)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return
	}
	settings, err := model.SettingsFromProperties(props)
	if err != nil {
		logger.Error("edit trigger is not configured", "error", err)
		return
	}

	event := &model.EditEvent{
		ID:      uuid.NewString(),
		Sheet:   settings.WatchedSheet,
		Row:     minRow,
		Rows:    maxRow - minRow + 1,
		Column:  settings.URLColumn,
		Columns: 1,
	}

	logger.Info("workbook changed, dispatching edit event",
		"event_id", event.ID,
		"row", event.Row,
		"rows", event.Rows,
	)

	if err := w.editUC.HandleEdit(ctx, event); err != nil {
		logger.Error("edit handler failed", "event_id", event.ID, "error", err)
	}
}

// takeSnapshot reloads the workbook and captures the URL column below the
// header boundary. Without stored configuration there is nothing to watch
// yet, so an empty snapshot is returned.
func (w *Watcher) takeSnapshot(ctx context.Context) (map[int]string, error) {
	props, err := w.props.Properties(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := model.SettingsFromProperties(props)
	if err != nil {
		return map[int]string{}, nil
	}

	if err := w.sheet.Reload(); err != nil {
		return nil, err
	}
	if !w.sheet.HasSheet(settings.WatchedSheet) {
		return map[int]string{}, nil
	}

	last, err := w.sheet.LastRow(settings.WatchedSheet, settings.URLColumn)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[int]string)
	for row := settings.HeaderRows + 1; row <= last; row++ {
		value, err := w.sheet.DisplayValue(settings.WatchedSheet, row, settings.URLColumn)
		if err != nil {
			return nil, err
		}
		if value != "" {
			snapshot[row] = value
		}
	}
	return snapshot, nil
}
