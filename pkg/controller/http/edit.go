package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/domain/interfaces"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
	"github.com/scrysheet/scrysheet/pkg/utils/async"
)

// EditHandler accepts edit events pushed by the spreadsheet host.
type EditHandler struct {
	editUC interfaces.EditHandlerUseCase
}

// NewEditHandler creates a new EditHandler
func NewEditHandler(editUC interfaces.EditHandlerUseCase) *EditHandler {
	return &EditHandler{editUC: editUC}
}

// Handle decodes one edit event and acknowledges it immediately; the event
// is processed on a background goroutine since triggers run unattended and
// the host does not wait for row downloads.
func (h *EditHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var event model.EditEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		logger.Error("failed to decode edit event", "error", err)
		writeError(ctx, w, goerr.Wrap(err, "invalid edit event payload"), http.StatusBadRequest)
		return
	}

	if !event.Valid() {
		writeError(ctx, w, goerr.New("edit event has no valid range descriptor"), http.StatusBadRequest)
		return
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	logger.Info("accepted edit event",
		"event_id", event.ID,
		"sheet", event.Sheet,
		"row", event.Row,
		"rows", event.Rows,
		"column", event.Column,
		"columns", event.Columns,
	)

	async.Dispatch(ctx, func(ctx context.Context) error {
		return h.editUC.HandleEdit(ctx, &event)
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":   "accepted",
		"event_id": event.ID,
	}); err != nil {
		logger.Error("failed to encode accept response", "error", err)
	}
}
