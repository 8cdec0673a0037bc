package interfaces

import (
	"context"

	"github.com/scrysheet/scrysheet/pkg/domain/model"
)

// SearchUseCase is the search-and-populate function: query the card search
// API and build a 2D table for the caller to render.
type SearchUseCase interface {
	Search(ctx context.Context, query *model.SearchQuery) (*model.ResultTable, error)
}

// EditHandlerUseCase processes one spreadsheet edit event, downloading
// images for newly pasted URLs in the watched column.
type EditHandlerUseCase interface {
	HandleEdit(ctx context.Context, event *model.EditEvent) error
}
