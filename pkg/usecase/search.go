package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/domain/interfaces"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
)

type searchUseCase struct {
	searcher interfaces.CardSearcher
}

// NewSearch creates the search-and-populate use case.
func NewSearch(searcher interfaces.CardSearcher) interfaces.SearchUseCase {
	return &searchUseCase{searcher: searcher}
}

// Search runs the card search and builds the output table: one row per
// matched card in source order, truncated to the requested limit. Columns
// are the caller's field tokens after alias resolution.
func (uc *searchUseCase) Search(ctx context.Context, query *model.SearchQuery) (*model.ResultTable, error) {
	logger := ctxlog.From(ctx)

	if err := query.Normalize(); err != nil {
		return nil, err
	}
	columns := query.Columns()

	cards, err := uc.searcher.SearchCards(ctx, query.Query, query.Order, query.Direction, query.Unique, query.Limit)
	if err != nil {
		return nil, goerr.Wrap(err, "card search failed", goerr.V("query", query.Query))
	}
	if len(cards) > query.Limit {
		cards = cards[:query.Limit]
	}

	rows := make([][]string, 0, len(cards))
	for _, card := range cards {
		flat := card.Flattened()
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = model.RenderValue(column, flat.FieldValue(column))
		}
		rows = append(rows, row)
	}

	logger.Info("card search completed",
		"query", query.Query,
		"columns", columns,
		"rows", len(rows),
	)

	return &model.ResultTable{Columns: columns, Rows: rows}, nil
}
