package interfaces

import (
	"context"

	"github.com/scrysheet/scrysheet/pkg/domain/model"
)

// CardSearcher runs a paginated card search and returns the raw card
// records in source order. It may return more records than limit; callers
// truncate.
type CardSearcher interface {
	SearchCards(ctx context.Context, query, order, direction, unique string, limit int) ([]model.Card, error)
}

// Sheet reads from the spreadsheet host. DisplayValue returns the rendered
// value of a cell, not the underlying formula. Reload picks up external
// changes to the backing workbook.
type Sheet interface {
	HasSheet(name string) bool
	DisplayValue(sheet string, row, col int) (string, error)
	LastRow(sheet string, col int) (int, error)
	Reload() error
}

// PropertyStore is the document-scoped flat key/value configuration store.
// SetProperties writes all given keys as a single atomic batch.
type PropertyStore interface {
	Properties(ctx context.Context) (map[string]string, error)
	SetProperties(ctx context.Context, props map[string]string) error
	DeleteProperty(ctx context.Context, key string) error
}

// FolderStore accepts named blob writes into one destination folder.
type FolderStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) error
}

// FolderOpener resolves a folder identifier into a FolderStore.
type FolderOpener func(ctx context.Context, folderID string) (FolderStore, error)

// ImageFetcher performs a single GET with redirects followed. HTTP error
// statuses are reported in the result, not as errors.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*model.FetchResult, error)
}
