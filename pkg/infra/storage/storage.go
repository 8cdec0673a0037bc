package storage

import (
	"context"
	"strings"

	"github.com/scrysheet/scrysheet/pkg/domain/interfaces"
)

// Open resolves a folder identifier into a FolderStore: "gs://bucket/prefix"
// selects Google Cloud Storage, anything else is treated as a local
// directory path.
func Open(ctx context.Context, folderID string) (interfaces.FolderStore, error) {
	if strings.HasPrefix(folderID, "gs://") {
		return NewGCS(ctx, folderID)
	}
	return NewLocal(folderID)
}
