package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/scrysheet/scrysheet/pkg/domain/interfaces"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
	"github.com/scrysheet/scrysheet/pkg/usecase"
)

type propsMock map[string]string

func (m propsMock) Properties(ctx context.Context) (map[string]string, error) { return m, nil }
func (m propsMock) SetProperties(ctx context.Context, props map[string]string) error {
	for k, v := range props {
		m[k] = v
	}
	return nil
}
func (m propsMock) DeleteProperty(ctx context.Context, key string) error {
	delete(m, key)
	return nil
}

type cell struct{ row, col int }

type sheetMock struct {
	name  string
	cells map[cell]string
	reads int
}

func (m *sheetMock) HasSheet(name string) bool { return name == m.name }
func (m *sheetMock) DisplayValue(sheet string, row, col int) (string, error) {
	m.reads++
	return m.cells[cell{row, col}], nil
}
func (m *sheetMock) LastRow(sheet string, col int) (int, error) {
	last := 0
	for c := range m.cells {
		if c.col == col && c.row > last {
			last = c.row
		}
	}
	return last, nil
}
func (m *sheetMock) Reload() error { return nil }

type fetcherMock struct {
	results map[string]*model.FetchResult
	fetched []string
}

func (m *fetcherMock) Fetch(ctx context.Context, url string) (*model.FetchResult, error) {
	m.fetched = append(m.fetched, url)
	if result, ok := m.results[url]; ok {
		return result, nil
	}
	return nil, goerr.New("connection refused")
}

type folderMock struct {
	files map[string][]byte
	puts  []string
}

func newFolderMock() *folderMock {
	return &folderMock{files: map[string][]byte{}}
}

func (m *folderMock) Put(ctx context.Context, name, contentType string, data []byte) error {
	m.files[name] = data
	m.puts = append(m.puts, name)
	return nil
}

func (m *folderMock) opener() interfaces.FolderOpener {
	return func(ctx context.Context, folderID string) (interfaces.FolderStore, error) {
		return m, nil
	}
}

func configuredProps() propsMock {
	return propsMock{
		model.KeyWatchedSheet: "Cards",
		model.KeyURLColumn:    "3",
		model.KeyFolderID:     "downloads",
		model.KeyHeaderRows:   "1",
	}
}

func okPNG(body string) *model.FetchResult {
	return &model.FetchResult{StatusCode: 200, ContentType: "image/png", Body: []byte(body)}
}

func TestEditHandler_DownloadsCandidateRows(t *testing.T) {
	ctx := context.Background()

	sheet := &sheetMock{
		name: "Cards",
		cells: map[cell]string{
			{5, 3}: "https://example.com/img/a.png",
			{6, 3}: "not a url",
			{7, 3}: "https://example.com/img/b.png",
			{8, 3}: "",
		},
	}
	fetcher := &fetcherMock{results: map[string]*model.FetchResult{
		"https://example.com/img/a.png": okPNG("aaa"),
		"https://example.com/img/b.png": okPNG("bbb"),
	}}
	folder := newFolderMock()

	uc := usecase.NewEditHandler(configuredProps(), sheet, fetcher, folder.opener())

	// Rows 5-8, columns 2-4: the URL column (3) is touched, all rows are
	// below the header boundary (1).
	err := uc.HandleEdit(ctx, &model.EditEvent{Sheet: "Cards", Row: 5, Rows: 4, Column: 2, Columns: 3})
	gt.NoError(t, err)

	gt.Value(t, fetcher.fetched).Equal([]string{
		"https://example.com/img/a.png",
		"https://example.com/img/b.png",
	})
	gt.Value(t, folder.puts).Equal([]string{"a.png", "b.png"})
}

func TestEditHandler_Gates(t *testing.T) {
	ctx := context.Background()

	newMocks := func() (*sheetMock, *fetcherMock, *folderMock) {
		sheet := &sheetMock{
			name: "Cards",
			cells: map[cell]string{
				{5, 3}: "https://example.com/img/a.png",
			},
		}
		fetcher := &fetcherMock{results: map[string]*model.FetchResult{
			"https://example.com/img/a.png": okPNG("aaa"),
		}}
		return sheet, fetcher, newFolderMock()
	}

	t.Run("invalid range descriptor fails", func(t *testing.T) {
		sheet, fetcher, folder := newMocks()
		uc := usecase.NewEditHandler(configuredProps(), sheet, fetcher, folder.opener())

		gt.Error(t, uc.HandleEdit(ctx, &model.EditEvent{Sheet: "Cards"}))
		gt.Value(t, len(fetcher.fetched)).Equal(0)
	})

	t.Run("missing configuration fails loudly", func(t *testing.T) {
		sheet, fetcher, folder := newMocks()
		uc := usecase.NewEditHandler(propsMock{}, sheet, fetcher, folder.opener())

		err := uc.HandleEdit(ctx, &model.EditEvent{Sheet: "Cards", Row: 5, Rows: 1, Column: 3, Columns: 1})
		gt.Error(t, err)
		gt.Value(t, len(fetcher.fetched)).Equal(0)
	})

	t.Run("edit on another sheet is ignored", func(t *testing.T) {
		sheet, fetcher, folder := newMocks()
		uc := usecase.NewEditHandler(configuredProps(), sheet, fetcher, folder.opener())

		gt.NoError(t, uc.HandleEdit(ctx, &model.EditEvent{Sheet: "Notes", Row: 5, Rows: 1, Column: 3, Columns: 1}))
		gt.Value(t, len(fetcher.fetched)).Equal(0)
	})

	t.Run("edit entirely inside the header is ignored", func(t *testing.T) {
		sheet, fetcher, folder := newMocks()
		uc := usecase.NewEditHandler(configuredProps(), sheet, fetcher, folder.opener())

		gt.NoError(t, uc.HandleEdit(ctx, &model.EditEvent{Sheet: "Cards", Row: 1, Rows: 1, Column: 3, Columns: 1}))
		gt.Value(t, len(fetcher.fetched)).Equal(0)
	})

	t.Run("edit not touching the URL column is ignored", func(t *testing.T) {
		sheet, fetcher, folder := newMocks()
		uc := usecase.NewEditHandler(configuredProps(), sheet, fetcher, folder.opener())

		// Columns 5-6 with URL column 3: nothing runs even though rows
		// would qualify.
		gt.NoError(t, uc.HandleEdit(ctx, &model.EditEvent{Sheet: "Cards", Row: 5, Rows: 4, Column: 5, Columns: 2}))
		gt.Value(t, len(fetcher.fetched)).Equal(0)
	})
}

func TestEditHandler_RowIsolation(t *testing.T) {
	ctx := context.Background()

	sheet := &sheetMock{
		name: "Cards",
		cells: map[cell]string{
			{5, 3}: "https://example.com/img/broken.png",
			{6, 3}: "https://example.com/img/forbidden.png",
			{7, 3}: "https://example.com/img/fine.png",
		},
	}
	fetcher := &fetcherMock{results: map[string]*model.FetchResult{
		// broken.png is absent: the fetcher errors for it
		"https://example.com/img/forbidden.png": {StatusCode: 403, ContentType: "text/html", Body: []byte("no")},
		"https://example.com/img/fine.png":      okPNG("ok"),
	}}
	folder := newFolderMock()

	uc := usecase.NewEditHandler(configuredProps(), sheet, fetcher, folder.opener())

	err := uc.HandleEdit(ctx, &model.EditEvent{Sheet: "Cards", Row: 5, Rows: 3, Column: 3, Columns: 1})
	gt.NoError(t, err)

	// All three rows were attempted in order; only the healthy one stored.
	gt.Value(t, len(fetcher.fetched)).Equal(3)
	gt.Value(t, folder.puts).Equal([]string{"fine.png"})
}

func TestEditHandler_FileNaming(t *testing.T) {
	ctx := context.Background()

	t.Run("name column value wins when configured", func(t *testing.T) {
		props := configuredProps()
		props[model.KeyNameColumn] = "2"

		sheet := &sheetMock{
			name: "Cards",
			cells: map[cell]string{
				{5, 2}: "Island #3!",
				{5, 3}: "https://example.com/images/12345",
			},
		}
		fetcher := &fetcherMock{results: map[string]*model.FetchResult{
			"https://example.com/images/12345": {StatusCode: 200, ContentType: "image/webp", Body: []byte("x")},
		}}
		folder := newFolderMock()

		uc := usecase.NewEditHandler(props, sheet, fetcher, folder.opener())
		gt.NoError(t, uc.HandleEdit(ctx, &model.EditEvent{Sheet: "Cards", Row: 5, Rows: 1, Column: 3, Columns: 1}))
		gt.Value(t, folder.puts).Equal([]string{"Island__3_.webp"})
	})

	t.Run("empty name cell falls back to the URL", func(t *testing.T) {
		props := configuredProps()
		props[model.KeyNameColumn] = "2"

		sheet := &sheetMock{
			name: "Cards",
			cells: map[cell]string{
				{5, 3}: "https://example.com/img/card.png?x=1",
			},
		}
		fetcher := &fetcherMock{results: map[string]*model.FetchResult{
			"https://example.com/img/card.png?x=1": okPNG("x"),
		}}
		folder := newFolderMock()

		uc := usecase.NewEditHandler(props, sheet, fetcher, folder.opener())
		gt.NoError(t, uc.HandleEdit(ctx, &model.EditEvent{Sheet: "Cards", Row: 5, Rows: 1, Column: 3, Columns: 1}))
		gt.Value(t, folder.puts).Equal([]string{"card.png"})
	})
}

func TestEditHandler_NoDeduplication(t *testing.T) {
	ctx := context.Background()

	sheet := &sheetMock{
		name: "Cards",
		cells: map[cell]string{
			{5, 3}: "https://example.com/img/a.png",
		},
	}
	fetcher := &fetcherMock{results: map[string]*model.FetchResult{
		"https://example.com/img/a.png": okPNG("aaa"),
	}}
	folder := newFolderMock()

	uc := usecase.NewEditHandler(configuredProps(), sheet, fetcher, folder.opener())

	event := &model.EditEvent{Sheet: "Cards", Row: 5, Rows: 1, Column: 3, Columns: 1}
	gt.NoError(t, uc.HandleEdit(ctx, event))
	gt.NoError(t, uc.HandleEdit(ctx, event))

	// Re-pasting the same URL writes again; the handler keeps no state.
	gt.Value(t, folder.puts).Equal([]string{"a.png", "a.png"})
}
