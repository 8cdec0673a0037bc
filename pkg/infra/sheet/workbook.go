package sheet

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
	"github.com/xuri/excelize/v2"
)

// Workbook is an XLSX-backed spreadsheet host. Cell reads return formatted
// (displayed) values, matching what a user sees in the sheet.
type Workbook struct {
	path string
	file *excelize.File
}

// Open opens an existing workbook.
func Open(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open workbook", goerr.V("path", path))
	}
	return &Workbook{path: path, file: file}, nil
}

// OpenOrCreate opens the workbook, creating an empty one when the file does
// not exist yet.
func OpenOrCreate(path string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		file := excelize.NewFile()
		if err := file.SaveAs(path); err != nil {
			return nil, goerr.Wrap(err, "failed to create workbook", goerr.V("path", path))
		}
		return &Workbook{path: path, file: file}, nil
	}
	return Open(path)
}

// Reload re-reads the workbook from disk, picking up external edits.
func (w *Workbook) Reload() error {
	file, err := excelize.OpenFile(w.path)
	if err != nil {
		return goerr.Wrap(err, "failed to reload workbook", goerr.V("path", w.path))
	}
	_ = w.file.Close()
	w.file = file
	return nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Path returns the backing file path.
func (w *Workbook) Path() string {
	return w.path
}

// HasSheet reports whether a sheet with the given name exists.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// DisplayValue returns the rendered value of one cell (1-based row/col).
func (w *Workbook) DisplayValue(sheet string, row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", goerr.Wrap(err, "invalid cell coordinates", goerr.V("row", row), goerr.V("col", col))
	}
	value, err := w.file.GetCellValue(sheet, cell)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read cell", goerr.V("sheet", sheet), goerr.V("cell", cell))
	}
	return value, nil
}

// LastRow returns the last row with a non-empty value in the given column,
// or 0 when the column is empty.
func (w *Workbook) LastRow(sheet string, col int) (int, error) {
	cols, err := w.file.GetCols(sheet)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read columns", goerr.V("sheet", sheet))
	}
	if col > len(cols) {
		return 0, nil
	}

	last := 0
	for i, value := range cols[col-1] {
		if strings.TrimSpace(value) != "" {
			last = i + 1
		}
	}
	return last, nil
}

// WriteTable writes a result table with its header row starting at the
// given cell. Values beginning with "=" are written as formulas so the host
// evaluates them.
func (w *Workbook) WriteTable(sheet string, row, col int, table *model.ResultTable) error {
	if !w.HasSheet(sheet) {
		if _, err := w.file.NewSheet(sheet); err != nil {
			return goerr.Wrap(err, "failed to create sheet", goerr.V("sheet", sheet))
		}
	}

	header := make([]string, len(table.Columns))
	copy(header, table.Columns)
	if err := w.writeRow(sheet, row, col, header); err != nil {
		return err
	}
	for i, values := range table.Rows {
		if err := w.writeRow(sheet, row+1+i, col, values); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) writeRow(sheet string, row, col int, values []string) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+i, row)
		if err != nil {
			return goerr.Wrap(err, "invalid cell coordinates", goerr.V("row", row), goerr.V("col", col+i))
		}
		if strings.HasPrefix(value, "=") {
			err = w.file.SetCellFormula(sheet, cell, strings.TrimPrefix(value, "="))
		} else {
			err = w.file.SetCellStr(sheet, cell, value)
		}
		if err != nil {
			return goerr.Wrap(err, "failed to write cell", goerr.V("sheet", sheet), goerr.V("cell", cell))
		}
	}
	return nil
}

// Save persists pending writes back to the file.
func (w *Workbook) Save() error {
	if err := w.file.Save(); err != nil {
		return goerr.Wrap(err, "failed to save workbook", goerr.V("path", w.path))
	}
	return nil
}
