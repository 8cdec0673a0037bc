package model

// EditEvent describes one edited cell block, as reported by the spreadsheet
// host. Row/Column are 1-based; Rows/Columns are the block extents.
// Events are transient and never persisted.
type EditEvent struct {
	ID      string `json:"id,omitempty"`
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Rows    int    `json:"rows"`
	Column  int    `json:"column"`
	Columns int    `json:"columns"`
}

// Valid reports whether the event carries a usable range descriptor.
func (e *EditEvent) Valid() bool {
	return e.Sheet != "" && e.Row >= 1 && e.Rows >= 1 && e.Column >= 1 && e.Columns >= 1
}

// CandidateRows returns the edited rows strictly below the header boundary,
// in increasing order. Rows at or above the boundary are protected.
func (e *EditEvent) CandidateRows(headerRows int) []int {
	start := e.Row
	if start <= headerRows {
		start = headerRows + 1
	}
	end := e.Row + e.Rows - 1

	var rows []int
	for r := start; r <= end; r++ {
		rows = append(rows, r)
	}
	return rows
}

// TouchesColumn reports whether the edited block includes the given column.
func (e *EditEvent) TouchesColumn(col int) bool {
	return col >= e.Column && col < e.Column+e.Columns
}
