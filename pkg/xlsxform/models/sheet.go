package models

// Row is one worksheet row. Cells is dense: Cells[i] is column i+1.
type Row struct {
	// Num is the row index (1-based).
	Num int
	// Cells holds the row's cells from column 1.
	Cells []Cell
}

// Sheet is a fully materialized worksheet.
type Sheet struct {
	// Name is the sheet name.
	Name string
	// Rows is dense: Rows[i] is row i+1.
	Rows []Row
	// Merges lists the merged ranges of the sheet.
	Merges []MergedRange
}

// Cell returns the cell at the given 1-based coordinates, or nil when the
// coordinates fall outside the materialized grid.
func (s *Sheet) Cell(row, col int) *Cell {
	if s == nil || row < 1 || row > len(s.Rows) {
		return nil
	}
	cells := s.Rows[row-1].Cells
	if col < 1 || col > len(cells) {
		return nil
	}
	return &cells[col-1]
}
