package models

// Workbook is the opened template container.
type Workbook struct {
	// Name is the workbook file name (no path).
	Name string
	// SheetNames lists every sheet in workbook order.
	SheetNames []string
	// Sheets holds the materialized sheets of interest.
	Sheets []Sheet
}

// First returns the first materialized sheet, or nil.
func (w *Workbook) First() *Sheet {
	if w == nil || len(w.Sheets) == 0 {
		return nil
	}
	return &w.Sheets[0]
}
