// Package models defines data structures for form template conversion.
package models

// Cell is a single materialized worksheet cell. Cells are read once and
// never mutated afterwards.
type Cell struct {
	// Row is the row index (1-based).
	Row int
	// Col is the column index (1-based).
	Col int
	// Ref is the A1-style reference, e.g. "B3".
	Ref string
	// Value is the formatted cell value as displayed.
	Value string
	// Validation is the data validation rule covering the cell (optional).
	Validation *Validation
	// WrapText reports whether the cell style wraps text.
	WrapText bool
	// Merge is the merged range containing the cell (optional).
	Merge *MergedRange
	// Controls lists form controls anchored at the cell.
	Controls []FormControl
}

// IsBlank reports whether the cell holds no value.
func (c *Cell) IsBlank() bool {
	return c == nil || c.Value == ""
}

// MergedRange is a rectangular merged cell area.
type MergedRange struct {
	// Ref is the range reference, e.g. "A3:A5".
	Ref string
	// R1 is the start row (1-based).
	R1 int
	// C1 is the start column (1-based).
	C1 int
	// R2 is the end row (1-based, inclusive).
	R2 int
	// C2 is the end column (1-based, inclusive).
	C2 int
}

// Rows returns the number of rows spanned by the range.
func (m MergedRange) Rows() int {
	return m.R2 - m.R1 + 1
}

// Contains reports whether the given coordinates fall inside the range.
func (m MergedRange) Contains(row, col int) bool {
	return row >= m.R1 && row <= m.R2 && col >= m.C1 && col <= m.C2
}

// FormControlType names the kind of a legacy form control.
type FormControlType string

const (
	// ControlOptionButton is a radio-style option button.
	ControlOptionButton FormControlType = "option_button"
	// ControlCheckBox is a check box.
	ControlCheckBox FormControlType = "check_box"
	// ControlOther is any other control kind.
	ControlOther FormControlType = "other"
)

// FormControl is a form control anchored at a cell.
type FormControl struct {
	// Type is the control kind.
	Type FormControlType
	// Text is the caption shown next to the control.
	Text string
	// Col is the anchor column (1-based).
	Col int
}
