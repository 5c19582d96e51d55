package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellRange is a parsed A1-style range, optionally qualified by a sheet.
type cellRange struct {
	Sheet  string
	R1, C1 int
	R2, C2 int
}

func (c cellRange) contains(row, col int) bool {
	return row >= c.R1 && row <= c.R2 && col >= c.C1 && col <= c.C2
}

func (c cellRange) size() int {
	return (c.R2 - c.R1 + 1) * (c.C2 - c.C1 + 1)
}

// parseReference parses a reference such as 'My Sheet'!$A$1:$D$10,
// Sheet1!B2 or $E$1:$E$3.
func parseReference(ref string) (cellRange, bool) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")

	var sheet string
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = strings.ReplaceAll(strings.Trim(ref[:idx], "'"), "''", "'")
		ref = ref[idx+1:]
	}

	area, ok := parseRange(ref)
	if !ok {
		return cellRange{}, false
	}
	area.Sheet = sheet
	return area, true
}

// parseRange parses a range string like $A$1:$D$10, a single cell, or a
// whole-column (B:B) or whole-row (2:3) range.
func parseRange(rangeStr string) (cellRange, bool) {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) > 2 {
		return cellRange{}, false
	}

	if len(parts) == 2 {
		if c1, ok := wholeColumn(parts[0]); ok {
			c2, ok := wholeColumn(parts[1])
			if !ok {
				return cellRange{}, false
			}
			return cellRange{R1: 1, C1: min(c1, c2), R2: excelize.TotalRows, C2: max(c1, c2)}, true
		}
		if r1, ok := wholeRow(parts[0]); ok {
			r2, ok := wholeRow(parts[1])
			if !ok {
				return cellRange{}, false
			}
			return cellRange{R1: min(r1, r2), C1: 1, R2: max(r1, r2), C2: excelize.MaxColumns}, true
		}
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return cellRange{}, false
	}
	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		if endCol, endRow, err = excelize.CellNameToCoordinates(parts[1]); err != nil {
			return cellRange{}, false
		}
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return cellRange{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, true
}

// wholeColumn parses the column-only half of a range such as "B".
func wholeColumn(s string) (int, bool) {
	col, err := excelize.ColumnNameToNumber(s)
	return col, err == nil
}

// wholeRow parses the row-only half of a range such as "12".
func wholeRow(s string) (int, bool) {
	row, err := strconv.Atoi(s)
	if err != nil || row < 1 || row > excelize.TotalRows || strings.ContainsAny(s, "+-") {
		return 0, false
	}
	return row, true
}

// parseSqref parses a space separated list of ranges as used by data
// validations, e.g. "B2 B4:B6". Unparseable entries are dropped.
func parseSqref(sqref string) []cellRange {
	var areas []cellRange
	for _, part := range strings.Fields(sqref) {
		if area, ok := parseRange(part); ok {
			areas = append(areas, area)
		}
	}
	return areas
}
