package parser

import (
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"
	"github.com/xuri/excelize/v2"
)

// readSheet materializes every cell of a sheet together with the metadata
// classification needs: merges, data validations, wrap-text styles and form
// controls. The whole grid is read before classification starts.
func readSheet(f *excelize.File, sheetName string, minCols int) (models.Sheet, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return models.Sheet{}, err
	}
	merges, err := readMerges(f, sheetName)
	if err != nil {
		return models.Sheet{}, err
	}
	controls, err := f.GetFormControls(sheetName)
	if err != nil {
		return models.Sheet{}, err
	}
	dvs, err := f.GetDataValidations(sheetName)
	if err != nil {
		return models.Sheet{}, err
	}

	maxRow, maxCol := findGridBounds(rows, merges, controls, minCols)
	sheet := models.Sheet{
		Name:   sheetName,
		Rows:   make([]models.Row, maxRow),
		Merges: merges,
	}

	for r := 1; r <= maxRow; r++ {
		cells := make([]models.Cell, maxCol)
		for c := 1; c <= maxCol; c++ {
			ref, _ := excelize.CoordinatesToCellName(c, r)
			cells[c-1] = models.Cell{Row: r, Col: c, Ref: ref}
			if r <= len(rows) && c <= len(rows[r-1]) {
				cells[c-1].Value = rows[r-1][c-1]
			}
		}
		sheet.Rows[r-1] = models.Row{Num: r, Cells: cells}
	}

	for i := range sheet.Merges {
		m := &sheet.Merges[i]
		for r := m.R1; r <= m.R2; r++ {
			for c := m.C1; c <= m.C2; c++ {
				if cell := sheet.Cell(r, c); cell != nil {
					cell.Merge = m
				}
			}
		}
	}

	if err := attachStyles(f, &sheet); err != nil {
		return models.Sheet{}, err
	}
	attachControls(&sheet, controls)
	attachValidations(f, &sheet, dvs)

	return sheet, nil
}

func readMerges(f *excelize.File, sheetName string) ([]models.MergedRange, error) {
	mergeCells, err := f.GetMergeCells(sheetName, true)
	if err != nil {
		return nil, err
	}
	var result []models.MergedRange
	for _, mc := range mergeCells {
		area, ok := parseRange(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if !ok {
			continue
		}
		result = append(result, models.MergedRange{
			Ref: mc.GetStartAxis() + ":" + mc.GetEndAxis(),
			R1:  area.R1,
			C1:  area.C1,
			R2:  area.R2,
			C2:  area.C2,
		})
	}
	return result, nil
}

// findGridBounds returns the number of rows and columns to materialize.
func findGridBounds(rows [][]string, merges []models.MergedRange, controls []excelize.FormControl, minCols int) (maxRow, maxCol int) {
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if rowIdx+1 > maxRow {
				maxRow = rowIdx + 1
			}
			if colIdx+1 > maxCol {
				maxCol = colIdx + 1
			}
		}
	}
	for _, m := range merges {
		maxRow = max(maxRow, m.R2)
		maxCol = max(maxCol, m.C2)
	}
	for _, fc := range controls {
		if col, row, err := excelize.CellNameToCoordinates(fc.Cell); err == nil {
			maxRow = max(maxRow, row)
			maxCol = max(maxCol, col)
		}
	}
	return maxRow, max(maxCol, minCols)
}

func attachStyles(f *excelize.File, sheet *models.Sheet) error {
	wrapByStyle := make(map[int]bool)
	for r := range sheet.Rows {
		for c := range sheet.Rows[r].Cells {
			cell := &sheet.Rows[r].Cells[c]
			styleID, err := f.GetCellStyle(sheet.Name, cell.Ref)
			if err != nil {
				return err
			}
			wrap, ok := wrapByStyle[styleID]
			if !ok {
				style, err := f.GetStyle(styleID)
				if err != nil {
					return err
				}
				wrap = style.Alignment != nil && style.Alignment.WrapText
				wrapByStyle[styleID] = wrap
			}
			cell.WrapText = wrap
		}
	}
	return nil
}

func attachControls(sheet *models.Sheet, controls []excelize.FormControl) {
	for _, fc := range controls {
		col, row, err := excelize.CellNameToCoordinates(fc.Cell)
		if err != nil {
			continue
		}
		cell := sheet.Cell(row, col)
		if cell == nil {
			continue
		}
		cell.Controls = append(cell.Controls, models.FormControl{
			Type: controlType(fc.Type),
			Text: fc.Text,
			Col:  col,
		})
	}
}

func controlType(t excelize.FormControlType) models.FormControlType {
	switch t {
	case excelize.FormControlOptionButton:
		return models.ControlOptionButton
	case excelize.FormControlCheckBox:
		return models.ControlCheckBox
	}
	return models.ControlOther
}

// attachValidations assigns each data validation to the grid cells its sqref
// covers. When rules overlap the first one declared wins, matching Excel.
func attachValidations(f *excelize.File, sheet *models.Sheet, dvs []*excelize.DataValidation) {
	for _, dv := range dvs {
		if dv == nil {
			continue
		}
		areas := parseSqref(dv.Sqref)
		if len(areas) == 0 {
			continue
		}
		v := newValidation(f, sheet.Name, dv)
		for _, area := range areas {
			for r := area.R1; r <= min(area.R2, len(sheet.Rows)); r++ {
				for c := area.C1; c <= area.C2; c++ {
					cell := sheet.Cell(r, c)
					if cell == nil {
						break
					}
					if cell.Validation == nil {
						cell.Validation = v
					}
				}
			}
		}
	}
}

func newValidation(f *excelize.File, sheetName string, dv *excelize.DataValidation) *models.Validation {
	v := &models.Validation{
		Type:        dv.Type,
		Operator:    dv.Operator,
		Formula1:    dv.Formula1,
		Formula2:    dv.Formula2,
		AllowBlank:  dv.AllowBlank,
		PromptTitle: deref(dv.PromptTitle),
		Prompt:      deref(dv.Prompt),
	}
	if v.IsList() {
		v.ListItems, v.ListSource = resolveList(f, sheetName, dv.Formula1)
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
