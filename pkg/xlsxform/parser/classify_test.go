package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"
	"github.com/xuri/excelize/v2"
)

// gridSheet builds a sheet from row-major values.
func gridSheet(rows ...[]string) models.Sheet {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	sheet := models.Sheet{Name: "Sheet1", Rows: make([]models.Row, len(rows))}
	for r, values := range rows {
		cells := make([]models.Cell, width)
		for c := range cells {
			cells[c] = models.Cell{Row: r + 1, Col: c + 1}
			if c < len(values) {
				cells[c].Value = values[c]
			}
		}
		sheet.Rows[r] = models.Row{Num: r + 1, Cells: cells}
	}
	return sheet
}

// withMerges records merged ranges and links the covered cells to them.
func withMerges(t *testing.T, sheet *models.Sheet, refs ...string) {
	t.Helper()
	for _, ref := range refs {
		area, ok := parseRange(ref)
		require.True(t, ok, ref)
		sheet.Merges = append(sheet.Merges, models.MergedRange{
			Ref: ref, R1: area.R1, C1: area.C1, R2: area.R2, C2: area.C2,
		})
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
}

func listValidation(items ...string) *models.Validation {
	return &models.Validation{
		Type:       models.ValidationList,
		AllowBlank: true,
		ListItems:  items,
		ListSource: models.ListSourceLiteral,
	}
}

func classifyWith(t *testing.T, p Policy, sheet *models.Sheet) []Classified {
	t.Helper()
	c, err := NewClassifier(p)
	require.NoError(t, err)
	return c.Classify(sheet)
}

func kinds(items []Classified) []models.FieldKind {
	out := make([]models.FieldKind, len(items))
	for i, item := range items {
		out[i] = item.Kind
	}
	return out
}

func TestClassifyKinds(t *testing.T) {
	sheet := gridSheet(
		[]string{"Field", "Input"},
		[]string{"Color", ""},
		[]string{"Toppings", ""},
		[]string{"Size", "S"},
		[]string{"", "M"},
		[]string{"", "L"},
		[]string{"Comment", ""},
		[]string{"Notes", ""},
		[]string{"", ""},
		[]string{"Name *", "Your name"},
	)
	withMerges(t, &sheet, "A4:A6", "B8:B9")
	sheet.Cell(2, 2).Validation = listValidation("Red", "Green")
	multi := listValidation("Cheese", "Ham", "None")
	multi.PromptTitle = "Multiselect"
	sheet.Cell(3, 2).Validation = multi
	sheet.Cell(7, 2).WrapText = true

	items := classifyWith(t, DefaultPolicy(), &sheet)

	assert.Equal(t, []models.FieldKind{
		models.KindDropdown,
		models.KindMultiselect,
		models.KindRadio,
		models.KindTextarea,
		models.KindTextarea,
		models.KindText,
	}, kinds(items))

	radio := items[2]
	assert.Equal(t, "Size", radio.Label)
	assert.Equal(t, 4, radio.Row)
	assert.Equal(t, []string{"S", "M", "L"}, radio.Group)

	name := items[5]
	assert.Equal(t, "Name", name.Label)
	assert.True(t, name.MarkedRequired)
	assert.Equal(t, 10, name.Row)
	assert.Equal(t, "Your name", name.Input.Value)
}

func TestClassifyHeaderRows(t *testing.T) {
	sheet := gridSheet(
		[]string{"Title", ""},
		[]string{"Name", ""},
	)

	p := DefaultPolicy()
	assert.Len(t, classifyWith(t, p, &sheet), 1)

	p.HeaderRows = 0
	items := classifyWith(t, p, &sheet)
	require.Len(t, items, 2)
	assert.Equal(t, "Title", items[0].Label)

	p.HeaderRows = 5
	assert.Empty(t, classifyWith(t, p, &sheet))
}

func TestClassifyOptionButtons(t *testing.T) {
	sheet := gridSheet(
		[]string{"Field", "Input", "", ""},
		[]string{"Gender", "", "", ""},
		[]string{"Agree", "", "", ""},
	)
	sheet.Cell(2, 2).Controls = []models.FormControl{{Type: models.ControlOptionButton, Text: "Male", Col: 2}}
	sheet.Cell(2, 3).Controls = []models.FormControl{{Type: models.ControlOptionButton, Text: " Female ", Col: 3}}
	sheet.Cell(3, 2).Controls = []models.FormControl{{Type: models.ControlCheckBox, Text: "Yes", Col: 2}}

	items := classifyWith(t, DefaultPolicy(), &sheet)
	require.Len(t, items, 2)
	assert.Equal(t, models.KindRadio, items[0].Kind)
	assert.Equal(t, []string{"Male", "Female"}, items[0].Group)
	assert.Equal(t, models.KindText, items[1].Kind)
}

func TestClassifyListWinsOverRadioLayout(t *testing.T) {
	sheet := gridSheet(
		[]string{"Field", "Input"},
		[]string{"Size", "S"},
		[]string{"", "M"},
	)
	withMerges(t, &sheet, "A2:A3")
	sheet.Cell(2, 2).Validation = listValidation("S", "M")

	items := classifyWith(t, DefaultPolicy(), &sheet)
	require.Len(t, items, 1)
	assert.Equal(t, models.KindDropdown, items[0].Kind)
}

func TestClassifyPolicySwitches(t *testing.T) {
	sheet := gridSheet(
		[]string{"Field", "Input"},
		[]string{"Size", "S"},
		[]string{"", "M"},
		[]string{"Comment", ""},
		[]string{"Notes", ""},
		[]string{"", ""},
	)
	withMerges(t, &sheet, "A2:A3", "B5:B6")
	sheet.Cell(4, 2).WrapText = true

	p := DefaultPolicy()
	p.RadioGroupings = nil
	p.WrapTextTextarea = false
	p.MergedInputTextarea = false

	items := classifyWith(t, p, &sheet)
	assert.Equal(t, []models.FieldKind{
		models.KindText,
		models.KindText,
		models.KindText,
	}, kinds(items))
}

func TestClassifyMergedInputIsNotRadio(t *testing.T) {
	// A label merged alongside a merged input is one tall textarea.
	sheet := gridSheet(
		[]string{"Field", "Input"},
		[]string{"Details", ""},
		[]string{"", ""},
	)
	withMerges(t, &sheet, "A2:A3", "B2:B3")

	items := classifyWith(t, DefaultPolicy(), &sheet)
	require.Len(t, items, 1)
	assert.Equal(t, models.KindTextarea, items[0].Kind)
}

func TestClassifyCustomColumns(t *testing.T) {
	sheet := gridSheet(
		[]string{"#", "Field", "", "Input"},
		[]string{"1", "Name", "", "x"},
	)

	p := DefaultPolicy()
	p.LabelColumn, p.InputColumn = "B", "D"
	items := classifyWith(t, p, &sheet)
	require.Len(t, items, 1)
	assert.Equal(t, "Name", items[0].Label)
	assert.Equal(t, "x", items[0].Input.Value)
}

func TestClassifyNarrowSheet(t *testing.T) {
	sheet := gridSheet(
		[]string{"Field"},
		[]string{"Name"},
	)

	items := classifyWith(t, DefaultPolicy(), &sheet)
	require.Len(t, items, 1)
	assert.Equal(t, models.KindText, items[0].Kind)
	require.NotNil(t, items[0].Input)
	assert.Equal(t, 2, items[0].Input.Col)
}

func TestNewClassifierRejectsInvalidPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.InputColumn = "A"
	_, err := NewClassifier(p)
	assert.Error(t, err)
}

func TestClassifyWholeColumnDropdown(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{
			"A1": "Field", "B1": "Input",
			"A2": "Color", "A3": "Size",
		})
		addDropList(t, f, "Sheet1", "B:B", true, "Red", "Green")
	})

	wb, err := Open(memFile(t, data), fixturePath, ReadOptions{MinColumns: 2})
	require.NoError(t, err)
	items := classifyWith(t, DefaultPolicy(), wb.First())

	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, models.KindDropdown, item.Kind, item.Label)
		assert.Equal(t, []string{"Red", "Green"}, item.Input.Validation.ListItems, item.Label)
	}
}

func TestClassifyReadsInputMessageRules(t *testing.T) {
	sheet := gridSheet(
		[]string{"Field", "Input"},
		[]string{"Toppings", ""},
		[]string{"Zip", ""},
		[]string{"Name", ""},
	)
	multi := listValidation("Cheese", "Ham", "None")
	multi.PromptTitle = "複数選択"
	multi.Prompt = "最小1 最大2"
	sheet.Cell(2, 2).Validation = multi
	sheet.Cell(3, 2).Validation = &models.Validation{
		Type:        models.ValidationTextLength,
		AllowBlank:  true,
		PromptTitle: "入力指定",
		Prompt:      "半角数字",
	}

	items := classifyWith(t, DefaultPolicy(), &sheet)
	require.Len(t, items, 3)

	assert.Equal(t, models.KindMultiselect, items[0].Kind)
	assert.Equal(t, intPtr(1), items[0].MinSelections)
	assert.Equal(t, intPtr(2), items[0].MaxSelections)

	assert.Equal(t, models.KindText, items[1].Kind)
	assert.Equal(t, models.InputDigits, items[1].InputSpec)

	assert.Equal(t, models.InputAny, items[2].InputSpec)
	assert.Nil(t, items[2].MinSelections)
}

func TestClassifyMergedLabelKeepsValues(t *testing.T) {
	sheet := gridSheet(
		[]string{"Field", "Input"},
		[]string{"Size", " S"},
		[]string{"", "M "},
	)
	withMerges(t, &sheet, "A2:A3")

	items := classifyWith(t, DefaultPolicy(), &sheet)
	require.Len(t, items, 1)
	assert.Equal(t, []string{" S", "M "}, items[0].Group)
}
