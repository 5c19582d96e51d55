package parser

import (
	"strings"

	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"
)

// Classified is a template row recognized as a field, before extraction.
type Classified struct {
	// Kind is the inferred field kind.
	Kind models.FieldKind
	// Row is the label row (1-based).
	Row int
	// Label is the label text with any required marker stripped.
	Label string
	// MarkedRequired is true when the label carried a required marker.
	MarkedRequired bool
	// Input is the input cell of the row.
	Input *models.Cell
	// Group holds the option labels of a radio group.
	Group []string
	// MinSelections and MaxSelections bound a multi-select's choice count.
	MinSelections *int
	MaxSelections *int
	// InputSpec restricts the characters of a text input.
	InputSpec models.InputSpec
}

// Classifier assigns field kinds to template rows.
type Classifier struct {
	policy   Policy
	labelCol int
	inputCol int
}

// NewClassifier validates policy and returns a classifier using it.
func NewClassifier(policy Policy) (*Classifier, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	labelCol, inputCol, err := policy.Columns()
	if err != nil {
		return nil, err
	}
	return &Classifier{policy: policy, labelCol: labelCol, inputCol: inputCol}, nil
}

// InputColumn returns the 1-based input column number.
func (c *Classifier) InputColumn() int {
	return c.inputCol
}

// Classify walks the sheet top to bottom and returns one entry per labeled
// row in row order. Header rows and rows with a blank label are skipped.
func (c *Classifier) Classify(sheet *models.Sheet) []Classified {
	var result []Classified
	for r := c.policy.HeaderRows + 1; r <= len(sheet.Rows); r++ {
		labelCell := sheet.Cell(r, c.labelCol)
		if labelCell == nil || strings.TrimSpace(labelCell.Value) == "" {
			continue
		}
		input := sheet.Cell(r, c.inputCol)
		if input == nil {
			input = &models.Cell{Row: r, Col: c.inputCol}
		}

		label, marked := c.policy.stripRequiredMarker(labelCell.Value)
		item := Classified{
			Row:            r,
			Label:          label,
			MarkedRequired: marked,
			Input:          input,
		}
		item.Kind, item.Group = c.kindOf(sheet, labelCell, input)
		if v := input.Validation; v != nil {
			switch item.Kind {
			case models.KindMultiselect:
				item.MinSelections, item.MaxSelections = c.policy.selectionBounds(v.PromptTitle, v.Prompt)
			case models.KindText:
				item.InputSpec = c.policy.inputSpec(v.PromptTitle, v.Prompt)
			}
		}
		result = append(result, item)
	}
	return result
}

// kindOf applies the classification rules in priority order.
func (c *Classifier) kindOf(sheet *models.Sheet, label, input *models.Cell) (models.FieldKind, []string) {
	if v := input.Validation; v.IsList() {
		if c.policy.isMultiselect(v.PromptTitle, v.Prompt) {
			return models.KindMultiselect, nil
		}
		return models.KindDropdown, nil
	}
	if group := c.radioGroup(sheet, label, input); len(group) > 0 {
		return models.KindRadio, group
	}
	if c.isTextarea(input) {
		return models.KindTextarea, nil
	}
	return models.KindText, nil
}

// radioGroup returns the option labels when the row forms a radio group.
func (c *Classifier) radioGroup(sheet *models.Sheet, label, input *models.Cell) []string {
	if c.policy.groups(RadioMergedLabel) {
		if group := c.mergedLabelGroup(sheet, label, input); len(group) > 0 {
			return group
		}
	}
	if c.policy.groups(RadioOptionButtons) {
		return c.optionButtonGroup(sheet, label.Row)
	}
	return nil
}

// mergedLabelGroup handles a label merged down over several rows whose input
// cells each hold one choice.
func (c *Classifier) mergedLabelGroup(sheet *models.Sheet, label, input *models.Cell) []string {
	m := label.Merge
	if m == nil || m.R1 != label.Row || m.Rows() < 2 || m.C2 >= c.inputCol {
		return nil
	}
	if input.Merge != nil && input.Merge.Rows() > 1 {
		return nil
	}
	var group []string
	for r := m.R1; r <= m.R2; r++ {
		if cell := sheet.Cell(r, c.inputCol); !cell.IsBlank() {
			group = append(group, cell.Value)
		}
	}
	return group
}

// optionButtonGroup collects option buttons anchored right of the label.
// Captions are trimmed of the layout whitespace VML text boxes carry.
func (c *Classifier) optionButtonGroup(sheet *models.Sheet, row int) []string {
	if row < 1 || row > len(sheet.Rows) {
		return nil
	}
	var group []string
	for _, cell := range sheet.Rows[row-1].Cells {
		if cell.Col <= c.labelCol {
			continue
		}
		for _, ctrl := range cell.Controls {
			if ctrl.Type == models.ControlOptionButton {
				group = append(group, strings.TrimSpace(ctrl.Text))
			}
		}
	}
	return group
}

func (c *Classifier) isTextarea(input *models.Cell) bool {
	if c.policy.WrapTextTextarea && input.WrapText {
		return true
	}
	if c.policy.MergedInputTextarea && input.Merge != nil {
		return input.Merge.R1 == input.Row && input.Merge.Rows() > 1
	}
	return false
}
