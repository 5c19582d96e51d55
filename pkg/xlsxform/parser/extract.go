package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"
)

type extractFunc func(c Classified, base models.FieldBase) (models.FormField, error)

var extractors = map[models.FieldKind]extractFunc{
	models.KindDropdown:    extractDropdown,
	models.KindMultiselect: extractMultiselect,
	models.KindRadio:       extractRadio,
	models.KindTextarea:    extractTextarea,
	models.KindText:        extractText,
}

// Extract turns a classified row into a FormField using the strategy for
// its kind. It fails with ErrMalformedField when the row does not satisfy
// the structure its kind requires.
func Extract(c Classified) (models.FormField, error) {
	if c.Label == "" {
		return nil, malformed(c, "label is empty")
	}
	extract, ok := extractors[c.Kind]
	if !ok {
		return nil, malformed(c, "unsupported field kind")
	}
	base := models.FieldBase{
		Label:    c.Label,
		Required: c.MarkedRequired || rejectsBlank(c.Input),
	}
	return extract(c, base)
}

// ExtractAll extracts every classified row, stopping at the first failure.
func ExtractAll(items []Classified) ([]models.FormField, error) {
	fields := make([]models.FormField, 0, len(items))
	for _, item := range items {
		f, err := Extract(item)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func extractDropdown(c Classified, base models.FieldBase) (models.FormField, error) {
	options, err := listOptions(c)
	if err != nil {
		return nil, err
	}
	return models.DropdownField{
		FieldBase:   base,
		Options:     options,
		Placeholder: strings.TrimSpace(c.Input.Value),
	}, nil
}

func extractMultiselect(c Classified, base models.FieldBase) (models.FormField, error) {
	options, err := listOptions(c)
	if err != nil {
		return nil, err
	}
	var exclusive []string
	for _, exc := range splitTrimmed(c.Input.Value) {
		option, ok := findOption(options, exc)
		if !ok {
			return nil, malformed(c, "exclusive option "+strconv.Quote(exc)+" is not in the option list")
		}
		exclusive = append(exclusive, option)
	}
	if c.MinSelections != nil && c.MaxSelections != nil && *c.MinSelections > *c.MaxSelections {
		return nil, malformed(c, fmt.Sprintf("minimum selections %d exceed maximum %d", *c.MinSelections, *c.MaxSelections))
	}
	if c.MinSelections != nil && *c.MinSelections > len(options) {
		return nil, malformed(c, fmt.Sprintf("minimum selections %d exceed the %d options", *c.MinSelections, len(options)))
	}
	return models.MultiselectField{
		FieldBase:     base,
		Options:       options,
		Exclusive:     exclusive,
		MinSelections: c.MinSelections,
		MaxSelections: c.MaxSelections,
	}, nil
}

func extractRadio(c Classified, base models.FieldBase) (models.FormField, error) {
	if len(c.Group) == 0 {
		return nil, malformed(c, "radio group has no options")
	}
	return models.RadioField{
		FieldBase: base,
		Options:   append([]string(nil), c.Group...),
	}, nil
}

func extractText(c Classified, base models.FieldBase) (models.FormField, error) {
	minLen, maxLen := lengthBounds(c.Input.Validation)
	return models.TextField{
		FieldBase:   base,
		Placeholder: strings.TrimSpace(c.Input.Value),
		MinLength:   minLen,
		MaxLength:   maxLen,
		InputSpec:   c.InputSpec,
	}, nil
}

func extractTextarea(c Classified, base models.FieldBase) (models.FormField, error) {
	minLen, maxLen := lengthBounds(c.Input.Validation)
	return models.TextareaField{
		FieldBase:   base,
		Placeholder: strings.TrimSpace(c.Input.Value),
		MinLength:   minLen,
		MaxLength:   maxLen,
	}, nil
}

func listOptions(c Classified) ([]string, error) {
	v := c.Input.Validation
	if !v.IsList() {
		return nil, malformed(c, "input cell has no list validation")
	}
	if len(v.ListItems) == 0 {
		if v.ListSource == models.ListSourceNone {
			return nil, malformed(c, "list source "+strconv.Quote(v.Formula1)+" cannot be resolved")
		}
		return nil, malformed(c, "option list is empty")
	}
	return append([]string(nil), v.ListItems...), nil
}

// rejectsBlank reports whether the input cell carries a "must not be blank"
// rule, i.e. a validation with blanks not allowed.
func rejectsBlank(input *models.Cell) bool {
	return input != nil && input.Validation != nil && !input.Validation.AllowBlank
}

// lengthBounds reads min/max text length from a textLength validation.
func lengthBounds(v *models.Validation) (minLen, maxLen *int) {
	if v == nil || v.Type != models.ValidationTextLength {
		return nil, nil
	}
	f1, ok1 := parseBound(v.Formula1)
	f2, ok2 := parseBound(v.Formula2)
	switch v.Operator {
	case "", "between":
		if ok1 {
			minLen = &f1
		}
		if ok2 {
			maxLen = &f2
		}
	case "equal":
		if ok1 {
			minLen, maxLen = &f1, &f1
		}
	case "greaterThanOrEqual":
		if ok1 {
			minLen = &f1
		}
	case "greaterThan":
		if ok1 {
			n := f1 + 1
			minLen = &n
		}
	case "lessThanOrEqual":
		if ok1 {
			maxLen = &f1
		}
	case "lessThan":
		if ok1 && f1 > 0 {
			n := f1 - 1
			maxLen = &n
		}
	}
	return minLen, maxLen
}

func parseBound(formula string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(formula), "="))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// findOption matches an exclusive entry against options, ignoring the
// surrounding whitespace of either, and returns the option as written.
func findOption(options []string, s string) (string, bool) {
	for _, option := range options {
		if strings.TrimSpace(option) == s {
			return option, true
		}
	}
	return "", false
}

func malformed(c Classified, reason string) error {
	return &FieldError{Row: c.Row, Label: c.Label, Kind: c.Kind, Reason: reason}
}
