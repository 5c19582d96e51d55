// Package output assembles converted fields into a document and writes it.
package output

import "github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"

// Assemble collects fields into a ConversionResult, keeping their order.
func Assemble(fields []models.FormField) models.ConversionResult {
	result := models.ConversionResult{Fields: make([]models.FormField, len(fields))}
	copy(result.Fields, fields)
	return result
}

// fieldRecord is the serialized form of one field.
type fieldRecord struct {
	Label       string   `json:"label" yaml:"label"`
	Kind        string   `json:"kind" yaml:"kind"`
	Options     []string `json:"options" yaml:"options"`
	Required    bool     `json:"required" yaml:"required"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	MinLength   *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Exclusive   []string `json:"exclusive,omitempty" yaml:"exclusive,omitempty"`
	MinSelected *int     `json:"minSelections,omitempty" yaml:"minSelections,omitempty"`
	MaxSelected *int     `json:"maxSelections,omitempty" yaml:"maxSelections,omitempty"`
	InputSpec   string   `json:"inputSpec,omitempty" yaml:"inputSpec,omitempty"`
}

func toRecords(result models.ConversionResult) []fieldRecord {
	records := make([]fieldRecord, 0, len(result.Fields))
	for _, f := range result.Fields {
		base := f.Common()
		rec := fieldRecord{
			Label:    base.Label,
			Kind:     f.Kind().String(),
			Options:  []string{},
			Required: base.Required,
		}
		switch v := f.(type) {
		case models.TextField:
			rec.Placeholder, rec.MinLength, rec.MaxLength = v.Placeholder, v.MinLength, v.MaxLength
			rec.InputSpec = string(v.InputSpec)
		case models.TextareaField:
			rec.Placeholder, rec.MinLength, rec.MaxLength = v.Placeholder, v.MinLength, v.MaxLength
		case models.DropdownField:
			rec.Options = append(rec.Options, v.Options...)
			rec.Placeholder = v.Placeholder
		case models.MultiselectField:
			rec.Options = append(rec.Options, v.Options...)
			rec.Exclusive = v.Exclusive
			rec.MinSelected, rec.MaxSelected = v.MinSelections, v.MaxSelections
		case models.RadioField:
			rec.Options = append(rec.Options, v.Options...)
		}
		records = append(records, rec)
	}
	return records
}
