package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"
	"gopkg.in/yaml.v3"
)

// Format is an output document encoding.
type Format string

const (
	// FormatJSON encodes the document as a JSON array.
	FormatJSON Format = "json"
	// FormatYAML encodes the document as a YAML sequence.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (must be json or yaml)", s)
}

// Encode serializes result. The encoding is deterministic: equal results
// produce identical bytes. The document always ends with a newline.
func Encode(result models.ConversionResult, format Format, pretty bool) ([]byte, error) {
	records := toRecords(result)
	switch format {
	case FormatJSON, "":
		return ToJSON(records, pretty)
	case FormatYAML:
		return ToYAML(records)
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// ToJSON encodes v without HTML escaping so labels stay verbatim.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToYAML encodes v as a YAML document.
func ToYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
