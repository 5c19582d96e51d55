package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// RadioGrouping names a layout convention recognized as a radio group.
type RadioGrouping string

const (
	// RadioMergedLabel groups the input cells of rows sharing one vertically
	// merged label cell.
	RadioMergedLabel RadioGrouping = "merged-label"
	// RadioOptionButtons groups option-button form controls anchored on the
	// label row.
	RadioOptionButtons RadioGrouping = "option-buttons"
)

// Policy configures how template rows are classified.
type Policy struct {
	// LabelColumn is the column holding field labels (e.g. "A").
	LabelColumn string `mapstructure:"label_column"`
	// InputColumn is the column holding input cells (e.g. "B").
	InputColumn string `mapstructure:"input_column"`
	// HeaderRows is the number of leading rows that never hold fields.
	HeaderRows int `mapstructure:"header_rows"`
	// MultiselectMarkers mark a list validation as multi-select when found in
	// its input message title or body.
	MultiselectMarkers []string `mapstructure:"multiselect_markers"`
	// RequiredMarkers are label suffixes that mark a field as required.
	RequiredMarkers []string `mapstructure:"required_markers"`
	// MinSelectionMarkers precede the minimum number of choices in a
	// multi-select input message, e.g. "最小 1".
	MinSelectionMarkers []string `mapstructure:"min_selection_markers"`
	// MaxSelectionMarkers precede the maximum number of choices in a
	// multi-select input message, e.g. "最大 3".
	MaxSelectionMarkers []string `mapstructure:"max_selection_markers"`
	// DigitsMarkers in a text input message restrict it to half-width digits.
	DigitsMarkers []string `mapstructure:"digits_markers"`
	// LettersMarkers in a text input message restrict it to half-width
	// letters.
	LettersMarkers []string `mapstructure:"letters_markers"`
	// RadioGroupings lists the radio layout conventions to recognize.
	RadioGroupings []RadioGrouping `mapstructure:"radio_groupings"`
	// WrapTextTextarea classifies wrap-text input cells as textareas.
	WrapTextTextarea bool `mapstructure:"wrap_text_textarea"`
	// MergedInputTextarea classifies vertically merged input cells as
	// textareas.
	MergedInputTextarea bool `mapstructure:"merged_input_textarea"`
}

// DefaultPolicy returns the default classification policy.
func DefaultPolicy() Policy {
	return Policy{
		LabelColumn:         "A",
		InputColumn:         "B",
		HeaderRows:          1,
		MultiselectMarkers:  []string{"multiselect", "multiple", "複数選択", "マルチセレクト"},
		RequiredMarkers:     []string{"*", "＊", "(必須)", "（必須）"},
		MinSelectionMarkers: []string{"最小", "min"},
		MaxSelectionMarkers: []string{"最大", "max"},
		DigitsMarkers:       []string{"半角数字", "digits only"},
		LettersMarkers:      []string{"半角英字", "letters only"},
		RadioGroupings:      []RadioGrouping{RadioMergedLabel, RadioOptionButtons},
		WrapTextTextarea:    true,
		MergedInputTextarea: true,
	}
}

// Columns returns the 1-based label and input column numbers.
func (p Policy) Columns() (label, input int, err error) {
	if label, err = excelize.ColumnNameToNumber(p.LabelColumn); err != nil {
		return 0, 0, fmt.Errorf("label column: %w", err)
	}
	if input, err = excelize.ColumnNameToNumber(p.InputColumn); err != nil {
		return 0, 0, fmt.Errorf("input column: %w", err)
	}
	return label, input, nil
}

// Validate checks the policy for inconsistent settings.
func (p Policy) Validate() error {
	label, input, err := p.Columns()
	if err != nil {
		return err
	}
	if label >= input {
		return fmt.Errorf("label column %s must be left of input column %s", p.LabelColumn, p.InputColumn)
	}
	if p.HeaderRows < 0 {
		return fmt.Errorf("header rows must not be negative, got %d", p.HeaderRows)
	}
	for _, g := range p.RadioGroupings {
		switch g {
		case RadioMergedLabel, RadioOptionButtons:
		default:
			return fmt.Errorf("unknown radio grouping %q", g)
		}
	}
	return nil
}

func (p Policy) groups(g RadioGrouping) bool {
	for _, have := range p.RadioGroupings {
		if have == g {
			return true
		}
	}
	return false
}

// isMultiselect reports whether any marker occurs in the given texts.
// Matching is done on NFKC-normalized, case-folded text so full-width and
// upper-case spellings match.
func (p Policy) isMultiselect(texts ...string) bool {
	for _, text := range texts {
		if text == "" {
			continue
		}
		folded := foldText(text)
		for _, marker := range p.MultiselectMarkers {
			if m := foldText(marker); m != "" && strings.Contains(folded, m) {
				return true
			}
		}
	}
	return false
}

// selectionBounds reads "<marker> <n>" pairs such as "最小:1" or "max 3"
// from the given texts.
func (p Policy) selectionBounds(texts ...string) (minSel, maxSel *int) {
	for _, text := range texts {
		folded := foldText(text)
		if minSel == nil {
			minSel = numberAfter(folded, p.MinSelectionMarkers)
		}
		if maxSel == nil {
			maxSel = numberAfter(folded, p.MaxSelectionMarkers)
		}
	}
	return minSel, maxSel
}

// inputSpec returns the character restriction named in the given texts.
func (p Policy) inputSpec(texts ...string) models.InputSpec {
	for _, text := range texts {
		folded := foldText(text)
		if folded == "" {
			continue
		}
		if containsAny(folded, p.DigitsMarkers) {
			return models.InputDigits
		}
		if containsAny(folded, p.LettersMarkers) {
			return models.InputLetters
		}
	}
	return models.InputAny
}

func containsAny(folded string, markers []string) bool {
	for _, marker := range markers {
		if m := foldText(marker); m != "" && strings.Contains(folded, m) {
			return true
		}
	}
	return false
}

// numberAfter finds the first marker directly followed by a number,
// allowing spaces and a ':' or '=' in between.
func numberAfter(folded string, markers []string) *int {
	for _, marker := range markers {
		m := foldText(marker)
		if m == "" {
			continue
		}
		for from := 0; ; {
			idx := strings.Index(folded[from:], m)
			if idx < 0 {
				break
			}
			rest := strings.TrimLeft(folded[from+idx+len(m):], " \t:=")
			end := 0
			for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
				end++
			}
			if end > 0 {
				if n, err := strconv.Atoi(rest[:end]); err == nil {
					return &n
				}
			}
			from += idx + len(m)
		}
	}
	return nil
}

// stripRequiredMarker removes a trailing required marker from label.
func (p Policy) stripRequiredMarker(label string) (string, bool) {
	label = strings.TrimSpace(label)
	for _, marker := range p.RequiredMarkers {
		if marker != "" && strings.HasSuffix(label, marker) {
			return strings.TrimSpace(strings.TrimSuffix(label, marker)), true
		}
	}
	return label, false
}

func foldText(s string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}
