package models

// Validation type names as stored in the worksheet XML.
const (
	ValidationList       = "list"
	ValidationTextLength = "textLength"
)

// ListSource tells where the items of a list validation came from.
type ListSource string

const (
	// ListSourceNone means the validation is not a list or could not be resolved.
	ListSourceNone ListSource = ""
	// ListSourceLiteral is an inline delimited list, e.g. "a,b,c".
	ListSourceLiteral ListSource = "literal"
	// ListSourceRange is a cell range or defined name.
	ListSourceRange ListSource = "range"
)

// Validation is a data validation rule attached to a cell.
type Validation struct {
	// Type is the validation type ("list", "textLength", "whole", ...).
	Type string
	// Operator is the comparison operator ("between", "lessThan", ...).
	Operator string
	// Formula1 is the first criteria formula.
	Formula1 string
	// Formula2 is the second criteria formula.
	Formula2 string
	// AllowBlank is false when a blank entry is rejected.
	AllowBlank bool
	// PromptTitle is the input message title.
	PromptTitle string
	// Prompt is the input message body.
	Prompt string
	// ListItems holds the resolved list entries in declared order.
	ListItems []string
	// ListSource tells how ListItems were resolved.
	ListSource ListSource
}

// IsList reports whether the validation is an enumerated list.
func (v *Validation) IsList() bool {
	return v != nil && v.Type == ValidationList
}
