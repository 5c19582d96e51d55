package models

import (
	"fmt"
	"strings"
)

// FieldKind is the input type of a form field.
type FieldKind int

const (
	// KindText is a single-line text input.
	KindText FieldKind = iota
	// KindTextarea is a multi-line text input.
	KindTextarea
	// KindDropdown is a single-select list.
	KindDropdown
	// KindMultiselect is a multi-select list.
	KindMultiselect
	// KindRadio is a group of mutually exclusive choices.
	KindRadio
)

var kindNames = [...]string{
	KindText:        "text",
	KindTextarea:    "textarea",
	KindDropdown:    "dropdown",
	KindMultiselect: "multiselect",
	KindRadio:       "radio",
}

// String returns the canonical lowercase name.
func (k FieldKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
	return kindNames[k]
}

// HasOptions reports whether fields of this kind carry an option list.
func (k FieldKind) HasOptions() bool {
	return k == KindDropdown || k == KindMultiselect || k == KindRadio
}

// MarshalText implements encoding.TextMarshaler.
func (k FieldKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown field kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FieldKind) UnmarshalText(b []byte) error {
	parsed, err := ParseFieldKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseFieldKind parses a canonical kind name, case-insensitively.
func ParseFieldKind(s string) (FieldKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return FieldKind(k), nil
		}
	}
	return KindText, fmt.Errorf("unknown field kind %q", s)
}

// FieldBase holds the attributes shared by every field kind.
type FieldBase struct {
	// Label is the field caption.
	Label string
	// Required is true when the field must not be left blank.
	Required bool
}

// Common returns the shared attributes.
func (b FieldBase) Common() FieldBase {
	return b
}

// FormField is one recognized template field. The concrete type is one of
// TextField, TextareaField, DropdownField, MultiselectField or RadioField.
type FormField interface {
	Kind() FieldKind
	Common() FieldBase
}

// InputSpec restricts the characters a text input accepts.
type InputSpec string

const (
	// InputAny accepts any text.
	InputAny InputSpec = ""
	// InputDigits accepts half-width digits only.
	InputDigits InputSpec = "digits"
	// InputLetters accepts half-width Latin letters only.
	InputLetters InputSpec = "letters"
)

// TextField is a single-line text input.
type TextField struct {
	FieldBase
	// Placeholder is the hint text shown in an empty input.
	Placeholder string
	// MinLength is the minimum text length (optional).
	MinLength *int
	// MaxLength is the maximum text length (optional).
	MaxLength *int
	// InputSpec restricts the accepted characters.
	InputSpec InputSpec
}

// Kind implements FormField.
func (TextField) Kind() FieldKind { return KindText }

// TextareaField is a multi-line text input. MaxLength doubles as the
// character budget shown under the input.
type TextareaField struct {
	FieldBase
	// Placeholder is the hint text shown in an empty input.
	Placeholder string
	// MinLength is the minimum text length (optional).
	MinLength *int
	// MaxLength is the maximum text length (optional).
	MaxLength *int
}

// Kind implements FormField.
func (TextareaField) Kind() FieldKind { return KindTextarea }

// DropdownField is a single-select list.
type DropdownField struct {
	FieldBase
	// Options lists the choices in declared order.
	Options []string
	// Placeholder is the caption shown before a choice is made.
	Placeholder string
}

// Kind implements FormField.
func (DropdownField) Kind() FieldKind { return KindDropdown }

// MultiselectField is a multi-select list.
type MultiselectField struct {
	FieldBase
	// Options lists the choices in declared order.
	Options []string
	// Exclusive lists options that cannot be combined with any other.
	Exclusive []string
	// MinSelections is the minimum number of chosen options (optional).
	MinSelections *int
	// MaxSelections is the maximum number of chosen options (optional).
	MaxSelections *int
}

// Kind implements FormField.
func (MultiselectField) Kind() FieldKind { return KindMultiselect }

// RadioField is a group of mutually exclusive choices.
type RadioField struct {
	FieldBase
	// Options lists the choices in declared order.
	Options []string
}

// Kind implements FormField.
func (RadioField) Kind() FieldKind { return KindRadio }

// Options returns the option list of f, or an empty slice for kinds without
// options.
func Options(f FormField) []string {
	switch v := f.(type) {
	case DropdownField:
		return v.Options
	case MultiselectField:
		return v.Options
	case RadioField:
		return v.Options
	}
	return []string{}
}
