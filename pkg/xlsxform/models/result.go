package models

// ConversionResult is the ordered list of fields recognized in a template.
// Field order follows source row order.
type ConversionResult struct {
	// Fields holds one entry per labeled input row.
	Fields []FormField
}

// Len returns the number of fields.
func (r ConversionResult) Len() int {
	return len(r.Fields)
}
