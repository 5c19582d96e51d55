package parser

import (
	"strings"

	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"
	"github.com/xuri/efp"
	"github.com/xuri/excelize/v2"
)

// maxListItems mirrors the number of entries Excel shows in a validation
// drop-down fed from a range.
const maxListItems = 32768

// resolveList resolves the source of a list validation formula on sheet.
// Literal lists are split on commas; range and defined-name sources are read
// in row-major order, skipping blank cells. Items keep their text as written.
// Sources that cannot be resolved (functions, unions, unknown names) yield no
// items.
func resolveList(f *excelize.File, sheet, formula string) ([]string, models.ListSource) {
	operand, ok := singleOperand(formula)
	if !ok {
		return nil, models.ListSourceNone
	}

	switch operand.TSubType {
	case efp.TokenSubTypeText:
		return splitLiteralList(operand.TValue), models.ListSourceLiteral
	case efp.TokenSubTypeRange:
		area, ok := lookupRange(f, sheet, operand.TValue)
		if !ok {
			return nil, models.ListSourceNone
		}
		return readRangeValues(f, area), models.ListSourceRange
	}
	return nil, models.ListSourceNone
}

// singleOperand tokenizes formula and returns its only operand token.
func singleOperand(formula string) (efp.Token, bool) {
	formula = strings.TrimSpace(formula)
	if formula == "" {
		return efp.Token{}, false
	}
	// excelize hands literal lists back with embedded quotes unescaped.
	if len(formula) >= 2 && strings.HasPrefix(formula, `"`) && strings.HasSuffix(formula, `"`) {
		formula = `"` + strings.ReplaceAll(formula[1:len(formula)-1], `"`, `""`) + `"`
	}

	ps := efp.ExcelParser()
	var operand *efp.Token
	for i, token := range ps.Parse(formula) {
		if token.TType == efp.TokenTypeWhitespace {
			continue
		}
		// efp prefixes the formula with "=" and emits it as an operator.
		if i == 0 && token.TType == efp.TokenTypeOperatorInfix && token.TValue == "=" {
			continue
		}
		if token.TType != efp.TokenTypeOperand || operand != nil {
			return efp.Token{}, false
		}
		t := token
		operand = &t
	}
	if operand == nil {
		return efp.Token{}, false
	}
	return *operand, true
}

// splitLiteralList splits an inline list on commas. Items are kept as
// written; only blank items are dropped.
func splitLiteralList(list string) []string {
	var items []string
	for _, item := range strings.Split(list, ",") {
		if strings.TrimSpace(item) != "" {
			items = append(items, item)
		}
	}
	return items
}

// splitTrimmed splits a comma separated cell value into trimmed items.
func splitTrimmed(list string) []string {
	var items []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// lookupRange resolves a range reference or defined name to a sheet range.
func lookupRange(f *excelize.File, sheet, ref string) (cellRange, bool) {
	if area, ok := parseReference(ref); ok {
		if area.Sheet == "" {
			area.Sheet = sheet
		}
		return area, true
	}

	// Sheet-scoped names shadow workbook-scoped ones.
	var refersTo string
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, ref) {
			continue
		}
		if dn.Scope == sheet {
			refersTo = dn.RefersTo
			break
		}
		if dn.Scope == "" || strings.EqualFold(dn.Scope, "Workbook") {
			refersTo = dn.RefersTo
		}
	}
	if refersTo == "" {
		return cellRange{}, false
	}
	area, ok := parseReference(refersTo)
	if !ok || area.Sheet == "" {
		return cellRange{}, false
	}
	return area, true
}

// readRangeValues reads area row by row. Whole-column and whole-row areas
// are clipped to the used part of the sheet first.
func readRangeValues(f *excelize.File, area cellRange) []string {
	rows, err := f.GetRows(area.Sheet)
	if err != nil {
		return nil
	}
	area.R2 = min(area.R2, len(rows))
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	area.C2 = min(area.C2, width)
	if area.R2 < area.R1 || area.C2 < area.C1 || area.size() > maxListItems {
		return nil
	}

	var items []string
	for r := area.R1; r <= area.R2; r++ {
		row := rows[r-1]
		for c := area.C1; c <= area.C2 && c <= len(row); c++ {
			if value := row[c-1]; strings.TrimSpace(value) != "" {
				items = append(items, value)
			}
		}
	}
	return items
}
