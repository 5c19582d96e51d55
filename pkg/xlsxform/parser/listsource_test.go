package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"
	"github.com/xuri/excelize/v2"
)

func newListsFile(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	_, err := f.NewSheet("Lists")
	require.NoError(t, err)
	setCells(t, f, "Lists", map[string]interface{}{
		"A1": "Red", "A2": "Green", "A3": "Blue",
		"B1": "Small", "B2": "Large",
	})
	setCells(t, f, "Sheet1", map[string]interface{}{
		"E1": "Yes", "E3": "No", "E4": "Yes",
	})
	return f
}

func TestResolveListLiteral(t *testing.T) {
	f := newListsFile(t)

	items, source := resolveList(f, "Sheet1", `"Red,Green,Blue"`)
	assert.Equal(t, models.ListSourceLiteral, source)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, items)

	// Items keep their surrounding spaces.
	items, _ = resolveList(f, "Sheet1", `" Red,Green ,Green "`)
	assert.Equal(t, []string{" Red", "Green ", "Green "}, items)

	// excelize returns embedded quotes already unescaped.
	items, source = resolveList(f, "Sheet1", `"say "hi",bye"`)
	assert.Equal(t, models.ListSourceLiteral, source)
	assert.Equal(t, []string{`say "hi"`, "bye"}, items)
}

func TestResolveListRange(t *testing.T) {
	f := newListsFile(t)

	tests := []struct {
		name    string
		formula string
		want    []string
	}{
		{"same sheet keeps duplicates and skips blanks", "$E$1:$E$4", []string{"Yes", "No", "Yes"}},
		{"other sheet", "Lists!$A$1:$A$3", []string{"Red", "Green", "Blue"}},
		{"leading equals", "=Lists!$B$1:$B$2", []string{"Small", "Large"}},
		{"row major", "Lists!A1:B2", []string{"Red", "Small", "Green", "Large"}},
		{"whole column", "$E:$E", []string{"Yes", "No", "Yes"}},
		{"whole column on other sheet", "Lists!$B:$B", []string{"Small", "Large"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, source := resolveList(f, "Sheet1", tt.formula)
			assert.Equal(t, models.ListSourceRange, source)
			assert.Equal(t, tt.want, items)
		})
	}
}

func TestResolveListDefinedName(t *testing.T) {
	f := newListsFile(t)
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "Colors",
		RefersTo: "Lists!$A$1:$A$3",
	}))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "Sizes",
		RefersTo: "Lists!$B$1:$B$2",
	}))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "Sizes",
		RefersTo: "Lists!$A$1:$A$1",
		Scope:    "Sheet1",
	}))

	items, source := resolveList(f, "Sheet1", "Colors")
	assert.Equal(t, models.ListSourceRange, source)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, items)

	items, _ = resolveList(f, "Sheet1", "=Sizes")
	assert.Equal(t, []string{"Red"}, items, "sheet scoped name wins")

	items, _ = resolveList(f, "Lists", "Sizes")
	assert.Equal(t, []string{"Small", "Large"}, items)
}

func TestResolveListUnresolvable(t *testing.T) {
	f := newListsFile(t)

	for _, formula := range []string{
		"",
		"INDIRECT($A$1)",
		"Missing",
		"$E$1:$E$2,$E$4",
	} {
		items, source := resolveList(f, "Sheet1", formula)
		assert.Equal(t, models.ListSourceNone, source, formula)
		assert.Empty(t, items, formula)
	}
}

func TestResolveListRangeKeepsSpaces(t *testing.T) {
	f := newListsFile(t)
	setCells(t, f, "Lists", map[string]interface{}{"C1": " Tall", "C2": "Short "})

	items, source := resolveList(f, "Sheet1", "Lists!$C$1:$C$2")
	assert.Equal(t, models.ListSourceRange, source)
	assert.Equal(t, []string{" Tall", "Short "}, items)
}

func TestSplitLiteralList(t *testing.T) {
	assert.Equal(t, []string{" a ", " b "}, splitLiteralList(" a ,, b ,"))
	assert.Nil(t, splitLiteralList(""))
	assert.Nil(t, splitLiteralList(" , "))
}

func TestSplitTrimmed(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitTrimmed(" a ,, b ,"))
	assert.Nil(t, splitTrimmed(" , "))
}
