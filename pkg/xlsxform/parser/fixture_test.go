package parser

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const fixturePath = "/in/form.xlsx"

// buildWorkbook creates an in-memory workbook, lets build populate it and
// returns the serialized package.
func buildWorkbook(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if build != nil {
		build(f)
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// memFile stores data at fixturePath on a fresh in-memory filesystem.
func memFile(t *testing.T, data []byte) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, fixturePath, data, 0o644))
	return fsys
}

func setCells(t *testing.T, f *excelize.File, sheet string, values map[string]interface{}) {
	t.Helper()
	for cell, v := range values {
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
}

func addDropList(t *testing.T, f *excelize.File, sheet, sqref string, allowBlank bool, items ...string) *excelize.DataValidation {
	t.Helper()
	dv := excelize.NewDataValidation(allowBlank)
	dv.Sqref = sqref
	require.NoError(t, dv.SetDropList(items))
	require.NoError(t, f.AddDataValidation(sheet, dv))
	return dv
}

// rewritePackage copies the zip in data, letting edit replace or drop parts.
// edit returns the new body and false to drop the part.
func rewritePackage(t *testing.T, data []byte, edit func(name string, body []byte) ([]byte, bool)) []byte {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var out bytes.Buffer
	w := zip.NewWriter(&out)
	for _, zf := range r.File {
		rc, err := zf.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)

		body, keep := edit(zf.Name, body)
		if !keep {
			continue
		}
		fw, err := w.Create(zf.Name)
		require.NoError(t, err)
		_, err = fw.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return out.Bytes()
}
