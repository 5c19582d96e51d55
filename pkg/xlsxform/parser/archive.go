// Package parser reads form templates out of xlsx workbooks.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/spf13/afero"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"
	"github.com/xuri/excelize/v2"
)

// oleSignature starts every OLE compound document (legacy .xls files and
// password protected OOXML packages).
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// ReadOptions configures how a workbook is materialized.
type ReadOptions struct {
	// Sheet selects the sheet to read. Empty means the first sheet.
	Sheet string
	// MinColumns widens the materialized grid to at least this many columns
	// so empty input cells still carry their metadata.
	MinColumns int
}

// Open reads the workbook at path from fsys and materializes the sheet of
// interest. It fails with ErrNotFound when path is not a readable file and
// with ErrInvalidFormat when the file is not a well-formed xlsx package.
func Open(fsys afero.Fs, path string, opts ReadOptions) (*models.Workbook, error) {
	data, err := readInput(fsys, path)
	if err != nil {
		return nil, err
	}

	if bytes.HasPrefix(data, oleSignature) {
		return nil, describeCompoundFile(data)
	}

	entries, err := inspectPackage(data)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, invalidFormat("cannot open workbook", err)
	}
	defer f.Close()

	sheetName := entries[0].Name
	if opts.Sheet != "" {
		sheetName = ""
		for _, e := range entries {
			if e.Name == opts.Sheet {
				sheetName = e.Name
				break
			}
		}
		if sheetName == "" {
			return nil, invalidFormat(fmt.Sprintf("workbook has no sheet %q", opts.Sheet), nil)
		}
	}

	sheet, err := readSheet(f, sheetName, opts.MinColumns)
	if err != nil {
		return nil, invalidFormat(fmt.Sprintf("cannot read sheet %q", sheetName), err)
	}

	return &models.Workbook{
		Name:       filepath.Base(path),
		SheetNames: f.GetSheetList(),
		Sheets:     []models.Sheet{sheet},
	}, nil
}

func readInput(fsys afero.Fs, path string) ([]byte, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, unwrapPathError(err))
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, unwrapPathError(err))
	}
	return data, nil
}

func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// describeCompoundFile explains why an OLE compound document is rejected.
func describeCompoundFile(data []byte) error {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return invalidFormat("corrupt compound document", err)
	}
	for {
		entry, err := doc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return invalidFormat("corrupt compound document", err)
		}
		switch strings.ToLower(entry.Name) {
		case "encryptedpackage":
			return invalidFormat("workbook is password protected", nil)
		case "workbook", "book":
			return invalidFormat("legacy binary .xls workbook, save it as .xlsx", nil)
		}
	}
	return invalidFormat("compound document is not an xlsx workbook", nil)
}
