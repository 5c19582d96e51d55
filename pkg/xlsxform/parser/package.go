package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parts every spreadsheet package must carry.
const (
	contentTypesPart = "[Content_Types].xml"
	workbookPart     = "xl/workbook.xml"
	workbookRelsPart = "xl/_rels/workbook.xml.rels"
)

var errPartMissing = errors.New("part missing")

// sheetEntry is a sheet declared in xl/workbook.xml.
type sheetEntry struct {
	Name string
	RID  string
	Part string
}

// inspectPackage checks the OOXML package structure of data and returns the
// declared sheets in workbook order.
func inspectPackage(data []byte) ([]sheetEntry, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, invalidFormat("not a zip archive", err)
	}

	if _, err := readWellFormedPart(r, contentTypesPart); err != nil {
		return nil, err
	}

	workbookXML, err := readWellFormedPart(r, workbookPart)
	if err != nil {
		return nil, err
	}
	sheets := parseWorkbookSheets(workbookXML)
	if len(sheets) == 0 {
		return nil, invalidFormat("workbook declares no worksheets", nil)
	}

	relsXML, err := readWellFormedPart(r, workbookRelsPart)
	if err != nil {
		return nil, err
	}
	targets := parseWorkbookRels(relsXML)
	for i := range sheets {
		sheets[i].Part = targets[sheets[i].RID]
	}

	// Only the first sheet is read by default; a broken first sheet part
	// makes the whole container unusable.
	first := sheets[0]
	if first.Part == "" {
		return nil, invalidFormat(fmt.Sprintf("sheet %q has no worksheet relationship", first.Name), nil)
	}
	if _, err := readWellFormedPart(r, first.Part); err != nil {
		return nil, err
	}

	return sheets, nil
}

// readWellFormedPart reads a package part and checks it is well-formed XML.
func readWellFormedPart(r *zip.Reader, name string) ([]byte, error) {
	data, err := readZipFile(r, name)
	if err != nil {
		return nil, invalidFormat(fmt.Sprintf("cannot read %s", name), err)
	}
	if err := checkWellFormed(data); err != nil {
		return nil, invalidFormat(fmt.Sprintf("corrupt %s", name), err)
	}
	return data, nil
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if strings.EqualFold(f.Name, name) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, errPartMissing
}

func checkWellFormed(data []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	sawElement := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if _, ok := token.(xml.StartElement); ok {
			sawElement = true
		}
	}
	if !sawElement {
		return errors.New("no root element")
	}
	return nil
}

// parseWorkbookSheets returns the sheets of xl/workbook.xml in order.
func parseWorkbookSheets(data []byte) []sheetEntry {
	var result []sheetEntry
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rID string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rID = attr.Value
				}
			}
			if name != "" && rID != "" {
				result = append(result, sheetEntry{Name: name, RID: rID})
			}
		}
	}

	return result
}

// parseWorkbookRels maps worksheet relationship ids to part paths.
func parseWorkbookRels(data []byte) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if rID != "" && strings.Contains(strings.ToLower(target), "worksheet") {
				result[rID] = resolveRelativePath(target, "xl")
			}
		}
	}

	return result
}

func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	clean := target
	for strings.HasPrefix(clean, "../") {
		clean = strings.TrimPrefix(clean, "../")
	}
	if clean != target {
		return clean
	}
	return baseDir + "/" + target
}
