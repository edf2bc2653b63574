// Copyright (c) 2026 The HydroShare Project and its Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// This package contains testing utilities for the bulk resource creator.
package bulktest

import (
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"
)

// Enables DEBUG log messages for the tool's structured log (slog).
func EnableDebugLogging() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelDebug)
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
}

// A SheetSpec describes one resource sheet of a fixture template workbook.
// Every value is a raw cell string, exactly as a human would have typed it.
type SheetSpec struct {
	Name string

	// general metadata
	Title, Abstract, Keywords, Type string

	// sharing status
	Public, Discoverable, Shareable string

	// resource content rows: path, file type, unzip
	Files [][3]string

	// file metadata rows: path, title, start, end, location, coverage,
	// spatial definition
	FileMeta [][7]string

	// science metadata rows: name, organization, email, address, phone
	Authors [][5]string

	// resource metadata rows: key, value
	Custom [][2]string
}

// ValidSheet returns a sheet spec that parses and validates cleanly,
// describing a resource whose single file lives at dataFile.
func ValidSheet(dataFile string) SheetSpec {
	return SheetSpec{
		Name:     "Sheet1",
		Title:    "Lake Survey 2020",
		Abstract: "Survey data",
		Keywords: "lake survey 2020",
		Type:     "CompositeResource",
		Public:   "true",
		Files:    [][3]string{{dataFile, "", ""}},
	}
}

// a cell assignment: 0-indexed row/column and the value to store
type cellValue struct {
	row, col int
	value    any
}

// WriteTemplate builds a template workbook at the given path with one
// resource sheet per SheetSpec, laid out the way the published template is:
// each section's marker in column 0, a header row beneath it, and the
// section body starting two rows below the marker.
func WriteTemplate(path string, sheets []SheetSpec) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	// a vocabulary sheet that parsing must skip
	if _, err := workbook.NewSheet("__vocab"); err != nil {
		return err
	}
	if err := workbook.SetCellValue("__vocab", "A1", "CompositeResource"); err != nil {
		return err
	}

	for i, spec := range sheets {
		if err := writeSheet(workbook, spec, i == 0); err != nil {
			return err
		}
	}

	// drop the default sheet excelize creates
	if len(sheets) == 0 || sheets[0].Name != "Sheet1" {
		workbook.DeleteSheet("Sheet1")
	}
	return workbook.SaveAs(path)
}

func writeSheet(workbook *excelize.File, spec SheetSpec, first bool) error {
	// "Sheet1" already exists in a fresh workbook
	if !(first && spec.Name == "Sheet1") {
		if _, err := workbook.NewSheet(spec.Name); err != nil {
			return err
		}
	}

	cells := make([]cellValue, 0)
	row := 2 // the published template starts with two decorative rows

	// general metadata: four fixed body rows
	cells = append(cells, cellValue{row, 0, "General Metadata"})
	row += 2
	cells = append(cells,
		cellValue{row, 0, "Title"}, cellValue{row, 1, spec.Title},
		cellValue{row + 1, 0, "Abstract"}, cellValue{row + 1, 1, spec.Abstract},
		cellValue{row + 2, 0, "Keywords"}, cellValue{row + 2, 1, spec.Keywords},
		cellValue{row + 3, 0, "Type"}, cellValue{row + 3, 1, spec.Type})
	row += 6 // 4 body rows + 2 slack rows before the next marker

	cells = append(cells, cellValue{row, 0, "Sharing Status"})
	row += 2
	cells = append(cells,
		cellValue{row, 0, "Public"}, cellValue{row, 1, spec.Public},
		cellValue{row + 1, 0, "Discoverable"}, cellValue{row + 1, 1, spec.Discoverable},
		cellValue{row + 2, 0, "Shareable"}, cellValue{row + 2, 1, spec.Shareable})
	row += 5

	cells = append(cells, cellValue{row, 0, "Resource Content"})
	row += 2
	for _, f := range spec.Files {
		cells = append(cells,
			cellValue{row, 1, f[0]}, cellValue{row, 7, f[1]}, cellValue{row, 9, f[2]})
		row++
	}
	row += 2

	cells = append(cells, cellValue{row, 0, "File Metadata"})
	row += 2
	for _, m := range spec.FileMeta {
		cells = append(cells,
			cellValue{row, 1, m[0]}, cellValue{row, 5, m[1]},
			cellValue{row, 7, m[2]}, cellValue{row, 8, m[3]},
			cellValue{row, 9, m[4]}, cellValue{row, 11, m[5]},
			cellValue{row, 13, m[6]})
		row++
	}
	row += 2

	cells = append(cells, cellValue{row, 0, "Science Metadata"})
	row += 2
	for _, a := range spec.Authors {
		cells = append(cells,
			cellValue{row, 1, a[0]}, cellValue{row, 3, a[1]},
			cellValue{row, 5, a[2]}, cellValue{row, 7, a[3]},
			cellValue{row, 11, a[4]})
		row++
	}
	row += 2

	cells = append(cells, cellValue{row, 0, "Resource Metadata"})
	row += 2
	for _, kv := range spec.Custom {
		cells = append(cells,
			cellValue{row, 1, kv[0]}, cellValue{row, 3, kv[1]})
		row++
	}

	for _, c := range cells {
		axis, err := excelize.CoordinatesToCellName(c.col+1, c.row+1)
		if err != nil {
			return err
		}
		if err := workbook.SetCellValue(spec.Name, axis, c.value); err != nil {
			return err
		}
	}
	return nil
}
