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

// This package extracts Resource records from a bulk creation template
// workbook. A template holds one resource per sheet, laid out as a set of
// marker-delimited sections; sheets whose names begin with "__" hold
// vocabulary data and are skipped.
package template

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hydroshare/hs-bulk-create/resources"
)

// sheets beginning with this prefix hold lookup vocabularies, not resources
const vocabPrefix = "__"

// the section markers every resource sheet must carry, in template order
var sectionMarkers = []string{
	"General Metadata",
	"Sharing Status",
	"Resource Content",
	"File Metadata",
	"Science Metadata",
	"Resource Metadata",
}

// a contiguous row range holding one section's body; start is inclusive,
// end exclusive
type rowRange struct {
	start, end int
}

// This type carries everything a single sheet's extraction needs: both the
// raw and the rendered cell grids, and the workbook's date epoch. It is
// threaded explicitly through the parse so parsing is reentrant.
type parseContext struct {
	file  string
	sheet string
	// cell grid with raw (unformatted) values
	raw [][]string
	// cell grid with rendered values
	rendered [][]string
	// true if the workbook uses the 1904 date epoch
	date1904 bool
	// section name -> body row range
	sections map[string]rowRange
}

// returns the raw cell at (row, col), or "" when the grid has no such cell
func (ctx *parseContext) cell(row, col int) string {
	if row < 0 || row >= len(ctx.raw) || col >= len(ctx.raw[row]) {
		return ""
	}
	return strings.TrimSpace(ctx.raw[row][col])
}

// returns the rendered cell at (row, col), or "" when the grid has no such cell
func (ctx *parseContext) renderedCell(row, col int) string {
	if row < 0 || row >= len(ctx.rendered) || col >= len(ctx.rendered[row]) {
		return ""
	}
	return strings.TrimSpace(ctx.rendered[row][col])
}

// This helper fetches a date-aware cell. A cell whose raw value is an Excel
// date serial (numeric raw value rendered as something non-numeric by its
// style) is converted to an ISO 8601 timestamp using the workbook's date
// epoch; anything else passes through as its raw text.
func (ctx *parseContext) dateAwareCell(row, col int) string {
	raw := ctx.cell(row, col)
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	rendered := ctx.renderedCell(row, col)
	if _, err := strconv.ParseFloat(rendered, 64); err == nil {
		// numeric style: a plain number, not a date
		return raw
	}
	date, err := excelize.ExcelDateToTime(serial, ctx.date1904)
	if err != nil {
		return raw
	}
	return date.Format("2006-01-02T15:04:05")
}

// scanSections makes a single linear pass over the sheet, collecting the
// body row range for each section marker found in column 0. A section's
// body starts two rows after its marker and ends two rows before the next
// marker (the last section runs to the end of the sheet).
func (ctx *parseContext) scanSections() {
	ctx.sections = make(map[string]rowRange)
	markers := make(map[string]struct{}, len(sectionMarkers))
	for _, name := range sectionMarkers {
		markers[name] = struct{}{}
	}

	current := ""
	for row := 0; row < len(ctx.raw); row++ {
		value := ctx.cell(row, 0)
		if _, found := markers[value]; !found {
			continue
		}
		if current != "" {
			r := ctx.sections[current]
			r.end = row - 2
			ctx.sections[current] = r
		}
		ctx.sections[value] = rowRange{start: row + 2, end: len(ctx.raw)}
		current = value
	}
}

// returns the body range for a named section, or a ParseError when the
// sheet never carried its marker (or carried it out of order, leaving an
// inverted range)
func (ctx *parseContext) section(name string) (rowRange, error) {
	r, found := ctx.sections[name]
	if !found || r.end < r.start {
		return rowRange{}, &ParseError{
			File:    ctx.file,
			Sheet:   ctx.sheet,
			Section: name,
		}
	}
	return r, nil
}

// Parse opens the workbook at the given path and extracts one Resource per
// resource sheet, in sheet order. The extracted records carry raw
// spreadsheet values; run validation to canonicalize them.
func Parse(path string) ([]*resources.Resource, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{File: path, Message: err.Error()}
	}
	defer workbook.Close()

	// the date epoch is a workbook-level property
	props, err := workbook.GetWorkbookProps()
	if err != nil {
		return nil, &ParseError{File: path, Message: err.Error()}
	}
	date1904 := props.Date1904 != nil && *props.Date1904

	parsed := make([]*resources.Resource, 0)
	for _, sheet := range workbook.GetSheetList() {
		if strings.HasPrefix(sheet, vocabPrefix) {
			slog.Debug("skipping vocabulary sheet", "sheet", sheet)
			continue
		}

		ctx := parseContext{file: path, sheet: sheet, date1904: date1904}
		ctx.raw, err = workbook.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, &ParseError{File: path, Sheet: sheet, Message: err.Error()}
		}
		ctx.rendered, err = workbook.GetRows(sheet)
		if err != nil {
			return nil, &ParseError{File: path, Sheet: sheet, Message: err.Error()}
		}
		ctx.scanSections()

		resource, err := extractResource(&ctx)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, resource)
	}
	return parsed, nil
}

// extractResource maps a sheet's sections onto a Resource record.
func extractResource(ctx *parseContext) (*resources.Resource, error) {
	var r resources.Resource

	// general metadata: four fixed rows (title, abstract, keywords, type)
	general, err := ctx.section("General Metadata")
	if err != nil {
		return nil, err
	}
	r.Title = ctx.cell(general.start, 1)
	r.Abstract = ctx.cell(general.start+1, 1)
	r.Keywords = strings.Fields(ctx.cell(general.start+2, 1))
	r.Type = ctx.cell(general.start+3, 1)

	// sharing status: three fixed rows (public, discoverable, shareable)
	sharing, err := ctx.section("Sharing Status")
	if err != nil {
		return nil, err
	}
	r.Sharing = resources.SharingStatus{
		Public:       resources.Flag{Raw: ctx.cell(sharing.start, 1)},
		Discoverable: resources.Flag{Raw: ctx.cell(sharing.start+1, 1)},
		Shareable:    resources.Flag{Raw: ctx.cell(sharing.start+2, 1)},
	}

	// resource content: one row per file; rows with a blank path produce
	// no entry
	content, err := ctx.section("Resource Content")
	if err != nil {
		return nil, err
	}
	r.Files = make([]resources.FileEntry, 0)
	for row := content.start; row < content.end; row++ {
		path := ctx.cell(row, 1)
		if path == "" {
			continue
		}
		r.Files = append(r.Files, resources.FileEntry{
			Path:  path,
			Type:  ctx.cell(row, 7),
			Unzip: resources.Flag{Raw: ctx.cell(row, 9)},
		})
	}

	// file metadata: one row per entry, with date-aware start/end columns
	fileMeta, err := ctx.section("File Metadata")
	if err != nil {
		return nil, err
	}
	r.FileMetadata = make([]resources.FileMetaEntry, 0)
	for row := fileMeta.start; row < fileMeta.end; row++ {
		path := ctx.cell(row, 1)
		if path == "" {
			continue
		}
		r.FileMetadata = append(r.FileMetadata, resources.FileMetaEntry{
			Path:       path,
			Title:      ctx.cell(row, 5),
			StartDate:  ctx.dateAwareCell(row, 7),
			EndDate:    ctx.dateAwareCell(row, 8),
			Location:   ctx.cell(row, 9),
			Coverage:   ctx.cell(row, 11),
			SpatialDef: ctx.cell(row, 13),
		})
	}

	// science metadata: one row per author
	science, err := ctx.section("Science Metadata")
	if err != nil {
		return nil, err
	}
	r.Authors = make([]resources.Author, 0)
	for row := science.start; row < science.end; row++ {
		name := ctx.cell(row, 1)
		if name == "" {
			continue
		}
		r.Authors = append(r.Authors, resources.Author{
			Name:         name,
			Organization: ctx.cell(row, 3),
			Email:        ctx.cell(row, 5),
			Address:      ctx.cell(row, 7),
			Phone:        ctx.cell(row, 11),
		})
	}

	// resource metadata: one key/value pair per row, with a date-aware
	// value column
	custom, err := ctx.section("Resource Metadata")
	if err != nil {
		return nil, err
	}
	r.CustomMetadata = make(map[string]string)
	for row := custom.start; row < custom.end; row++ {
		key := ctx.cell(row, 1)
		if key == "" {
			continue
		}
		r.CustomMetadata[key] = ctx.dateAwareCell(row, 3)
	}

	return &r, nil
}
