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

package template

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/hydroshare/hs-bulk-create/bulktest"
)

// writes a data file and a one-sheet template workbook into dir, returning
// their paths
func writeFixture(t *testing.T, dir string, mutate func(*bulktest.SheetSpec)) (string, string) {
	t.Helper()
	dataFile := filepath.Join(dir, "survey.csv")
	err := os.WriteFile(dataFile, []byte("depth,temp\n1,4.2\n"), 0644)
	assert.Nil(t, err)

	sheet := bulktest.ValidSheet(dataFile)
	if mutate != nil {
		mutate(&sheet)
	}
	templateFile := filepath.Join(dir, "template.xlsx")
	err = bulktest.WriteTemplate(templateFile, []bulktest.SheetSpec{sheet})
	assert.Nil(t, err)
	return templateFile, dataFile
}

func TestParseValidTemplate(t *testing.T) {
	assert := assert.New(t)
	templateFile, dataFile := writeFixture(t, t.TempDir(), nil)

	parsed, err := Parse(templateFile)
	assert.Nil(err)
	assert.Len(parsed, 1)

	r := parsed[0]
	assert.Equal("Lake Survey 2020", r.Title)
	assert.Equal("Survey data", r.Abstract)
	assert.Equal([]string{"lake", "survey", "2020"}, r.Keywords)
	assert.Equal("CompositeResource", r.Type)
	assert.Equal("true", r.Sharing.Public.Raw)
	assert.Equal("", r.Sharing.Discoverable.Raw)
	assert.Len(r.Files, 1)
	assert.Equal(dataFile, r.Files[0].Path)
}

func TestParseMissingFileFails(t *testing.T) {
	parsed, err := Parse("/no/such/template.xlsx")
	assert.Nil(t, parsed)
	assert.NotNil(t, err)
	assert.IsType(t, &ParseError{}, err)
}

func TestParseRejectsNonSpreadsheet(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "template.xlsx")
	err := os.WriteFile(bogus, []byte("not a workbook"), 0644)
	assert.Nil(t, err)

	parsed, err := Parse(bogus)
	assert.Nil(t, parsed)
	assert.IsType(t, &ParseError{}, err)
}

func TestVocabularySheetIsSkipped(t *testing.T) {
	// the fixture always carries a __vocab sheet; only the resource sheet
	// should come back
	templateFile, _ := writeFixture(t, t.TempDir(), nil)
	parsed, err := Parse(templateFile)
	assert.Nil(t, err)
	assert.Len(t, parsed, 1)
}

func TestBlankLeadingFieldsExcludeRows(t *testing.T) {
	assert := assert.New(t)
	templateFile, dataFile := writeFixture(t, t.TempDir(),
		func(sheet *bulktest.SheetSpec) {
			sheet.Files = append(sheet.Files, [3]string{"", "netcdf", "true"})
			sheet.Authors = [][5]string{
				{"Pat Doe", "USU", "pat@example.com", "", ""},
				{"", "Orphan Org", "", "", ""},
			}
			sheet.Custom = [][2]string{
				{"project", "iUTAH"},
				{"", "dangling value"},
			}
		})

	parsed, err := Parse(templateFile)
	assert.Nil(err)
	assert.Len(parsed, 1)

	r := parsed[0]
	assert.Len(r.Files, 1)
	assert.Equal(dataFile, r.Files[0].Path)
	assert.Len(r.Authors, 1)
	assert.Equal("Pat Doe", r.Authors[0].Name)
	assert.Equal(map[string]string{"project": "iUTAH"}, r.CustomMetadata)
}

func TestFileMetadataColumns(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "survey.csv")
	templateFile, _ := writeFixture(t, dir,
		func(sheet *bulktest.SheetSpec) {
			sheet.FileMeta = [][7]string{
				{dataFile, "Bear River site", "2020-01-01", "2020-06-30",
					"Bear River", "point", "lat=41.5 lon=-112.0"},
			}
		})

	parsed, err := Parse(templateFile)
	assert.Nil(err)
	meta := parsed[0].FileMetadata
	assert.Len(meta, 1)
	assert.Equal(dataFile, meta[0].Path)
	assert.Equal("Bear River site", meta[0].Title)
	assert.Equal("2020-01-01", meta[0].StartDate)
	assert.Equal("point", meta[0].Coverage)
	assert.Equal("lat=41.5 lon=-112.0", meta[0].SpatialDef)
}

// a date-styled cell comes back as an ISO timestamp computed from the
// workbook's date epoch
func TestDateCellsAreConverted(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "survey.csv")
	templateFile, _ := writeFixture(t, dir,
		func(sheet *bulktest.SheetSpec) {
			sheet.FileMeta = [][7]string{
				{dataFile, "site", "", "", "", "", ""},
			}
		})

	// restyle the start date cell as an actual Excel date
	workbook, err := excelize.OpenFile(templateFile)
	assert.Nil(err)
	start := time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)
	// the file-metadata body begins two rows below its marker; find it
	rows, err := workbook.GetRows("Sheet1")
	assert.Nil(err)
	metaRow := -1
	for i, row := range rows {
		if len(row) > 0 && row[0] == "File Metadata" {
			metaRow = i + 2
			break
		}
	}
	assert.NotEqual(-1, metaRow)
	axis, err := excelize.CoordinatesToCellName(8, metaRow+1)
	assert.Nil(err)
	assert.Nil(workbook.SetCellValue("Sheet1", axis, start))
	style, err := workbook.NewStyle(&excelize.Style{NumFmt: 14}) // m/d/yyyy
	assert.Nil(err)
	assert.Nil(workbook.SetCellStyle("Sheet1", axis, axis, style))
	assert.Nil(workbook.Save())
	assert.Nil(workbook.Close())

	parsed, err := Parse(templateFile)
	assert.Nil(err)
	assert.Equal("2020-03-15T00:00:00", parsed[0].FileMetadata[0].StartDate)
}

func TestMissingSectionMarkerFails(t *testing.T) {
	assert := assert.New(t)
	templateFile, _ := writeFixture(t, t.TempDir(), nil)

	// blank out the Science Metadata marker
	workbook, err := excelize.OpenFile(templateFile)
	assert.Nil(err)
	rows, err := workbook.GetRows("Sheet1")
	assert.Nil(err)
	for i, row := range rows {
		if len(row) > 0 && row[0] == "Science Metadata" {
			axis, _ := excelize.CoordinatesToCellName(1, i+1)
			assert.Nil(workbook.SetCellValue("Sheet1", axis, ""))
		}
	}
	assert.Nil(workbook.Save())
	assert.Nil(workbook.Close())

	parsed, err := Parse(templateFile)
	assert.Nil(parsed)
	assert.NotNil(err)
	parseErr, ok := err.(*ParseError)
	assert.True(ok)
	assert.Equal("Science Metadata", parseErr.Section)
	assert.Equal("Sheet1", parseErr.Sheet)
}

// a parsed-then-validated resource always carries a canonical display name
func TestParseThenValidateCanonicalizesType(t *testing.T) {
	assert := assert.New(t)
	templateFile, _ := writeFixture(t, t.TempDir(),
		func(sheet *bulktest.SheetSpec) {
			sheet.Type = "compositeresource"
		})

	parsed, err := Parse(templateFile)
	assert.Nil(err)
	assert.Equal("compositeresource", parsed[0].Type) // raw until validated
	assert.True(parsed[0].IsValid())
	assert.Equal("CompositeResource", parsed[0].Type)
}

func TestParseMultipleSheets(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "survey.csv")
	assert.Nil(os.WriteFile(dataFile, []byte("x\n"), 0644))

	first := bulktest.ValidSheet(dataFile)
	second := bulktest.ValidSheet(dataFile)
	second.Name = "Sheet2"
	second.Title = "Lake Survey 2021"

	templateFile := filepath.Join(dir, "template.xlsx")
	assert.Nil(bulktest.WriteTemplate(templateFile,
		[]bulktest.SheetSpec{first, second}))

	parsed, err := Parse(templateFile)
	assert.Nil(err)
	assert.Len(parsed, 2)
	assert.Equal("Lake Survey 2020", parsed[0].Title)
	assert.Equal("Lake Survey 2021", parsed[1].Title)
}
