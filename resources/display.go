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

package resources

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// prints a titled table with the given header and rows
func printTable(w io.Writer, title string, headers []string, rows [][]string) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No data")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}

// DisplaySummary prints the resource's parsed content as a set of console
// tables, one per template section.
func (r *Resource) DisplaySummary(w io.Writer) {
	printTable(w, "General Metadata", []string{"Key", "Value"}, [][]string{
		{"Title", r.Title},
		{"Abstract", r.Abstract},
		{"Keywords", strings.Join(r.Keywords, ",")},
		{"Type", r.Type},
		{"Public", r.Sharing.Public.Raw},
		{"Discoverable", r.Sharing.Discoverable.Raw},
		{"Shareable", r.Sharing.Shareable.Raw},
	})

	fileRows := make([][]string, 0, len(r.Files))
	for _, f := range r.Files {
		fileRows = append(fileRows, []string{f.Path, f.Type, f.Unzip.Raw})
	}
	printTable(w, "Resource Content", []string{"Path", "Type", "Unzip"}, fileRows)

	metaRows := make([][]string, 0, len(r.FileMetadata))
	for _, m := range r.FileMetadata {
		metaRows = append(metaRows, []string{m.Path, m.Title, m.StartDate,
			m.EndDate, m.Location, m.Coverage, m.SpatialDef})
	}
	printTable(w, "File Metadata",
		[]string{"Path", "Title", "Start", "End", "Location", "Coverage", "Spatial Definition"},
		metaRows)

	authorRows := make([][]string, 0, len(r.Authors))
	for _, a := range r.Authors {
		authorRows = append(authorRows, []string{a.Name, a.Organization,
			a.Email, a.Address, a.Phone})
	}
	printTable(w, "Authors",
		[]string{"Name", "Organization", "Email", "Address", "Phone"},
		authorRows)

	customRows := make([][]string, 0, len(r.CustomMetadata))
	for key, value := range r.CustomMetadata {
		customRows = append(customRows, []string{key, value})
	}
	printTable(w, "Resource Metadata", []string{"Key", "Value"}, customRows)

	fmt.Fprintf(w, "\n%d validation errors\n", len(r.ValidationErrors))
}

// DisplayErrors prints the violations collected by the most recent
// validation run.
func (r *Resource) DisplayErrors(w io.Writer) {
	if len(r.ValidationErrors) == 0 {
		fmt.Fprintln(w, "No Errors")
		return
	}
	for _, e := range r.ValidationErrors {
		fmt.Fprintf(w, " --> %s\n", e)
	}
}
