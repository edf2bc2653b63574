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
	"fmt"
)

// indicates that a template workbook is unreadable or malformed; fatal to
// the whole run
type ParseError struct {
	// path to the workbook
	File string
	// name of the offending sheet (when one is known)
	Sheet string
	// name of the section marker that couldn't be found (when one is
	// missing)
	Section string
	// underlying cause
	Message string
}

func (e ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("Couldn't find section '%s' in sheet '%s' of template '%s'",
			e.Section, e.Sheet, e.File)
	}
	if e.Sheet != "" {
		return fmt.Sprintf("Couldn't parse sheet '%s' of template '%s': %s",
			e.Sheet, e.File, e.Message)
	}
	return fmt.Sprintf("Couldn't parse template '%s': %s", e.File, e.Message)
}
