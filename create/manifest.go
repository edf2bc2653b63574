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

package create

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/frictionlessdata/datapackage-go/datapackage"
	"github.com/frictionlessdata/datapackage-go/validator"
	"github.com/google/uuid"

	"github.com/hydroshare/hs-bulk-create/hydroshare"
)

// WriteManifest generates a Frictionless data-package descriptor listing
// the resources a run created and saves it under dir, returning the
// manifest's path. The manifest gives a run a portable record of what
// landed where.
func WriteManifest(dir string, session *hydroshare.Session,
	created map[string]string) (string, error) {

	// the data-package profile requires at least one resource entry
	if len(created) == 0 {
		return "", nil
	}

	descriptors := make([]any, 0, len(created))
	for id, title := range created {
		url := session.ResourceURL(id)
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			url = "https://" + url
		}
		descriptors = append(descriptors, map[string]any{
			"name":  id,
			"path":  url,
			"title": title,
		})
	}

	descriptor := map[string]any{
		"name":      "bulk-create-manifest",
		"resources": descriptors,
		"created":   time.Now().Format(time.RFC3339),
		"profile":   "data-package",
		"keywords":  []any{"hydroshare", "bulk-create", "manifest"},
	}

	manifest, err := datapackage.New(descriptor, ".", validator.InMemoryLoader())
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("manifest-%s.json", uuid.New().String()))
	if err := manifest.SaveDescriptor(path); err != nil {
		return "", err
	}
	return path, nil
}
