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
	"os"
	"strings"
)

// spatial definition keys required for each coverage type
var requiredSpatialKeys = map[string][]string{
	"point": {"lat", "lon"},
	"box":   {"north_lat", "south_lat", "east_lon", "west_lat"},
}

// parseSpatialDef parses a raw "key=value key=value" cell into a mapping.
// Every whitespace-separated token must contain exactly one '='.
func parseSpatialDef(raw string) (map[string]string, error) {
	spatial := make(map[string]string)
	for _, token := range strings.Fields(raw) {
		if strings.Count(token, "=") != 1 {
			return nil, fmt.Errorf("invalid spatial definition format: %s", raw)
		}
		pair := strings.SplitN(token, "=", 2)
		if pair[0] == "" {
			return nil, fmt.Errorf("invalid spatial definition format: %s", raw)
		}
		spatial[pair[0]] = pair[1]
	}
	return spatial, nil
}

// Normalized checks the resource against every rule, returning a
// canonicalized copy and the list of rule violations. All rules run, so
// every violation is reported, not just the first. The copy has its
// resource type replaced by the canonical display name (when matched),
// its sharing/unzip flags coerced, its file types canonicalized, and its
// spatial definitions parsed into mappings.
func (r *Resource) Normalized() (Resource, []string) {
	norm := r.clone()
	violations := make([]string, 0)

	if strings.TrimSpace(norm.Title) == "" {
		violations = append(violations, "Title cannot be empty")
	}
	if strings.TrimSpace(norm.Abstract) == "" {
		violations = append(violations, "Abstract cannot be empty")
	}
	if len(norm.Keywords) == 0 {
		violations = append(violations, "Keywords cannot be empty")
	}

	if strings.TrimSpace(norm.Type) == "" {
		violations = append(violations, "Type cannot be empty")
	}
	if displayName, found := supportedResourceTypes[strings.ToLower(norm.Type)]; found {
		norm.Type = displayName
	} else {
		violations = append(violations,
			fmt.Sprintf("Type must be one of the following: %s",
				strings.Join(SupportedResourceTypes(), ",")))
	}

	for _, flag := range []struct {
		name string
		flag *Flag
	}{
		{"public", &norm.Sharing.Public},
		{"discoverable", &norm.Sharing.Discoverable},
		{"shareable", &norm.Sharing.Shareable},
	} {
		value, recognized := ParseFlag(flag.flag.Raw)
		if recognized {
			flag.flag.Value = value
		} else {
			violations = append(violations,
				fmt.Sprintf("unrecognized value '%s' for sharing flag '%s'",
					flag.flag.Raw, flag.name))
		}
	}

	for i := range norm.Files {
		f := &norm.Files[i]
		if _, err := os.Stat(f.Path); err != nil {
			violations = append(violations,
				fmt.Sprintf("Could not find file: %s", f.Path))
		}
		if label, found := supportedFileTypes[strings.ToLower(f.Type)]; found {
			f.Type = label
		} else {
			violations = append(violations,
				fmt.Sprintf("%s is not a valid file type", f.Type))
		}
		value, recognized := ParseFlag(f.Unzip.Raw)
		if recognized {
			f.Unzip.Value = value
		} else {
			violations = append(violations,
				fmt.Sprintf("unrecognized value '%s' for unzip flag on file %s",
					f.Unzip.Raw, f.Path))
		}
	}

	filePaths := make(map[string]struct{})
	for _, f := range norm.Files {
		filePaths[f.Path] = struct{}{}
	}
	for i := range norm.FileMetadata {
		meta := &norm.FileMetadata[i]
		if _, found := filePaths[meta.Path]; meta.Path != "" && !found {
			violations = append(violations,
				fmt.Sprintf("cannot add metadata for file that is not part of the resource: %s",
					meta.Path))
		}
		if meta.Coverage == "" {
			continue
		}
		coverage := strings.ToLower(meta.Coverage)
		if _, found := requiredSpatialKeys[coverage]; !found {
			violations = append(violations,
				fmt.Sprintf("invalid coverage: %s", meta.Coverage))
		}
		spatial, err := parseSpatialDef(meta.SpatialDef)
		if err != nil {
			// downstream code never sees a raw string, so substitute an
			// empty mapping
			spatial = make(map[string]string)
			violations = append(violations, err.Error())
		}
		if len(spatial) > 0 {
			for _, key := range requiredSpatialKeys[coverage] {
				if _, found := spatial[key]; !found {
					violations = append(violations,
						fmt.Sprintf("invalid spatial definition for type \"%s\"",
							coverage))
					break
				}
			}
		} else {
			violations = append(violations,
				"spatial definition is required if coverage type has been specified")
		}
		meta.Spatial = spatial
	}

	return norm, violations
}

// Validate normalizes the resource in place and rebuilds its
// ValidationErrors, returning the violations found. Canonical values are
// stable under repeated validation.
func (r *Resource) Validate() []string {
	norm, violations := r.Normalized()
	*r = norm
	r.ValidationErrors = violations
	return violations
}

// IsValid re-runs the full validation and reports whether the resource
// passed. A previous result is not trusted once any field may have been
// mutated.
func (r *Resource) IsValid() bool {
	return len(r.Validate()) == 0
}

// ValidateAll validates every resource in place and returns the subset
// that failed.
func ValidateAll(rs []*Resource) []*Resource {
	failed := make([]*Resource, 0)
	for _, r := range rs {
		if !r.IsValid() {
			failed = append(failed, r)
		}
	}
	return failed
}

// clone returns a deep copy of the resource so normalization never
// aliases the original's slices and maps.
func (r *Resource) clone() Resource {
	c := *r
	c.Keywords = append([]string(nil), r.Keywords...)
	c.Files = append([]FileEntry(nil), r.Files...)
	c.FileMetadata = append([]FileMetaEntry(nil), r.FileMetadata...)
	for i, meta := range r.FileMetadata {
		if meta.Spatial != nil {
			c.FileMetadata[i].Spatial = make(map[string]string, len(meta.Spatial))
			for k, v := range meta.Spatial {
				c.FileMetadata[i].Spatial[k] = v
			}
		}
	}
	c.Authors = append([]Author(nil), r.Authors...)
	if r.CustomMetadata != nil {
		c.CustomMetadata = make(map[string]string, len(r.CustomMetadata))
		for k, v := range r.CustomMetadata {
			c.CustomMetadata[k] = v
		}
	}
	c.ValidationErrors = append([]string(nil), r.ValidationErrors...)
	return c
}
