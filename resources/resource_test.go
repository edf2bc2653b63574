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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// returns a resource that passes every validation rule, with one real
// file on disk under dir
func validResource(t *testing.T, dir string) *Resource {
	t.Helper()
	dataFile := filepath.Join(dir, "survey.csv")
	err := os.WriteFile(dataFile, []byte("depth,temp\n1,4.2\n"), 0644)
	assert.Nil(t, err)

	return &Resource{
		Title:    "Lake Survey 2020",
		Abstract: "Survey data",
		Keywords: []string{"lake", "survey", "2020"},
		Type:     "CompositeResource",
		Sharing: SharingStatus{
			Public:       Flag{Raw: "true"},
			Discoverable: Flag{Raw: ""},
			Shareable:    Flag{Raw: "false"},
		},
		Files: []FileEntry{
			{Path: dataFile, Type: "", Unzip: Flag{Raw: ""}},
		},
	}
}

func TestValidResourcePasses(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	assert.True(r.IsValid())
	assert.Empty(r.ValidationErrors)
	assert.True(r.Sharing.Public.Value)
	assert.False(r.Sharing.Shareable.Value)
}

func TestEmptyTitleIsFlagged(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.Title = ""
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors, "Title cannot be empty")
}

func TestEmptyAbstractIsFlagged(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.Abstract = "   "
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors, "Abstract cannot be empty")
}

func TestEmptyKeywordsAreFlagged(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.Keywords = nil
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors, "Keywords cannot be empty")
}

// all rules run, so a resource violating several reports every violation
func TestValidationDoesNotShortCircuit(t *testing.T) {
	assert := assert.New(t)
	r := &Resource{}
	r.Validate()
	assert.Contains(r.ValidationErrors, "Title cannot be empty")
	assert.Contains(r.ValidationErrors, "Abstract cannot be empty")
	assert.Contains(r.ValidationErrors, "Keywords cannot be empty")
	assert.Contains(r.ValidationErrors, "Type cannot be empty")
}

func TestTypeIsCanonicalized(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.Type = "compositeRESOURCE"
	assert.True(r.IsValid())
	assert.Equal("CompositeResource", r.Type)
}

// an unsupported type is reported with the supported enumeration and left
// unmodified
func TestUnsupportedTypeIsFlagged(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.Type = "NotAType"
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors,
		"Type must be one of the following: compositeresource")
	assert.Equal("NotAType", r.Type)
}

// canonical values are stable when validation runs again
func TestValidationIsIdempotent(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	r := validResource(t, dir)
	r.Type = "compositeresource"
	r.FileMetadata = []FileMetaEntry{
		{
			Path:       r.Files[0].Path,
			Coverage:   "point",
			SpatialDef: "lat=10 lon=20",
		},
	}
	assert.True(r.IsValid())
	firstType := r.Type
	firstSpatial := r.FileMetadata[0].Spatial

	assert.True(r.IsValid())
	assert.Equal(firstType, r.Type)
	assert.Equal(firstSpatial, r.FileMetadata[0].Spatial)
}

func TestUnrecognizedSharingTokenIsFlagged(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.Sharing.Public = Flag{Raw: "maybe"}
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors,
		"unrecognized value 'maybe' for sharing flag 'public'")
}

// the literal text "false" means false, not truthy-nonempty
func TestFalseTokenMeansFalse(t *testing.T) {
	value, recognized := ParseFlag("false")
	assert.True(t, recognized)
	assert.False(t, value)

	value, recognized = ParseFlag("")
	assert.True(t, recognized)
	assert.False(t, value)

	value, recognized = ParseFlag("Yes")
	assert.True(t, recognized)
	assert.True(t, value)

	_, recognized = ParseFlag("oui")
	assert.False(t, recognized)
}

func TestMissingFileIsFlagged(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.Files = append(r.Files, FileEntry{Path: "/no/such/file.csv"})
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors, "Could not find file: /no/such/file.csv")
}

func TestFileTypeIsCanonicalized(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.Files[0].Type = "netcdf"
	assert.True(r.IsValid())
	assert.Equal("NetCDF", r.Files[0].Type)
}

func TestInvalidFileTypeIsFlagged(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.Files[0].Type = "shapefile"
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors, "shapefile is not a valid file type")
}

// metadata must reference a path present in the resource's own files
func TestFileMetadataReferentialIntegrity(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.FileMetadata = []FileMetaEntry{
		{Path: "/somewhere/else.csv", Title: "orphaned"},
	}
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors,
		"cannot add metadata for file that is not part of the resource: /somewhere/else.csv")
}

func TestInvalidCoverageIsFlagged(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.FileMetadata = []FileMetaEntry{
		{Path: r.Files[0].Path, Coverage: "sphere", SpatialDef: "lat=1 lon=2"},
	}
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors, "invalid coverage: sphere")
}

func TestPointSpatialDefinition(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.FileMetadata = []FileMetaEntry{
		{Path: r.Files[0].Path, Coverage: "point", SpatialDef: "lat=10 lon=20"},
	}
	assert.True(r.IsValid())
	assert.Equal(map[string]string{"lat": "10", "lon": "20"},
		r.FileMetadata[0].Spatial)
}

func TestPointSpatialDefinitionMissingKey(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.FileMetadata = []FileMetaEntry{
		{Path: r.Files[0].Path, Coverage: "point", SpatialDef: "lat=10"},
	}
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors,
		"invalid spatial definition for type \"point\"")
}

func TestBoxSpatialDefinition(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.FileMetadata = []FileMetaEntry{
		{
			Path:       r.Files[0].Path,
			Coverage:   "Box",
			SpatialDef: "north_lat=42 south_lat=41 east_lon=-111 west_lat=-112",
		},
	}
	assert.True(r.IsValid())
	assert.Equal("41", r.FileMetadata[0].Spatial["south_lat"])
}

// a malformed spatial definition reports an error and substitutes an
// empty mapping
func TestMalformedSpatialDefinition(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.FileMetadata = []FileMetaEntry{
		{Path: r.Files[0].Path, Coverage: "point", SpatialDef: "lat:10 lon:20"},
	}
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors,
		"invalid spatial definition format: lat:10 lon:20")
	assert.NotNil(r.FileMetadata[0].Spatial)
	assert.Empty(r.FileMetadata[0].Spatial)
}

func TestCoverageWithoutSpatialDefinition(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.FileMetadata = []FileMetaEntry{
		{Path: r.Files[0].Path, Coverage: "point", SpatialDef: ""},
	}
	assert.False(r.IsValid())
	assert.Contains(r.ValidationErrors,
		"spatial definition is required if coverage type has been specified")
}

func TestValidateAllReturnsFailedSubset(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	good := validResource(t, dir)
	bad := validResource(t, dir)
	bad.Title = ""

	failed := ValidateAll([]*Resource{good, bad})
	assert.Len(failed, 1)
	assert.Same(bad, failed[0])
}

func TestDisplayErrors(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	var out bytes.Buffer
	r.DisplayErrors(&out)
	assert.Contains(out.String(), "No Errors")

	r.Title = ""
	r.Validate()
	out.Reset()
	r.DisplayErrors(&out)
	assert.Contains(out.String(), " --> Title cannot be empty")
}

func TestDisplaySummary(t *testing.T) {
	assert := assert.New(t)
	r := validResource(t, t.TempDir())
	r.Authors = []Author{{Name: "Pat Doe", Organization: "USU"}}
	var out bytes.Buffer
	r.DisplaySummary(&out)
	assert.Contains(out.String(), "Lake Survey 2020")
	assert.Contains(out.String(), "Pat Doe")
	assert.Contains(out.String(), "Resource Content")
}
