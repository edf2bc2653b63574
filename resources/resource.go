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

// This package defines the in-memory record for one HydroShare resource
// described by a bulk creation template, along with its validation and
// normalization rules.
package resources

import (
	"sort"
	"strings"
)

// resource types that the bulk creator is currently allowed to create,
// keyed by their lowercased names
var supportedResourceTypes = map[string]string{
	"compositeresource": "CompositeResource",
}

// every resource type HydroShare knows about, keyed by lowercased name
// (the __vocab sheet of the template lists these)
var allResourceTypes = map[string]string{
	"collectionresource":          "CollectionResource",
	"compositeresource":           "CompositeResource",
	"genericresource":             "GenericResource",
	"geographicfeatureresource":   "GeographicFeatureResource",
	"modflowmodelinstanceresource": "MODFLOWModelInstanceResource",
	"modelinstanceresource":       "ModelInstanceResource",
	"modelprogramresource":        "ModelProgramResource",
	"netcdfresource":              "NetcdfResource",
	"rasterresource":              "RasterResource",
	"reftimeseriesresource":       "RefTimeSeriesResource",
	"swatmodelinstanceresource":   "SWATModelInstanceResource",
	"scriptresource":              "ScriptResource",
	"timeseriesresource":          "TimeSeriesResource",
	"toolresource":                "ToolResource",
}

// aggregation types that can be assigned to an uploaded file, keyed by
// their lowercased names
var supportedFileTypes = map[string]string{
	"netcdf":     "NetCDF",
	"georaster":  "GeoRaster",
	"geofeature": "GeoFeature",
	"":           "",
}

// SupportedResourceTypes returns the (lowercased) names of the resource
// types that can be bulk-created, sorted for stable error messages.
func SupportedResourceTypes() []string {
	names := make([]string, 0, len(supportedResourceTypes))
	for name := range supportedResourceTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// A Flag holds a raw truthiness cell from the template and, after
// normalization, the boolean it maps to.
type Flag struct {
	// cell text as it appeared in the template
	Raw string
	// value assigned by normalization
	Value bool
}

// recognized spellings for truthiness cells (a blank cell means false)
var flagTokens = map[string]bool{
	"true":  true,
	"yes":   true,
	"1":     true,
	"false": false,
	"no":    false,
	"0":     false,
	"":      false,
}

// ParseFlag maps a raw truthiness cell to a boolean, reporting whether
// the spelling is recognized. Arbitrary non-empty strings are NOT treated
// as true.
func ParseFlag(raw string) (bool, bool) {
	value, found := flagTokens[strings.ToLower(strings.TrimSpace(raw))]
	return value, found
}

// the public/discoverable/shareable visibility flags of a resource
type SharingStatus struct {
	Public       Flag
	Discoverable Flag
	Shareable    Flag
}

// one file attached to a resource
type FileEntry struct {
	// path to the file on the local filesystem
	Path string
	// HydroShare aggregation type for the file, canonicalized by
	// normalization ("" means no aggregation)
	Type string
	// whether the file should be decompressed in place after upload
	Unzip Flag
}

// file-level metadata attached to one of a resource's files
type FileMetaEntry struct {
	// path matching one of the resource's FileEntry paths
	Path     string
	Title    string
	StartDate string
	EndDate   string
	Location string
	// spatial extent shape ("point", "box", or blank)
	Coverage string
	// raw "key=value key=value" cell from the template
	SpatialDef string
	// mapping parsed from SpatialDef by normalization (empty when the
	// raw cell fails to parse)
	Spatial map[string]string
}

// one entry in a resource's creator list
type Author struct {
	Name         string
	Organization string
	Email        string
	Address      string
	Phone        string
}

// A Resource is one dataset submission described by a template sheet. A
// freshly parsed Resource carries raw spreadsheet strings; validation
// canonicalizes Type, the sharing and unzip flags, and the spatial
// definitions (see Validate).
type Resource struct {
	Title    string
	Abstract string
	Keywords []string
	// resource type; raw until normalization replaces it with the
	// canonical display name
	Type           string
	Sharing        SharingStatus
	Files          []FileEntry
	FileMetadata   []FileMetaEntry
	Authors        []Author
	CustomMetadata map[string]string
	// rule violations collected by the most recent validation run
	ValidationErrors []string
}

// FilePaths returns the local paths of all files attached to the resource.
func (r *Resource) FilePaths() []string {
	paths := make([]string, len(r.Files))
	for i, f := range r.Files {
		paths[i] = f.Path
	}
	return paths
}
