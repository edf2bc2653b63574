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

// This package sequences the remote calls that turn validated Resource
// records into HydroShare resources. Resources are created strictly one
// after another; a failure anywhere in one resource's sequence stops that
// resource's remaining steps and nothing else.
package create

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hydroshare/hs-bulk-create/hydroshare"
	"github.com/hydroshare/hs-bulk-create/resources"
)

// outcome status values
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// An Outcome describes what happened to one resource's creation sequence.
type Outcome struct {
	// the resource's remote identifier; when the create call itself failed
	// before an identifier was assigned, a locally-generated correlation
	// id of the form "pending-<uuid>" so the failure is never lost
	Id     string
	Title  string
	Status string
	// error text for a failed outcome
	Message string
	// how long the sequence took
	Elapsed time.Duration
	// number of files uploaded before the sequence ended
	FilesUploaded int
}

// a failed creation, as reported to the caller
type Failure struct {
	Error string
	Title string
}

// Pending reports whether the outcome's id is a local correlation id
// rather than a remote identifier, meaning no resource exists remotely.
func (o Outcome) Pending() bool {
	return len(o.Id) > 8 && o.Id[:8] == "pending-"
}

// CreateMany creates every resource in order, isolating failures so one
// bad resource never aborts the batch. It returns a map of created
// resource ids to titles and a map of failed ids to their failures.
func CreateMany(session *hydroshare.Session,
	list []*resources.Resource) (map[string]string, map[string]Failure) {

	created := make(map[string]string)
	failures := make(map[string]Failure)
	for _, r := range list {
		outcome := CreateResource(session, r)
		if outcome.Status == StatusSuccess {
			created[outcome.Id] = outcome.Title
		} else {
			failures[outcome.Id] = Failure{
				Error: outcome.Message,
				Title: outcome.Title,
			}
		}
	}
	return created, failures
}

// CreateResource drives the remote call sequence for a single resource:
// create, sharing status, shareable flag, custom metadata, creator list,
// then per-file upload/unzip/file-type. The first failing call ends the
// sequence; already-applied remote state is NOT rolled back (the CLI
// offers a delete prompt for that).
func CreateResource(session *hydroshare.Session,
	r *resources.Resource) Outcome {

	start := time.Now()
	failed := func(id string, err error) Outcome {
		fmt.Println("\n  ERROR ENCOUNTERED")
		if id == "" {
			// no remote id was ever assigned; key the failure locally
			id = "pending-" + uuid.New().String()
		}
		slog.Error("resource creation failed", "id", id, "title", r.Title,
			"error", err.Error())
		return Outcome{
			Id:      id,
			Title:   r.Title,
			Status:  StatusFailed,
			Message: err.Error(),
			Elapsed: time.Since(start),
		}
	}

	fmt.Printf("\nCreating resource: %s\n", r.Title)
	id, err := session.CreateResource(r.Type, r.Title, r.Abstract, r.Keywords)
	if err != nil {
		return failed("", err)
	}

	// discoverable wins over public; neither means private
	fmt.Print("  setting status ")
	if r.Sharing.Discoverable.Value {
		fmt.Print("discoverable... ")
		err = session.SetDiscoverable(id, true)
	} else if r.Sharing.Public.Value {
		fmt.Print("public... ")
		err = session.SetPublic(id, true)
	} else {
		fmt.Print("private... ")
		err = session.SetPublic(id, false)
	}
	if err != nil {
		return failed(id, err)
	}
	fmt.Println("done")

	if r.Sharing.Shareable.Value {
		fmt.Print("  shareable... ")
	} else {
		fmt.Print("  not shareable... ")
	}
	if err = session.SetShareable(id, r.Sharing.Shareable.Value); err != nil {
		return failed(id, err)
	}
	fmt.Println("done")

	if len(r.CustomMetadata) > 0 {
		fmt.Print("  setting custom metadata... ")
		if err = session.SetCustomMetadata(id, r.CustomMetadata); err != nil {
			return failed(id, err)
		}
		fmt.Println("done")
	}

	if len(r.Authors) > 0 {
		fmt.Print("  setting science metadata... ")
		creators := make([]hydroshare.Creator, len(r.Authors))
		for i, a := range r.Authors {
			creators[i] = hydroshare.Creator{
				Name:         a.Name,
				Organization: a.Organization,
				Email:        a.Email,
				Address:      a.Address,
				Phone:        a.Phone,
			}
		}
		if err = session.SetCreators(id, creators); err != nil {
			return failed(id, err)
		}
		fmt.Println("done")
	}

	uploaded := 0
	for _, f := range r.Files {
		fmt.Printf("  uploading file: %s... ", filepath.Base(f.Path))
		if err = session.UploadFile(id, f.Path); err != nil {
			outcome := failed(id, err)
			outcome.FilesUploaded = uploaded
			return outcome
		}
		uploaded++
		fmt.Println("done")

		if f.Unzip.Value {
			fmt.Printf("  decompressing file: %s... ", filepath.Base(f.Path))
			err = session.Unzip(id, hydroshare.UnzipOptions{
				ZipWithRelPath:    filepath.Base(f.Path),
				RemoveOriginalZip: false,
			})
			if err != nil {
				outcome := failed(id, err)
				outcome.FilesUploaded = uploaded
				return outcome
			}
			fmt.Println("done")
		}

		if f.Type != "" {
			fmt.Printf("  setting file type: %s... ", f.Type)
			err = session.SetFileType(id, hydroshare.FileTypeOptions{
				FilePath:   filepath.Base(f.Path),
				HsFileType: f.Type,
			})
			if err != nil {
				outcome := failed(id, err)
				outcome.FilesUploaded = uploaded
				return outcome
			}
			fmt.Println("done")
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("  elapsed time %.5f seconds\n", elapsed.Seconds())
	return Outcome{
		Id:            id,
		Title:         r.Title,
		Status:        StatusSuccess,
		Elapsed:       elapsed,
		FilesUploaded: uploaded,
	}
}
