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

package journal

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/hydroshare/hs-bulk-create/config"
)

// This is the creation journal, which logs every resource creation
// attempt a run makes. The journal is a table of creation records (one
// per attempted resource).

// a record storing all information relevant to one creation attempt
type Record struct {
	// UUID associated with the attempt
	Id uuid.UUID `json:"id"`
	// the title of the resource described by the template
	Title string `json:"title"`
	// the remote resource identifier ("" when the create call itself failed)
	ResourceId string `json:"resource_id"`
	// status of the attempt ("success" or "failed")
	Status string `json:"status"`
	// error text for a failed attempt
	Error string `json:"error,omitempty"`
	// times at which the attempt started and finished
	StartTime time.Time `json:"start_time"`
	StopTime  time.Time `json:"stop_time"`
	// number of files uploaded before the attempt ended
	NumFiles int `json:"num_files"`
}

var (
	mutex sync.Mutex
	conn  *sqlite.Conn
)

const schema = `CREATE TABLE IF NOT EXISTS creations (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	resource_id TEXT,
	status TEXT NOT NULL,
	error TEXT,
	start_time TEXT NOT NULL,
	stop_time TEXT NOT NULL,
	num_files INTEGER NOT NULL
)`

// initializes the creation journal, creating its database in the
// configured data directory if needed
func Init() error {
	mutex.Lock()
	defer mutex.Unlock()

	if conn != nil {
		return nil
	}
	dbPath := filepath.Join(config.Service.DataDirectory, "creation_journal.db")
	c, err := sqlite.OpenConn(dbPath, sqlite.OpenReadWrite|sqlite.OpenCreate)
	if err != nil {
		return &CantOpenError{Message: err.Error()}
	}
	if err := sqlitex.ExecuteTransient(c, schema, nil); err != nil {
		c.Close()
		return &CantOpenError{Message: err.Error()}
	}
	conn = c
	return nil
}

// saves and closes the creation journal (if it's been opened)
func Finalize() error {
	mutex.Lock()
	defer mutex.Unlock()

	if conn == nil {
		return nil
	}
	err := conn.Close()
	conn = nil
	return err
}

// returns true if the journal is open for writing, false if not
func IsOpen() bool {
	mutex.Lock()
	defer mutex.Unlock()
	return conn != nil
}

// records a single creation attempt
func RecordCreation(record Record) error {
	switch record.Status {
	case "success", "failed":
	default:
		return &NewRecordError{
			Id:      record.Id,
			Message: "invalid status: " + record.Status,
		}
	}

	mutex.Lock()
	defer mutex.Unlock()
	if conn == nil {
		return &NotOpenError{}
	}

	err := sqlitex.Execute(conn,
		`INSERT INTO creations (id, title, resource_id, status, error,
			start_time, stop_time, num_files) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				record.Id.String(),
				record.Title,
				record.ResourceId,
				record.Status,
				record.Error,
				record.StartTime.UTC().Format(time.RFC3339),
				record.StopTime.UTC().Format(time.RFC3339),
				record.NumFiles,
			},
		})
	if err != nil {
		return &NewRecordError{Id: record.Id, Message: err.Error()}
	}
	return nil
}

// retrieves records for creation attempts that started within the time
// range with the given (inclusive) bounds
// start: the beginning of the time period of interest
// stop: the end of the time period of interest
func Records(start, stop time.Time) ([]Record, error) {
	mutex.Lock()
	defer mutex.Unlock()
	if conn == nil {
		return nil, &NotOpenError{}
	}

	records := make([]Record, 0)
	err := sqlitex.Execute(conn,
		`SELECT id, title, resource_id, status, error, start_time, stop_time,
			num_files FROM creations WHERE start_time >= ? AND start_time <= ?
			ORDER BY start_time`,
		&sqlitex.ExecOptions{
			Args: []any{
				start.UTC().Format(time.RFC3339),
				stop.UTC().Format(time.RFC3339),
			},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				id, err := uuid.Parse(stmt.ColumnText(0))
				if err != nil {
					return err
				}
				startTime, err := time.Parse(time.RFC3339, stmt.ColumnText(5))
				if err != nil {
					return err
				}
				stopTime, err := time.Parse(time.RFC3339, stmt.ColumnText(6))
				if err != nil {
					return err
				}
				records = append(records, Record{
					Id:         id,
					Title:      stmt.ColumnText(1),
					ResourceId: stmt.ColumnText(2),
					Status:     stmt.ColumnText(3),
					Error:      stmt.ColumnText(4),
					StartTime:  startTime,
					StopTime:   stopTime,
					NumFiles:   stmt.ColumnInt(7),
				})
				return nil
			},
		})
	return records, err
}
