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

// These tests verify that creation attempts can be recorded in and read
// back from the creation journal.

import (
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hydroshare/hs-bulk-create/config"
)

var TESTING_DIR string

// journal config with TESTING_DIR replaced by the testing directory
const journalConfig string = `
service:
  data_directory: TESTING_DIR
`

// runs all tests serially
func TestRunner(t *testing.T) {
	tester := SerialTests{Test: t}
	tester.TestInitAndFinalize()
	tester.TestRecordSuccessfulCreation()
	tester.TestRecordFailedCreation()
	tester.TestRecordRejectsBadStatus()
	tester.TestRecordsRespectTimeRange()
}

// This runs setup, runs all tests, and does breakdown.
func TestMain(m *testing.M) {
	setup()
	status := m.Run()
	breakdown()
	os.Exit(status)
}

// this function gets called at the beginning of a test session
func setup() {
	var err error
	TESTING_DIR, err = os.MkdirTemp(os.TempDir(), "hs-bulk-create-tests-")
	if err != nil {
		log.Panicf("Couldn't create testing directory: %s", err)
	}

	myConfig := strings.ReplaceAll(journalConfig, "TESTING_DIR", TESTING_DIR)
	err = config.Init([]byte(myConfig))
	if err != nil {
		log.Panicf("Couldn't initialize configuration: %s", err)
	}
}

// this function gets called after all tests have been run
func breakdown() {
	if IsOpen() {
		Finalize()
	}
	if TESTING_DIR != "" {
		os.RemoveAll(TESTING_DIR)
	}
}

// To run the tests serially, we attach them to a SerialTests type and
// have them run by a single test runner.
type SerialTests struct{ Test *testing.T }

func (t *SerialTests) TestInitAndFinalize() {
	assert := assert.New(t.Test)

	assert.False(IsOpen())
	err := Init()
	assert.Nil(err)
	assert.True(IsOpen())
	err = Finalize()
	assert.Nil(err)
	assert.False(IsOpen())
}

func (t *SerialTests) TestRecordSuccessfulCreation() {
	assert := assert.New(t.Test)

	assert.Nil(Init())
	start := time.Now().Add(-time.Minute)
	record := Record{
		Id:         uuid.New(),
		Title:      "Lake Survey 2020",
		ResourceId: "abc123",
		Status:     "success",
		StartTime:  start,
		StopTime:   time.Now(),
		NumFiles:   2,
	}
	assert.Nil(RecordCreation(record))

	records, err := Records(start.Add(-time.Hour), time.Now().Add(time.Hour))
	assert.Nil(err)
	assert.Len(records, 1)
	assert.Equal(record.Id, records[0].Id)
	assert.Equal("abc123", records[0].ResourceId)
	assert.Equal("success", records[0].Status)
	assert.Equal(2, records[0].NumFiles)
	assert.Nil(Finalize())
}

func (t *SerialTests) TestRecordFailedCreation() {
	assert := assert.New(t.Test)

	assert.Nil(Init())
	record := Record{
		Id:        uuid.New(),
		Title:     "Lake Survey 2021",
		Status:    "failed",
		Error:     "HydroShare API error (500)",
		StartTime: time.Now(),
		StopTime:  time.Now(),
	}
	assert.Nil(RecordCreation(record))

	records, err := Records(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	assert.Nil(err)
	found := false
	for _, r := range records {
		if r.Id == record.Id {
			found = true
			assert.Equal("failed", r.Status)
			assert.Equal("", r.ResourceId)
			assert.Contains(r.Error, "500")
		}
	}
	assert.True(found)
	assert.Nil(Finalize())
}

func (t *SerialTests) TestRecordRejectsBadStatus() {
	assert := assert.New(t.Test)

	assert.Nil(Init())
	err := RecordCreation(Record{Id: uuid.New(), Status: "maybe"})
	assert.NotNil(err)
	assert.IsType(&NewRecordError{}, err)
	assert.Nil(Finalize())
}

func (t *SerialTests) TestRecordsRespectTimeRange() {
	assert := assert.New(t.Test)

	assert.Nil(Init())
	old := Record{
		Id:        uuid.New(),
		Title:     "Ancient Survey",
		Status:    "success",
		StartTime: time.Now().Add(-48 * time.Hour),
		StopTime:  time.Now().Add(-48 * time.Hour),
	}
	assert.Nil(RecordCreation(old))

	records, err := Records(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	assert.Nil(err)
	for _, r := range records {
		assert.NotEqual(old.Id, r.Id)
	}
	assert.Nil(Finalize())
}
