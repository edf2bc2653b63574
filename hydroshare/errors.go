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

package hydroshare

import (
	"fmt"
)

// indicates that authentication was rejected after the attempt budget was
// exhausted; fatal, nothing is created
type AuthError struct {
	Username string
	Host     string
	Attempts int
}

func (e AuthError) Error() string {
	return fmt.Sprintf("Authorization failed for user '%s' on %s after %d attempts",
		e.Username, e.Host, e.Attempts)
}

// indicates that the HydroShare API rejected a request
type APIError struct {
	StatusCode int
	Method     string
	Resource   string
	Message    string
}

func (e APIError) Error() string {
	if len(e.Message) > 0 {
		return fmt.Sprintf("HydroShare API error (%d) on %s %s: %s",
			e.StatusCode, e.Method, e.Resource, e.Message)
	}
	return fmt.Sprintf("HydroShare API error (%d) on %s %s",
		e.StatusCode, e.Method, e.Resource)
}

// This error type is returned when a redirect attempts to downgrade a
// connection from HTTPS to HTTP.
type DowngradedRedirectError struct {
	Endpoint string
}

func (e DowngradedRedirectError) Error() string {
	return fmt.Sprintf("Protocol downgraded from HTTPS to HTTP on redirect to %s", e.Endpoint)
}

// indicates that a credentials file is missing, unreadable, or couldn't be
// decrypted with the provided key
type BadAuthFileError struct {
	File    string
	Message string
}

func (e BadAuthFileError) Error() string {
	return fmt.Sprintf("Couldn't read credentials from '%s': %s", e.File, e.Message)
}
