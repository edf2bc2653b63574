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

// This package is a thin typed client for the HydroShare REST API
// (https://www.hydroshare.org/hsapi/). The rest of the tool treats every
// operation here as an opaque remote call with a success/failure outcome.
package hydroshare

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hydroshare/hs-bulk-create/config"
)

// This type represents an authenticated session with a HydroShare server.
// It is a capability: every creation call reads it, nothing mutates it.
type Session struct {
	// host address, as given (no scheme)
	Host string

	username, password string
	client             http.Client
	baseURL            string
}

// info about a HydroShare user, used to probe that credentials are accepted
type UserInfo struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Id        int    `json:"id"`
}

// one entry in a resource's creator list, as the science metadata
// endpoint expects it
type Creator struct {
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// options for decompressing an uploaded zip file in place
type UnzipOptions struct {
	ZipWithRelPath    string `json:"zip_with_rel_path"`
	RemoveOriginalZip bool   `json:"remove_original_zip"`
}

// options for assigning an aggregation type to an uploaded file
type FileTypeOptions struct {
	FilePath   string `json:"file_path"`
	HsFileType string `json:"hs_file_type"`
}

// NewSession constructs an unprobed session for the given host. A host
// with no scheme is reached over HTTPS.
func NewSession(username, password, host string, verifyTLS bool) (*Session, error) {
	client, err := secureHttpClient(time.Duration(config.Service.Timeout)*time.Second,
		verifyTLS)
	if err != nil {
		return nil, err
	}
	baseURL := host
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	return &Session{
		Host:     host,
		username: username,
		password: password,
		client:   client,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Authenticate connects to the given HydroShare host with the given
// credentials, probing the user info endpoint to confirm they are
// accepted. The probe is attempted up to tries times before an AuthError
// is returned.
func Authenticate(username, password, host string, tries int, verifyTLS bool) (*Session, error) {
	session, err := NewSession(username, password, host, verifyTLS)
	if err != nil {
		return nil, err
	}
	for attempt := 1; attempt <= tries; attempt++ {
		_, err = session.UserInfo()
		if err == nil {
			fmt.Println("  Authorization Successful")
			return session, nil
		}
		slog.Debug("authentication probe failed", "attempt", attempt, "error", err.Error())
		fmt.Printf("  Authorization Failed - Attempt %d\n", attempt)
	}
	return nil, &AuthError{Username: username, Host: host, Attempts: tries}
}

// UserInfo fetches the record for the authenticated user. Its only job in
// this tool is confirming that the credentials work.
func (s *Session) UserInfo() (UserInfo, error) {
	var info UserInfo
	body, err := s.request(http.MethodGet, "hsapi/userInfo/", "", http.NoBody)
	if err != nil {
		return info, err
	}
	err = json.Unmarshal(body, &info)
	return info, err
}

// CreateResource creates a new resource with the given type, title,
// abstract, and keywords, returning its identifier.
func (s *Session) CreateResource(resourceType, title, abstract string,
	keywords []string) (string, error) {

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	writer.WriteField("resource_type", resourceType)
	writer.WriteField("title", title)
	writer.WriteField("abstract", abstract)
	for _, keyword := range keywords {
		writer.WriteField("keywords", keyword)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	body, err := s.request(http.MethodPost, "hsapi/resource/",
		writer.FormDataContentType(), &form)
	if err != nil {
		return "", err
	}

	var result struct {
		ResourceId string `json:"resource_id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	return result.ResourceId, nil
}

// SetPublic sets or clears the resource's public flag.
func (s *Session) SetPublic(id string, public bool) error {
	return s.setAccessRule(id, map[string]bool{"public": public})
}

// SetDiscoverable sets or clears the resource's discoverable flag.
func (s *Session) SetDiscoverable(id string, discoverable bool) error {
	return s.setAccessRule(id, map[string]bool{"discoverable": discoverable})
}

// SetShareable sets or clears the resource's shareable flag.
func (s *Session) SetShareable(id string, shareable bool) error {
	return s.setAccessRule(id, map[string]bool{"shareable": shareable})
}

func (s *Session) setAccessRule(id string, rule map[string]bool) error {
	payload, err := json.Marshal(rule)
	if err != nil {
		return err
	}
	_, err = s.request(http.MethodPut,
		fmt.Sprintf("hsapi/resource/%s/accessRules/", id),
		"application/json", bytes.NewReader(payload))
	return err
}

// SetCustomMetadata attaches arbitrary key/value metadata to the resource.
func (s *Session) SetCustomMetadata(id string, metadata map[string]string) error {
	payload, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	_, err = s.request(http.MethodPost,
		fmt.Sprintf("hsapi/resource/%s/scimeta/custom/", id),
		"application/json", bytes.NewReader(payload))
	return err
}

// SetCreators replaces the resource's creator list with the given authors
// in a single science metadata update.
func (s *Session) SetCreators(id string, creators []Creator) error {
	payload, err := json.Marshal(map[string][]Creator{"creators": creators})
	if err != nil {
		return err
	}
	_, err = s.request(http.MethodPut,
		fmt.Sprintf("hsapi/resource/%s/scimeta/elements/", id),
		"application/json", bytes.NewReader(payload))
	return err
}

// UploadFile uploads the local file at the given path into the resource.
func (s *Session) UploadFile(id, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err = io.Copy(part, file); err != nil {
		return err
	}
	if err = writer.Close(); err != nil {
		return err
	}

	_, err = s.request(http.MethodPost,
		fmt.Sprintf("hsapi/resource/%s/files/", id),
		writer.FormDataContentType(), &form)
	return err
}

// Unzip decompresses an uploaded zip file in place on the resource.
func (s *Session) Unzip(id string, options UnzipOptions) error {
	payload, err := json.Marshal(options)
	if err != nil {
		return err
	}
	_, err = s.request(http.MethodPost,
		fmt.Sprintf("hsapi/resource/%s/functions/unzip/", id),
		"application/json", bytes.NewReader(payload))
	return err
}

// SetFileType assigns an aggregation type to an uploaded file.
func (s *Session) SetFileType(id string, options FileTypeOptions) error {
	payload, err := json.Marshal(options)
	if err != nil {
		return err
	}
	_, err = s.request(http.MethodPost,
		fmt.Sprintf("hsapi/resource/%s/functions/set-file-type/", id),
		"application/json", bytes.NewReader(payload))
	return err
}

// DeleteResource deletes the resource with the given identifier. The CLI
// offers this for cleaning up partially-created resources.
func (s *Session) DeleteResource(id string) error {
	_, err := s.request(http.MethodDelete,
		fmt.Sprintf("hsapi/resource/%s/", id), "", http.NoBody)
	return err
}

// ResourceURL returns the resource's landing page address.
func (s *Session) ResourceURL(id string) string {
	return fmt.Sprintf("%s/resource/%s", s.Host, id)
}

// This helper issues a request against the API with the session's
// credentials, returning the response body on a 2xx status and an
// APIError otherwise.
func (s *Session) request(method, resource, contentType string,
	body io.Reader) ([]byte, error) {

	req, err := http.NewRequest(method, fmt.Sprintf("%s/%s", s.baseURL, resource), body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(s.username, s.password)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Resource:   resource,
			Message:    apiErrorMessage(responseBody),
		}
	}
	return responseBody, nil
}

// here's how HydroShare represents errors in responses to API calls
type apiErrorResponse struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// extracts a human-readable message from an error response body
func apiErrorMessage(body []byte) string {
	var result apiErrorResponse
	if err := json.Unmarshal(body, &result); err == nil {
		if result.Detail != "" {
			return result.Detail
		}
		if result.Error != "" {
			return result.Error
		}
	}
	message := strings.TrimSpace(string(body))
	if len(message) > 200 {
		message = message[:200]
	}
	return message
}
