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
	"os"
	"strings"

	"github.com/fernet/fernet-go"
)

// the environment variable holding the fernet key that credentials files
// are encrypted with
const authKeyVar = "HS_BULK_KEY"

// ReadAuthFile reads a credentials file holding a fernet token that wraps
// a tab-delimited "username<TAB>password" record, so non-interactive runs
// need no password prompt. The decryption key comes from HS_BULK_KEY.
func ReadAuthFile(path string) (username, password string, err error) {
	keys, err := fernet.DecodeKeys(os.Getenv(authKeyVar))
	if err != nil {
		return "", "", &BadAuthFileError{File: path,
			Message: "no valid fernet key in " + authKeyVar}
	}

	token, err := os.ReadFile(path)
	if err != nil {
		return "", "", &BadAuthFileError{File: path, Message: err.Error()}
	}

	// a negative TTL disables expiry checking
	plaintext := fernet.VerifyAndDecrypt([]byte(strings.TrimSpace(string(token))), -1, keys)
	if plaintext == nil {
		return "", "", &BadAuthFileError{File: path,
			Message: "token could not be verified with the provided key"}
	}

	record := strings.SplitN(string(plaintext), "\t", 2)
	if len(record) != 2 || record[0] == "" {
		return "", "", &BadAuthFileError{File: path,
			Message: "decrypted credentials are not a username/password record"}
	}
	return record[0], record[1], nil
}

// WriteAuthFile encrypts the given credentials with the key from
// HS_BULK_KEY and writes the resulting token to path, readable only by
// the current user.
func WriteAuthFile(path, username, password string) error {
	keys, err := fernet.DecodeKeys(os.Getenv(authKeyVar))
	if err != nil {
		return &BadAuthFileError{File: path,
			Message: "no valid fernet key in " + authKeyVar}
	}
	token, err := fernet.EncryptAndSign([]byte(username+"\t"+password), keys[0])
	if err != nil {
		return &BadAuthFileError{File: path, Message: err.Error()}
	}
	return os.WriteFile(path, token, 0600)
}
