// http.go
//
// A classifieds marketplace data service built on the jam-build data service stack
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-classifieds.
// jam-build-classifieds is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-classifieds is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-classifieds.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error envelope returned by the API
type ErrorBody struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

// Request describes one call through fiber's test harness
type Request struct {
	Method  string
	Path    string
	Body    any
	Token   string
	Headers map[string]string
}

// Do runs req against app and returns the response
func Do(t testing.TB, app *fiber.App, req Request) *http.Response {
	t.Helper()

	var body io.Reader
	if req.Body != nil {
		switch b := req.Body.(type) {
		case string:
			body = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("Failed to encode request body: %v", err)
			}
			body = bytes.NewBuffer(raw)
		}
	}

	r := httptest.NewRequest(req.Method, req.Path, body)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}

	resp, err := app.Test(r, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

// DecodeJSON reads the response body into v
func DecodeJSON(t testing.TB, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", string(raw), err)
	}
}

// ExpectError asserts the status and error code of resp and returns the envelope
func ExpectError(t testing.TB, resp *http.Response, status int, code string) ErrorBody {
	t.Helper()

	var body ErrorBody
	DecodeJSON(t, resp, &body)
	if resp.StatusCode != status {
		t.Fatalf("Expected status %d, got %d (%s)", status, resp.StatusCode, body.Message)
	}
	if body.Code != code {
		t.Fatalf("Expected code %s, got %s (%s)", code, body.Code, body.Message)
	}
	if body.Ok {
		t.Fatalf("Expected ok=false in error body")
	}
	return body
}

// ExpectStatus asserts the status of resp and decodes its body into v when v is not nil
func ExpectStatus(t testing.TB, resp *http.Response, status int, v any) {
	t.Helper()

	if resp.StatusCode != status {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Fatalf("Expected status %d, got %d: %s", status, resp.StatusCode, string(raw))
	}
	if v != nil {
		DecodeJSON(t, resp, v)
		return
	}
	resp.Body.Close()
}

