package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

// HTTPGetJSON sends a GET request, requires a 2xx status and decodes the
// JSON body into out.
func HTTPGetJSON(t testing.TB, url string, out any) {
	t.Helper()
	status, body := HTTPGet(t, url)
	if status < 200 || status >= 300 {
		t.Fatalf("unexpected status %d for GET %s: %s", status, url, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("decode response from %s: %v", url, err)
	}
}

// HTTPGet sends a GET request and returns the status code and body.
func HTTPGet(t testing.TB, url string) (int, []byte) {
	t.Helper()
	ctx := Context(t, 2*time.Second)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, body
}
