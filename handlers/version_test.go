package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
)

func TestGetVersion(t *testing.T) {
	h := NewVersionHandler()
	rec := httptest.NewRecorder()
	h.GetVersion(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp VersionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Version == "" {
		t.Error("version is empty")
	}
	if resp.Version != BuildVersion() {
		t.Errorf("version = %q, want %q", resp.Version, BuildVersion())
	}
	if resp.GoVersion != runtime.Version() {
		t.Errorf("goVersion = %q", resp.GoVersion)
	}
}
