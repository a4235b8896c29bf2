package handlers

import (
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Version can be set at link time:
//
//	go build -ldflags "-X freeflix/handlers.Version=1.2.0" ./cmd/freeflix
var Version string

var (
	resolvedVersion string
	versionOnce     sync.Once
)

type VersionHandler struct{}

type VersionResponse struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
}

func NewVersionHandler() *VersionHandler {
	return &VersionHandler{}
}

// BuildVersion returns the link-time version, falling back to version.txt in
// the working directory and then to "dev".
func BuildVersion() string {
	versionOnce.Do(func() {
		if v := strings.TrimSpace(Version); v != "" {
			resolvedVersion = v
			return
		}
		if data, err := os.ReadFile("version.txt"); err == nil {
			if v := strings.TrimSpace(string(data)); v != "" {
				resolvedVersion = v
				return
			}
		}
		resolvedVersion = "dev"
	})
	return resolvedVersion
}

func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{
		Version:   BuildVersion(),
		GoVersion: runtime.Version(),
	})
}
