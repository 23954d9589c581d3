package http

import (
	nethttp "net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// handleStatic serves images below StaticDir.
func (s *server) handleStatic(w nethttp.ResponseWriter, r *nethttp.Request) {
	if s.StaticDir == "" {
		httpError(w, nethttp.StatusNotFound, "not found")
		return
	}
	rel := filepath.FromSlash(chi.URLParam(r, "*"))
	ct, ok := imageTypes[strings.ToLower(filepath.Ext(rel))]
	if !ok {
		httpError(w, nethttp.StatusNotFound, "not found")
		return
	}
	full := filepath.Join(s.StaticDir, rel)
	if !isSubpath(s.StaticDir, full) {
		httpError(w, nethttp.StatusNotFound, "not found")
		return
	}
	f, err := os.Open(full)
	if err != nil {
		httpError(w, nethttp.StatusNotFound, "not found")
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		httpError(w, nethttp.StatusNotFound, "not found")
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=60")
	nethttp.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}

// isSubpath ensures child is within root, preventing path traversal.
func isSubpath(root, child string) bool {
	absRoot, _ := filepath.Abs(root)
	absChild, _ := filepath.Abs(child)
	rel, err := filepath.Rel(absRoot, absChild)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != ".."
}
