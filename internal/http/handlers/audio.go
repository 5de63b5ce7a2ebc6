package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"tuberelay/pkg/logging"
)

// AudioFileHandler serves published MP3 files from the local media
// directory, for deployments where PUBLIC_BASE_URL points back at this
// service rather than an object store.
type AudioFileHandler struct {
	dir    string
	logger *logging.Logger
}

// NewAudioFileHandler serves files from dir.
func NewAudioFileHandler(dir string, logger *logging.Logger) *AudioFileHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AudioFileHandler{dir: dir, logger: logger}
}

// ServeAudio handles GET /audio/{filename}.
func (h *AudioFileHandler) ServeAudio(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		http.Error(w, "Missing filename", http.StatusBadRequest)
		return
	}
	// Only bare names are served; anything path-like is rejected.
	if strings.ContainsAny(filename, `/\`) || filepath.Base(filename) != filename || strings.HasPrefix(filename, ".") {
		http.Error(w, "Invalid filename", http.StatusBadRequest)
		return
	}

	path := filepath.Join(h.dir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		h.logger.Warn("audio file not found", "filename", filename)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)
}
