package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
)

func serveAudioRequest(t *testing.T, dir, filename string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewAudioFileHandler(dir, nil)

	req := httptest.NewRequest(http.MethodGet, "/audio/"+filename, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("filename", filename)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.ServeAudio(w, req)
	return w
}

func TestServeAudio(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "audio-abc.mp3"), []byte("mp3-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := serveAudioRequest(t, dir, "audio-abc.mp3")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("expected audio/mpeg, got %s", ct)
	}
	if w.Body.String() != "mp3-bytes" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestServeAudioNotFound(t *testing.T) {
	w := serveAudioRequest(t, t.TempDir(), "missing.mp3")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestServeAudioRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"..%2Fetc", ".hidden", `a\b.mp3`} {
		w := serveAudioRequest(t, dir, name)
		if w.Code != http.StatusBadRequest {
			t.Errorf("filename %q: expected 400, got %d", name, w.Code)
		}
	}
}
