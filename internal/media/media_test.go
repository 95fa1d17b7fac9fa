package media

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func uploadRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if content != nil {
		part, err := writer.CreateFormFile(field, "foto.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.WriteField("nombre", "x"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestSaveUpload(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	name, ok, err := store.SaveUpload(uploadRequest(t, "imagen", pngHeader), "imagen", DirCanchas)
	if err != nil || !ok {
		t.Fatalf("save upload: ok=%v err=%v", ok, err)
	}
	if !strings.HasPrefix(name, "canchas/") || !strings.HasSuffix(name, ".png") {
		t.Fatalf("unexpected media name %q", name)
	}
	stored, err := os.ReadFile(filepath.Join(store.Root(), name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(stored, pngHeader) {
		t.Fatalf("stored content differs")
	}

	if err := store.Remove(name); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Root(), name)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file to be removed, got %v", err)
	}
}

func TestSaveUploadMissingFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, ok, err := store.SaveUpload(uploadRequest(t, "imagen", nil), "imagen", DirUsuarios)
	if err != nil || ok {
		t.Fatalf("expected no upload, got ok=%v err=%v", ok, err)
	}
}

func TestSaveUploadRejectsNonImage(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, _, err = store.SaveUpload(uploadRequest(t, "imagen", []byte("hola, no soy una imagen")), "imagen", DirCanchas)
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
}

func TestRemoveIgnoresDefaults(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, name := range []string{"", "canchas/default-cancha.jpg", "../etc/passwd"} {
		if err := store.Remove(name); err != nil {
			t.Fatalf("Remove(%q) = %v", name, err)
		}
	}
}
