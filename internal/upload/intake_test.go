package upload

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// makeFileHeader builds a real multipart.FileHeader by round-tripping a
// request, so fh.Open() works in the accept path.
func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="anexo"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	return req.MultipartForm.File["anexo"][0]
}

// fakeHeader builds a FileHeader by hand for reject paths, where the file
// content is never opened.
func fakeHeader(filename, contentType string, size int64) *multipart.FileHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: filename,
		Header:   h,
		Size:     size,
	}
}

// TestIngest_TooLarge rejects files over the 5 MiB cap before any type check.
func TestIngest_TooLarge(t *testing.T) {
	in := New(t.TempDir(), 0)

	_, err := in.Ingest(fakeHeader("foto.png", "image/png", 6<<20))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Ingest(6 MiB png) = %v, want ErrTooLarge", err)
	}
}

// TestIngest_UnsupportedType rejects extensions and MIME types outside
// the allow-set.
func TestIngest_UnsupportedType(t *testing.T) {
	in := New(t.TempDir(), 0)

	cases := []struct {
		name        string
		filename    string
		contentType string
	}{
		{"executable", "virus.exe", "application/octet-stream"},
		{"no extension", "README", "text/plain"},
		{"good extension, bad declared type", "foto.png", "text/html"},
		{"bad extension, good declared type", "script.sh", "image/png"},
	}

	for _, tc := range cases {
		_, err := in.Ingest(fakeHeader(tc.filename, tc.contentType, 1024))
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("%s: Ingest() = %v, want ErrUnsupportedType", tc.name, err)
		}
	}
}

// TestIngest_AcceptsPNG stores a small png under a generated name that
// keeps the extension.
func TestIngest_AcceptsPNG(t *testing.T) {
	dir := t.TempDir()
	in := New(dir, 0)

	content := bytes.Repeat([]byte{0x89}, 1024)
	fh := makeFileHeader(t, "perfil.png", "image/png", content)

	att, err := in.Ingest(fh)
	if err != nil {
		t.Fatalf("Ingest(1 KiB png): %v", err)
	}

	if !strings.HasPrefix(att.Filename, "anexo-") || !strings.HasSuffix(att.Filename, ".png") {
		t.Errorf("stored name = %q, want anexo-*.png", att.Filename)
	}
	if att.OriginalName != "perfil.png" {
		t.Errorf("OriginalName = %q, want perfil.png", att.OriginalName)
	}
	if att.ByteSize != 1024 {
		t.Errorf("ByteSize = %d, want 1024", att.ByteSize)
	}

	data, err := os.ReadFile(filepath.Join(dir, att.Filename))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("stored content differs from upload")
	}
}

// TestIngest_UniqueNames verifies two ingests of the same file never collide.
func TestIngest_UniqueNames(t *testing.T) {
	in := New(t.TempDir(), 0)

	a, err := in.Ingest(makeFileHeader(t, "doc.pdf", "application/pdf", []byte("x")))
	if err != nil {
		t.Fatal(err)
	}
	b, err := in.Ingest(makeFileHeader(t, "doc.pdf", "application/pdf", []byte("x")))
	if err != nil {
		t.Fatal(err)
	}
	if a.Filename == b.Filename {
		t.Errorf("both ingests stored as %q", a.Filename)
	}
}

// TestRemove_Idempotent verifies removing twice (or never-stored names)
// stays silent.
func TestRemove_Idempotent(t *testing.T) {
	dir := t.TempDir()
	in := New(dir, 0)

	att, err := in.Ingest(makeFileHeader(t, "foto.gif", "image/gif", []byte("gif")))
	if err != nil {
		t.Fatal(err)
	}

	if err := in.Remove(att.Filename); err != nil {
		t.Fatalf("first Remove: %v", err)
	}
	if err := in.Remove(att.Filename); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if err := in.Remove(""); err != nil {
		t.Fatalf("Remove(empty): %v", err)
	}
}
