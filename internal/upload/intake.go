// Package upload validates and stores question attachments.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("arquivo muito grande")
	ErrUnsupportedType = errors.New("tipo de arquivo não permitido")
)

// allowed mirrors the original filter: images, PDFs and Word documents.
// Both the extension and the declared content type must match.
var allowed = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"pdf":  true,
	"doc":  true,
	"docx": true,
}

// Attachment describes an accepted upload after it has been stored.
type Attachment struct {
	Filename     string // server-generated stored name
	OriginalName string
	ByteSize     int64
	MimeType     string
}

// Intake validates uploads and writes accepted files under Dir.
type Intake struct {
	Dir      string
	MaxBytes int64
}

// New creates an Intake. maxBytes <= 0 falls back to 5 MiB.
func New(dir string, maxBytes int64) *Intake {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &Intake{Dir: dir, MaxBytes: maxBytes}
}

// Ingest checks size and type and, when both pass, stores the file under a
// collision-proof generated name, preserving the original extension.
func (in *Intake) Ingest(fh *multipart.FileHeader) (*Attachment, error) {
	if fh.Size > in.MaxBytes {
		return nil, ErrTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if !allowed[ext] {
		return nil, ErrUnsupportedType
	}
	if !mimeAllowed(fh.Header.Get("Content-Type")) {
		return nil, ErrUnsupportedType
	}

	name := fmt.Sprintf("anexo-%d-%s.%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	if err := in.save(fh, name); err != nil {
		return nil, err
	}

	return &Attachment{
		Filename:     name,
		OriginalName: fh.Filename,
		ByteSize:     fh.Size,
		MimeType:     fh.Header.Get("Content-Type"),
	}, nil
}

// mimeAllowed checks the declared content type against the allow-set, the
// same way the original matched the multer mimetype string.
func mimeAllowed(ct string) bool {
	ct = strings.ToLower(ct)
	for t := range allowed {
		if strings.Contains(ct, t) {
			return true
		}
	}
	// .doc/.docx declare msword / officedocument types
	return strings.Contains(ct, "msword") ||
		strings.Contains(ct, "officedocument")
}

func (in *Intake) save(fh *multipart.FileHeader, name string) error {
	if err := os.MkdirAll(in.Dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(in.Dir, name))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Remove deletes a stored attachment. Missing files are ignored: removal
// after a question delete is best-effort.
func (in *Intake) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(in.Dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
