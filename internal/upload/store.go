package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoredFile describes an accepted upload: the generated on-disk name and
// the sanitized original name kept for display and download.
type StoredFile struct {
	StorageName  string
	OriginalName string
}

// Store writes uploaded documents into a fixed directory. File names on disk
// are generated tokens plus the original extension, so the original name can
// never collide with existing files or escape the directory.
type Store struct {
	dir     string
	allowed map[string]bool
}

// New creates an upload store rooted at dir, accepting the given extensions
// (lowercase, without the dot). The directory is created if absent.
func New(dir string, extensions ...string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	return &Store{dir: dir, allowed: allowed}, nil
}

// Accepts reports whether a file with the given name would be stored
func (s *Store) Accepts(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return ext != "" && s.allowed[ext]
}

// Save persists one uploaded file. A nil header or a disallowed extension
// returns (nil, nil): "no file" is a valid outcome, not an error.
func (s *Store) Save(fh *multipart.FileHeader) (*StoredFile, error) {
	if fh == nil || fh.Filename == "" || !s.Accepts(fh.Filename) {
		return nil, nil
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	storageName := uuid.New().String() + ext

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, storageName))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	return &StoredFile{
		StorageName:  storageName,
		OriginalName: SanitizeName(fh.Filename),
	}, nil
}

// Path returns the on-disk path for a stored name. Names containing path
// separators are rejected so a stored name from the database can never walk
// out of the upload directory.
func (s *Store) Path(storageName string) (string, bool) {
	if storageName == "" || filepath.Base(storageName) != storageName {
		return "", false
	}
	path := filepath.Join(s.dir, storageName)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// SanitizeName reduces an uploaded filename to a safe display name: the base
// name with anything outside a conservative character set replaced.
func SanitizeName(filename string) string {
	base := filename
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_' || r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), ". ")
	if name == "" {
		name = "document"
	}
	return name
}
