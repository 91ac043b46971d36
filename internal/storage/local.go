// Package storage keeps uploaded files on local disk and exposes them by
// relative URL under /uploads/.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the public path uploaded files are served under.
const URLPrefix = "/uploads"

// Subdirectories by file kind.
const (
	KindImage = "images"
	KindAudio = "audio"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".webm": true,
	".m4a":  true,
}

// Local stores files under a root directory on the local filesystem.
type Local struct {
	root string
}

// NewLocal creates the root directory (and per-kind subdirectories) if
// missing and returns the store.
func NewLocal(root string) (*Local, error) {
	for _, sub := range []string{KindImage, KindAudio} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create uploads dir: %w", err)
		}
	}
	return &Local{root: root}, nil
}

// Root returns the on-disk root, for the static file route.
func (l *Local) Root() string { return l.root }

// SaveImage stores an uploaded image and returns its relative URL.
// The original name only contributes the extension, which must be one of
// jpg/jpeg/png/gif.
func (l *Local) SaveImage(name string, r io.Reader, limit int64) (string, error) {
	return l.save(KindImage, name, imageExts, r, limit)
}

// SaveAudio stores an uploaded audio recording and returns its relative URL.
func (l *Local) SaveAudio(name string, r io.Reader, limit int64) (string, error) {
	return l.save(KindAudio, name, audioExts, r, limit)
}

func (l *Local) save(kind, name string, allowed map[string]bool, r io.Reader, limit int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowed[ext] {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}

	filename := uuid.NewString() + ext
	dst := filepath.Join(l.root, kind, filename)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}
	if n > limit {
		os.Remove(dst)
		return "", fmt.Errorf("file exceeds the %d byte limit", limit)
	}

	return path.Join(URLPrefix, kind, filename), nil
}

// Remove deletes a stored file by its relative URL. Unknown URLs and
// already-missing files are not errors, so cleanup is safe to repeat.
func (l *Local) Remove(relURL string) error {
	rel, ok := strings.CutPrefix(relURL, URLPrefix+"/")
	if !ok {
		return nil
	}
	// Reject anything trying to climb out of the root.
	rel = filepath.FromSlash(path.Clean(rel))
	if strings.HasPrefix(rel, "..") {
		return nil
	}

	err := os.Remove(filepath.Join(l.root, rel))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
