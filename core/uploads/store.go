// Package uploads owns the on-disk audio files a show produces and
// consumes: recordings uploaded from the input surface, and synthesized
// speech published to display clients under the /audio URL prefix.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store keeps audio files in a single directory. Recordings are keyed
// by generated ids so a client-supplied id can never address a path
// outside the directory.
type Store struct {
	dir     string
	baseURL string
}

// NewStore creates the backing directory if needed. baseURL is the
// external prefix synthesized audio is served under, without a
// trailing slash.
func NewStore(dir string, baseURL string) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "show-audio")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}

	return &Store{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir returns the backing directory, for static file serving.
func (s *Store) Dir() string { return s.dir }

// SaveRecording persists an uploaded recording and returns its id.
func (s *Store) SaveRecording(r io.Reader) (string, error) {
	id := uuid.NewString()
	f, err := os.Create(filepath.Join(s.dir, "rec-"+id))
	if err != nil {
		return "", fmt.Errorf("failed to create recording file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write recording: %w", err)
	}

	return id, nil
}

// ReadRecording returns the raw bytes of a previously saved recording.
func (s *Store) ReadRecording(id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid recording id: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, "rec-"+id))
	if err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}

	return data, nil
}

// StoreAudio persists synthesized audio under the given file name and
// returns the public URL it is served from.
func (s *Store) StoreAudio(name string, data []byte) (string, error) {
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid audio file name: %q", name)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return s.baseURL + "/audio/" + name, nil
}
