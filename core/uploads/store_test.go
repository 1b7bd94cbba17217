package uploads

import (
	"bytes"
	"strings"
	"testing"
)

func TestSaveAndReadRecordingRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir(), "http://localhost:3000")
	if err != nil {
		t.Fatalf("expected store to initialize, got %v", err)
	}

	id, err := store.SaveRecording(bytes.NewReader([]byte("opus-bytes")))
	if err != nil {
		t.Fatalf("expected recording to save, got %v", err)
	}

	data, err := store.ReadRecording(id)
	if err != nil {
		t.Fatalf("expected recording to read back, got %v", err)
	}
	if string(data) != "opus-bytes" {
		t.Fatalf("expected recording bytes to round trip, got %q", data)
	}
}

func TestReadRecordingRejectsNonUUIDID(t *testing.T) {
	store, err := NewStore(t.TempDir(), "http://localhost:3000")
	if err != nil {
		t.Fatalf("expected store to initialize, got %v", err)
	}

	if _, err := store.ReadRecording("../../etc/passwd"); err == nil {
		t.Fatalf("expected traversal-shaped id to be rejected")
	}
}

func TestStoreAudioReturnsPublicURL(t *testing.T) {
	store, err := NewStore(t.TempDir(), "http://localhost:3000/")
	if err != nil {
		t.Fatalf("expected store to initialize, got %v", err)
	}

	url, err := store.StoreAudio("welcome.wav", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("expected audio to store, got %v", err)
	}
	if url != "http://localhost:3000/audio/welcome.wav" {
		t.Fatalf("expected public audio URL, got %q", url)
	}
}

func TestStoreAudioRejectsPathSeparators(t *testing.T) {
	store, err := NewStore(t.TempDir(), "http://localhost:3000")
	if err != nil {
		t.Fatalf("expected store to initialize, got %v", err)
	}

	if _, err := store.StoreAudio("../escape.wav", []byte{1}); err == nil ||
		!strings.Contains(err.Error(), "invalid audio file name") {
		t.Fatalf("expected invalid file name error, got %v", err)
	}
}
