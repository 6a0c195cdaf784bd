package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/neuralchat/backend/internal/model/chat"
)

// FileStore keeps the snapshot as one JSON document on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a FileStore writing to the given path. The
// parent directory is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. A missing file is a fresh install and a
// corrupt file is treated the same way; neither is fatal.
func (f *FileStore) Load() chat.Collection {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[store] reading snapshot %s failed: %v", f.path, err)
		}
		return chat.Collection{}
	}

	var sessions chat.Collection
	if err := json.Unmarshal(data, &sessions); err != nil {
		log.Printf("[store] snapshot %s is unparseable, starting empty: %v", f.path, err)
		return chat.Collection{}
	}
	return sessions
}

// Save overwrites the snapshot with the full collection. The write
// goes through a temp file and rename so a crash mid-write cannot
// leave a truncated document behind.
func (f *FileStore) Save(sessions chat.Collection) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "chats-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
