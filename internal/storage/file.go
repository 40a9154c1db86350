package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yourname/sleepcatalyst/internal"
)

// FileStore keeps the key-value state in memory and flushes it to a single
// JSON file. Writes are debounced by a save worker so a burst of mutations
// costs one disk write.
type FileStore struct {
	values       map[string]string
	mu           sync.RWMutex
	path         string
	saveChan     chan struct{}
	shutdownChan chan struct{}
	saveDelay    time.Duration
	logger       internal.Logger
}

func NewFileStore(path string, logger internal.Logger) (*FileStore, error) {
	s := &FileStore{
		values:       make(map[string]string),
		path:         path,
		saveChan:     make(chan struct{}, 1),
		shutdownChan: make(chan struct{}),
		saveDelay:    500 * time.Millisecond,
		logger:       logger,
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	s.load()

	go s.saveWorker()

	return s, nil
}

// load reads the state file. Absent or unreadable content starts the store
// empty; durability loss degrades to a fresh log, never a failed start.
func (s *FileStore) load() {
	file, err := os.Open(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warnf("storage: cannot open %s, starting empty: %v", s.path, err)
		}
		return
	}
	defer file.Close()

	var values map[string]string
	if err := json.NewDecoder(file).Decode(&values); err != nil {
		if !errors.Is(err, io.EOF) {
			s.logger.Warnf("storage: malformed state in %s, starting empty: %v", s.path, err)
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStore) save() error {
	s.mu.RLock()
	values := make(map[string]string, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.path, values)
}

// saveWorker batches save operations to avoid frequent disk writes.
func (s *FileStore) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.save(); err != nil {
				s.logger.Errorf("storage: error saving state: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	// Signal the save worker (non-blocking)
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
	return nil
}

// Close stops the save worker and flushes pending state synchronously.
func (s *FileStore) Close() error {
	close(s.shutdownChan)
	return s.save()
}

var _ Store = (*FileStore)(nil)
