package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// cacheFileExtension is the file extension used for cache entries.
const cacheFileExtension = ".json"

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// FileStore is a directory of JSON cache entries. It is safe for concurrent use
// within a process; across processes, writes are atomic renames.
type FileStore struct {
	directory  string
	enabled    bool
	ttlSeconds int

	mu sync.RWMutex
}

// Stats summarizes the store contents.
type Stats struct {
	Directory string        `json:"directory" yaml:"directory"`
	Entries   int           `json:"entries"   yaml:"entries"`
	Expired   int           `json:"expired"   yaml:"expired"`
	SizeBytes int64         `json:"size_bytes" yaml:"size_bytes"`
	TTL       time.Duration `json:"ttl"       yaml:"ttl"`
}

// NewFileStore creates a store in directory, creating it when needed. A
// disabled store, or one with a non-positive TTL, caches nothing and returns
// ErrCacheDisabled from every operation.
func NewFileStore(directory string, enabled bool, ttl time.Duration) (*FileStore, error) {
	ttlSeconds := int(ttl / time.Second)
	if !enabled || ttlSeconds <= 0 {
		return &FileStore{directory: directory}, nil
	}

	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileStore{
		directory:  directory,
		enabled:    true,
		ttlSeconds: ttlSeconds,
	}, nil
}

// Get returns the entry for key. It returns ErrCacheNotFound when absent and
// ErrCacheExpired (after removing the file) when stale.
func (s *FileStore) Get(key string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.RLock()
	entry, err := s.read(s.keyToFilePath(key))
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if entry.IsExpired() {
		_ = s.Delete(key)
		return nil, ErrCacheExpired
	}
	return entry, nil
}

// Set stores data under key with the store's TTL, replacing any entry.
func (s *FileStore) Set(key, path string, data json.RawMessage) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	entryData, err := json.MarshalIndent(NewEntry(key, path, data, s.ttlSeconds), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.keyToFilePath(key)
	tempPath := filePath + ".tmp"
	if writeErr := os.WriteFile(tempPath, entryData, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, filePath); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}
	return nil
}

// Delete removes the entry for key. Deleting a missing entry is not an error.
func (s *FileStore) Delete(key string) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.keyToFilePath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (s *FileStore) Clear() error {
	return s.sweep(func(string) bool { return true })
}

// CleanupExpired removes expired and unreadable entries.
func (s *FileStore) CleanupExpired() error {
	return s.sweep(func(path string) bool {
		entry, err := s.read(path)
		return err != nil || entry.IsExpired()
	})
}

// Stats reports the number and size of entries.
func (s *FileStore) Stats() (Stats, error) {
	st := Stats{Directory: s.directory, TTL: s.TTL()}
	if !s.enabled {
		return st, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	paths, err := s.entryPaths()
	if err != nil {
		return st, err
	}
	for _, p := range paths {
		info, statErr := os.Stat(p)
		if statErr != nil {
			continue
		}
		st.Entries++
		st.SizeBytes += info.Size()
		if entry, readErr := s.read(p); readErr != nil || entry.IsExpired() {
			st.Expired++
		}
	}
	return st, nil
}

// IsEnabled reports whether the store caches anything.
func (s *FileStore) IsEnabled() bool {
	return s.enabled
}

// Directory returns the cache directory.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the entry lifetime.
func (s *FileStore) TTL() time.Duration {
	return time.Duration(s.ttlSeconds) * time.Second
}

func (s *FileStore) sweep(remove func(path string) bool) error {
	if !s.enabled {
		return ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := s.entryPaths()
	if err != nil {
		return err
	}
	for _, p := range paths {
		if !remove(p) {
			continue
		}
		if removeErr := os.Remove(p); removeErr != nil && !os.IsNotExist(removeErr) {
			return fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(p), removeErr)
		}
	}
	return nil
}

func (s *FileStore) entryPaths() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == cacheFileExtension {
			paths = append(paths, filepath.Join(s.directory, e.Name()))
		}
	}
	return paths, nil
}

func (s *FileStore) read(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if err = json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return &entry, nil
}

// keyToFilePath maps a key to its file. Keys are hex digests, so no
// sanitizing is needed beyond dropping separators.
func (s *FileStore) keyToFilePath(key string) string {
	return filepath.Join(s.directory, filepath.Base(key)+cacheFileExtension)
}
