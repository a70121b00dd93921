package cache

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/leftysay/pkg/observability"
)

const (
	entryExt   = ".bin"
	tempPrefix = ".tmp-"
)

// FileStore implements a file-based render cache for CLI usage.
//
// Each entry is one file under a two-character subdirectory of dir. The
// file's modification time records when it was last used, so hits touch it
// and eviction removes the oldest files first. Entries are written to a
// uniquely named temp file and renamed into place.
type FileStore struct {
	dir      string
	maxBytes int64
	now      func() time.Time

	mu sync.Mutex
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithClock overrides the time source used for last-used timestamps.
func WithClock(now func() time.Time) FileStoreOption {
	return func(s *FileStore) { s.now = now }
}

// NewFileStore creates a file-based store in dir with a budget of maxBytes.
// The directory will be created if it doesn't exist. A non-positive budget
// uses DefaultMaxBytes.
func NewFileStore(dir string, maxBytes int64, opts ...FileStoreOption) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	s := &FileStore{dir: dir, maxBytes: maxBytes, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the cache directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get retrieves an entry and refreshes its last-used time.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	// A failed touch only weakens LRU ordering.
	_ = os.Chtimes(path, now, now)
	return data, true, nil
}

// Set stores an entry, evicting the least recently used entries first if
// the budget would be exceeded.
func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	size := int64(len(data))
	if size > s.maxBytes {
		return ErrTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	if err := s.makeRoom(ctx, path, size); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}

	now := s.now()
	_ = os.Chtimes(path, now, now)
	return nil
}

// Delete removes an entry.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Stats walks the cache directory and totals its entries.
func (s *FileStore) Stats(ctx context.Context) (Stats, error) {
	entries, err := s.entries()
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Backend: "file", Location: s.dir, Entries: len(entries), MaxBytes: s.maxBytes}
	for _, e := range entries {
		st.Bytes += e.size
		if st.Oldest.IsZero() || e.used.Before(st.Oldest) {
			st.Oldest = e.used
		}
	}
	return st, nil
}

// Clear removes every entry and leftover temp file.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirs, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, d := range dirs {
		if !d.IsDir() || len(d.Name()) != 2 {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.dir, d.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// makeRoom evicts oldest entries until size more bytes fit. The entry at
// keep is being replaced, so its current size does not count.
func (s *FileStore) makeRoom(ctx context.Context, keep string, size int64) error {
	entries, err := s.entries()
	if err != nil {
		return err
	}

	var total int64
	live := entries[:0]
	for _, e := range entries {
		if e.path == keep {
			continue
		}
		total += e.size
		live = append(live, e)
	}
	if total+size <= s.maxBytes {
		return nil
	}

	sort.Slice(live, func(i, j int) bool { return live[i].used.Before(live[j].used) })
	for _, e := range live {
		if total+size <= s.maxBytes {
			break
		}
		if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("evict %s: %w", e.path, err)
		}
		total -= e.size
		observability.Cache().OnCacheEvict(ctx, "file", e.size)
	}
	return nil
}

type fileEntry struct {
	path string
	size int64
	used time.Time
}

func (s *FileStore) entries() ([]fileEntry, error) {
	var out []fileEntry
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), entryExt) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			// Removed by a concurrent eviction.
			return nil
		}
		out = append(out, fileEntry{path: path, size: info.Size(), used: info.ModTime()})
		return nil
	})
	return out, err
}

// path converts a cache key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (s *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(s.dir, hash[:2], hash[2:]+entryExt)
}

// writeAtomic writes data next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), tempPrefix+uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
