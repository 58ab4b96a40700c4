package stats

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// Cache is a key-value store whose entries expire after a fixed TTL.
type Cache interface {
	Get(key string) (value []byte, cached bool)
	Set(key string, value []byte)
}

type timeValue struct {
	t time.Time
	v []byte
}

type timed struct {
	cache   map[string]timeValue
	timeout time.Duration
	now     func() time.Time

	mu *sync.Mutex
}

// NewTimed returns an in-memory cache. An entry older than timeout is
// dropped on the next Get.
func NewTimed(timeout time.Duration) Cache {
	return &timed{
		cache:   make(map[string]timeValue),
		timeout: timeout,
		now:     time.Now,
		mu:      &sync.Mutex{},
	}
}

func (c *timed) Get(k string) (v []byte, cached bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tv, cached := c.cache[k]
	if !cached || c.now().Sub(tv.t) > c.timeout {
		delete(c.cache, k)
		return nil, false
	}
	return tv.v, true
}

func (c *timed) Set(k string, v []byte) {
	tv := timeValue{c.now(), append([]byte(nil), v...)}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[k] = tv
}

type fileEntry struct {
	Value    json.RawMessage `json:"value"`
	StoredAt time.Time       `json:"storedAt"`
}

type fileCache struct {
	fs      afero.Fs
	dir     string
	timeout time.Duration
	now     func() time.Time

	mu sync.Mutex
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// NewFileCache keeps one JSON file per key under dir, so cached values
// survive restarts. Values must be valid JSON.
func NewFileCache(fs afero.Fs, dir string, timeout time.Duration) (Cache, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache dir: %w", err)
	}
	return &fileCache{fs: fs, dir: dir, timeout: timeout, now: time.Now}, nil
}

func (c *fileCache) path(key string) string {
	return filepath.Join(c.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (c *fileCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := afero.ReadFile(c.fs, c.path(key))
	if err != nil {
		return nil, false
	}
	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		logs.WithError(err).WithField("key", key).Debug("discarding unreadable cache entry")
		_ = c.fs.Remove(c.path(key))
		return nil, false
	}
	if c.now().Sub(entry.StoredAt) > c.timeout {
		_ = c.fs.Remove(c.path(key))
		return nil, false
	}
	return []byte(entry.Value), true
}

func (c *fileCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(fileEntry{Value: value, StoredAt: c.now().UTC()})
	if err != nil {
		logs.WithError(err).WithField("key", key).Warn("cache value is not JSON, skipping")
		return
	}
	tmp := c.path(key) + ".tmp"
	if err := afero.WriteFile(c.fs, tmp, data, 0o644); err != nil {
		logs.WithError(err).WithField("key", key).Warn("write cache entry")
		return
	}
	if err := c.fs.Rename(tmp, c.path(key)); err != nil {
		logs.WithError(err).WithField("key", key).Warn("persist cache entry")
	}
}
