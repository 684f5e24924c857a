// Package swrcache is the shared query cache: stale-while-revalidate reads
// over file-backed JSON entries. One Cache is created per process and shared
// by every view that reads employee data.
package swrcache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const refreshTimeout = 30 * time.Second

// Policy is the cache's staleness configuration. It carries no behavior of
// its own; GetOrFetch interprets it.
type Policy struct {
	// FreshTTL is how long an entry is served without refetching.
	FreshTTL time.Duration
	// MaxStale is how long a stale entry may still be served while a
	// background refetch runs. Zero or negative means no limit.
	MaxStale time.Duration
}

// DefaultPolicy keeps list data fresh for a minute and serves stale data
// for up to an hour while revalidating.
func DefaultPolicy() Policy {
	return Policy{FreshTTL: time.Minute, MaxStale: time.Hour}
}

// Cache provides stale-while-revalidate caching with file-backed JSON storage.
type Cache struct {
	dir    string
	policy Policy

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New returns a cache rooted at dir with the default policy.
func New(dir string) *Cache {
	return NewWithPolicy(dir, DefaultPolicy())
}

// NewWithPolicy returns a cache rooted at dir with a custom policy.
func NewWithPolicy(dir string, policy Policy) *Cache {
	return &Cache{dir: dir, policy: policy, inflight: make(map[string]struct{})}
}

// Policy returns the cache's staleness configuration.
func (c *Cache) Policy() Policy {
	if c == nil {
		return Policy{}
	}
	return c.policy
}

// GetOrFetch returns cached data using stale-while-revalidate semantics.
// A nil cache always fetches.
func GetOrFetch[T any](c *Cache, ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c == nil || c.dir == "" {
		return fetch(ctx)
	}

	entry, ok, err := readEntry[T](c, key)
	if err != nil || !ok || entry.FetchedAt.IsZero() {
		return fetchAndStore(c, ctx, key, fetch)
	}

	age := time.Since(entry.FetchedAt)
	if age < 0 {
		return fetchAndStore(c, ctx, key, fetch)
	}

	if age <= c.policy.FreshTTL {
		return entry.Data, nil
	}

	if c.policy.MaxStale <= 0 || age <= c.policy.MaxStale {
		revalidate(c, key, fetch)
		return entry.Data, nil
	}

	return fetchAndStore(c, ctx, key, fetch)
}

// Invalidate removes a single cached entry.
func (c *Cache) Invalidate(key string) error {
	if c == nil || c.dir == "" {
		return nil
	}

	err := os.Remove(c.pathForKey(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// InvalidatePrefix removes cached entries with the given key prefix.
func (c *Cache) InvalidatePrefix(prefix string) error {
	if c == nil || c.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	sanitized := sanitizeKey(prefix)
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, sanitized) {
			if err := os.RemoveAll(filepath.Join(c.dir, name)); err != nil {
				return err
			}
		}
	}

	return nil
}

func fetchAndStore[T any](c *Cache, ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	data, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	_ = writeEntry(c, key, Entry[T]{Data: data, FetchedAt: time.Now()})
	return data, nil
}

// revalidate refetches key in the background. At most one refetch per key
// runs at a time.
func revalidate[T any](c *Cache, key string, fetch func(context.Context) (T, error)) {
	c.mu.Lock()
	if _, busy := c.inflight[key]; busy {
		c.mu.Unlock()
		return
	}
	c.inflight[key] = struct{}{}
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			delete(c.inflight, key)
			c.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		data, err := fetch(ctx)
		if err != nil {
			return
		}
		_ = writeEntry(c, key, Entry[T]{Data: data, FetchedAt: time.Now()})
	}()
}

func readEntry[T any](c *Cache, key string) (Entry[T], bool, error) {
	var zero Entry[T]
	path := c.pathForKey(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, false, nil
		}
		return zero, false, err
	}

	var entry Entry[T]
	if err := json.Unmarshal(data, &entry); err != nil {
		return zero, false, nil
	}

	return entry, true, nil
}

func writeEntry[T any](c *Cache, key string, entry Entry[T]) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, sanitizeKey(key)+".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}

	return os.Rename(name, c.pathForKey(key))
}

func (c *Cache) pathForKey(key string) string {
	return filepath.Join(c.dir, sanitizeKey(key)+".json")
}

// DefaultDir returns the per-user query cache directory.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "staffdesk", "queries")
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "cache"
	}

	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		ch := key[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' || ch == '_' {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}
