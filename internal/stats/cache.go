package stats

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	defaultFreshTTL = 30 * time.Second
	defaultMaxStale = 10 * time.Minute
	refreshTimeout  = 15 * time.Second
)

// Cache provides stale-while-revalidate caching of payloads with
// file-backed JSON storage, one file per service id.
type Cache struct {
	dir      string
	freshTTL time.Duration
	maxStale time.Duration
	now      func() time.Time

	// pending tracks background revalidations started by GetOrFetch.
	pending sync.WaitGroup
}

// NewCache returns a cache rooted at dir with default TTLs.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir, freshTTL: defaultFreshTTL, maxStale: defaultMaxStale, now: time.Now}
}

// NewDefaultCache returns a cache rooted at DefaultDir with default TTLs.
func NewDefaultCache() *Cache {
	return NewCache(DefaultDir())
}

// CacheWithTTLs returns a cache rooted at dir with custom TTLs.
func CacheWithTTLs(dir string, freshTTL, maxStale time.Duration) *Cache {
	return &Cache{dir: dir, freshTTL: freshTTL, maxStale: maxStale, now: time.Now}
}

// GetOrFetch returns the cached payload for serviceID using
// stale-while-revalidate semantics: fresh entries are returned as is, stale
// ones are returned while a background fetch replaces them, and missing or
// expired ones are fetched synchronously.
func (c *Cache) GetOrFetch(ctx context.Context, serviceID string, fetch func(context.Context) (Payload, error)) (Payload, error) {
	if c == nil || c.dir == "" {
		return fetch(ctx)
	}

	entry, ok := c.Peek(serviceID)
	if !ok || entry.FetchedAt.IsZero() {
		return c.fetchAndStore(ctx, serviceID, fetch)
	}

	age := c.now().Sub(entry.FetchedAt)
	if age < 0 {
		return c.fetchAndStore(ctx, serviceID, fetch)
	}
	if age <= c.freshTTL {
		return entry.Data, nil
	}
	if c.maxStale <= 0 || age <= c.maxStale {
		c.revalidate(serviceID, fetch)
		return entry.Data, nil
	}
	return c.fetchAndStore(ctx, serviceID, fetch)
}

// Peek returns the cached entry for serviceID without fetching.
func (c *Cache) Peek(serviceID string) (Entry, bool) {
	if c == nil || c.dir == "" {
		return Entry{}, false
	}
	data, err := os.ReadFile(c.pathFor(serviceID))
	if err != nil {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false
	}
	return entry, true
}

// Put records p as the latest payload for its service.
func (c *Cache) Put(p Payload) error {
	if c == nil || c.dir == "" {
		return nil
	}
	fetchedAt := p.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = c.now()
	}
	return c.write(p.ServiceID, Entry{Data: p, FetchedAt: fetchedAt})
}

// Invalidate removes a single cached entry.
func (c *Cache) Invalidate(serviceID string) error {
	if c == nil || c.dir == "" {
		return nil
	}
	err := os.Remove(c.pathFor(serviceID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes all cached entries in the cache directory.
func (c *Cache) Clear() error {
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
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) fetchAndStore(ctx context.Context, serviceID string, fetch func(context.Context) (Payload, error)) (Payload, error) {
	p, err := fetch(ctx)
	if err != nil {
		return Payload{}, err
	}
	p.ServiceID = serviceID
	_ = c.Put(p)
	return p, nil
}

// Wait blocks until every background revalidation has finished. Short-lived
// callers use it so revalidated entries reach disk before the process exits.
func (c *Cache) Wait() {
	if c == nil {
		return
	}
	c.pending.Wait()
}

func (c *Cache) revalidate(serviceID string, fetch func(context.Context) (Payload, error)) {
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		p, err := fetch(ctx)
		if err != nil {
			return
		}
		p.ServiceID = serviceID
		_ = c.Put(p)
	}()
}

func (c *Cache) write(serviceID string, entry Entry) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, sanitizeKey(serviceID)+".tmp-*")
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
	return os.Rename(name, c.pathFor(serviceID))
}

func (c *Cache) pathFor(serviceID string) string {
	return filepath.Join(c.dir, sanitizeKey(serviceID)+".json")
}

// DefaultDir is the stats cache directory under the OS user cache dir.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "homegrid", "stats")
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "service"
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
