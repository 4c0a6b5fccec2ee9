// Package offline keeps a stale-while-revalidate copy of the storefront
// assets so the menu page still loads when its origin is unreachable.
package offline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/cockroachdb/pebble"
	"github.com/samia-cardapio/cardapio-api/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultName = "samia-cardapio-v20"

	maxBodyBytes   = 16 << 20
	refreshTimeout = 30 * time.Second
)

var (
	ErrNotCacheable = errors.New("request is not cacheable")
	ErrForeignHost  = errors.New("host is not the origin or a precached host")
)

// DefaultPrecache is the storefront shell, relative to the origin.
var DefaultPrecache = []string{
	"/",
	"index.html",
	"manifest.json",
	"https://raw.githubusercontent.com/WillianSoares93/cardapio_samia/refs/heads/main/logo.png",
	"https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css",
	"https://fonts.googleapis.com/css2?family=Poppins:wght@300;400;600;700&display=swap",
}

// headers that describe the connection, not the resource
var skipHeaders = map[string]bool{
	"Connection":        true,
	"Content-Length":    true,
	"Content-Encoding":  true,
	"Keep-Alive":        true,
	"Transfer-Encoding": true,
	"Set-Cookie":        true,
	"Date":              true,
}

type Config struct {
	Dir    string
	Name   string
	Origin string
	Client *http.Client
}

type Response struct {
	Status   int         `json:"status"`
	Header   http.Header `json:"header"`
	Body     []byte      `json:"body"`
	StoredAt time.Time   `json:"stored_at"`

	// Cached is set when the response came from the store.
	Cached bool `json:"-"`
}

// Cache stores responses under one generation name. Entries of other
// generations stay on disk until Activate.
type Cache struct {
	db      *pebble.DB
	name    string
	origin  *url.URL
	client  *http.Client
	metrics *metrics.Registry
	logger  *zap.SugaredLogger

	group singleflight.Group
	wg    sync.WaitGroup

	mu    sync.RWMutex
	hosts map[string]bool
}

func Open(cfg Config, metrics *metrics.Registry, logger *zap.SugaredLogger) (*Cache, error) {
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: refreshTimeout}
	}

	origin, err := url.Parse(cfg.Origin)
	if err != nil {
		return nil, fmt.Errorf("invalid origin %q: %w", cfg.Origin, err)
	}

	db, err := pebble.Open(filepath.Clean(cfg.Dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}

	return &Cache{
		db:      db,
		name:    cfg.Name,
		origin:  origin,
		client:  cfg.Client,
		metrics: metrics,
		logger:  logger,
		hosts:   map[string]bool{origin.Host: true},
	}, nil
}

// Close waits for background refreshes before closing the store.
func (c *Cache) Close() error {
	c.wg.Wait()
	return c.db.Close()
}

// Wait blocks until every background refresh started so far is done.
func (c *Cache) Wait() { c.wg.Wait() }

func (c *Cache) Name() string { return c.name }

// Resolve makes a precache entry absolute against the origin.
func (c *Cache) Resolve(raw string) (string, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}
	u := c.origin.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %s", ErrNotCacheable, u)
	}
	return u.String(), nil
}

// Install fetches every url and stores them in one batch. Nothing is written
// unless all of them succeed.
func (c *Cache) Install(ctx context.Context, urls []string) error {
	batch := c.db.NewBatch()
	defer batch.Close()

	for _, raw := range urls {
		target, err := c.Resolve(raw)
		if err != nil {
			return err
		}
		c.allowHost(target)

		res, err := c.fetch(ctx, target)
		if err != nil {
			return fmt.Errorf("failed to precache %s: %w", target, err)
		}
		if !ok(res.Status) {
			return fmt.Errorf("failed to precache %s: status %d", target, res.Status)
		}

		value, err := encode(res)
		if err != nil {
			return err
		}
		if err := batch.Set(c.key(target), value, nil); err != nil {
			return err
		}
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to write precache: %w", err)
	}

	c.logger.Infow("offline cache installed", "name", c.name, "entries", len(urls))
	return nil
}

// Activate deletes the entries of every other generation and returns how
// many were removed.
func (c *Cache) Activate() (int, error) {
	it, err := c.db.NewIter(nil)
	if err != nil {
		return 0, err
	}

	prefix := c.prefix()
	var stale [][]byte
	for it.First(); it.Valid(); it.Next() {
		if !bytes.HasPrefix(it.Key(), prefix) {
			stale = append(stale, append([]byte(nil), it.Key()...))
		}
	}
	if err := it.Close(); err != nil {
		return 0, err
	}

	if len(stale) == 0 {
		return 0, nil
	}

	batch := c.db.NewBatch()
	defer batch.Close()
	for _, k := range stale {
		if err := batch.Delete(k, nil); err != nil {
			return 0, err
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return 0, fmt.Errorf("failed to purge old entries: %w", err)
	}

	c.logger.Infow("offline cache activated", "name", c.name, "purged", len(stale))
	return len(stale), nil
}

// Fetch returns the stored copy of target and refreshes it in the
// background, or waits for the network when nothing is stored.
func (c *Cache) Fetch(ctx context.Context, target string) (*Response, error) {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		c.metrics.OfflineCache.WithLabelValues("bypass").Inc()
		return nil, fmt.Errorf("%w: %s", ErrNotCacheable, target)
	}
	if !c.hostAllowed(u.Host) {
		c.metrics.OfflineCache.WithLabelValues("bypass").Inc()
		return nil, fmt.Errorf("%w: %s", ErrForeignHost, u.Host)
	}

	cached, err := c.lookup(target)
	if err != nil {
		c.logger.Warnw("failed to read offline cache entry", "url", target, "error", err)
	}

	if cached != nil {
		c.metrics.OfflineCache.WithLabelValues("hit").Inc()
		c.refresh(target)
		return cached, nil
	}

	c.metrics.OfflineCache.WithLabelValues("miss").Inc()
	return c.revalidate(ctx, target)
}

// allowHost lets Fetch reach the host of a precache entry.
func (c *Cache) allowHost(target string) {
	u, err := url.Parse(target)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.hosts[u.Host] = true
	c.mu.Unlock()
}

func (c *Cache) hostAllowed(host string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hosts[host]
}

func (c *Cache) refresh(target string) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if _, err := c.revalidate(ctx, target); err != nil {
			c.metrics.OfflineCache.WithLabelValues("error").Inc()
			c.logger.Warnw("offline cache refresh failed", "url", target, "error", err)
		}
	}()
}

// revalidate fetches target and stores successful responses. Concurrent
// calls for one url share a single request, which outlives the caller that
// started it.
func (c *Cache) revalidate(ctx context.Context, target string) (*Response, error) {
	v, err, _ := c.group.Do(target, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()

		res, err := c.fetch(ctx, target)
		if err != nil {
			return nil, err
		}
		if ok(res.Status) {
			if err := c.store(target, res); err != nil {
				c.logger.Warnw("failed to store offline cache entry", "url", target, "error", err)
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Response), nil
}

func (c *Cache) fetch(ctx context.Context, target string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	for k, v := range resp.Header {
		if !skipHeaders[k] {
			header[k] = append([]string(nil), v...)
		}
	}

	return &Response{
		Status:   resp.StatusCode,
		Header:   header,
		Body:     body,
		StoredAt: time.Now(),
	}, nil
}

func (c *Cache) lookup(target string) (*Response, error) {
	v, closer, err := c.db.Get(c.key(target))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	defer closer.Close()

	res, err := decode(v)
	if err != nil {
		return nil, err
	}
	res.Cached = true
	return res, nil
}

func (c *Cache) store(target string, res *Response) error {
	value, err := encode(res)
	if err != nil {
		return err
	}
	return c.db.Set(c.key(target), value, pebble.NoSync)
}

func (c *Cache) prefix() []byte {
	return []byte(c.name + "\x00")
}

func (c *Cache) key(target string) []byte {
	return append(c.prefix(), target...)
}

func ok(status int) bool { return status >= 200 && status < 300 }

// entries are brotli-compressed JSON
func encode(res *Response) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		return nil, fmt.Errorf("encode entry: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress entry: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(value []byte) (*Response, error) {
	var res Response
	if err := json.NewDecoder(brotli.NewReader(bytes.NewReader(value))).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode entry: %w", err)
	}
	return &res, nil
}
