package offline

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
)

// Handler serves origin content through the cache. Requests other than GET
// go straight to the origin.
func (c *Cache) Handler() http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(c.origin)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			c.metrics.OfflineCache.WithLabelValues("bypass").Inc()
			proxy.ServeHTTP(w, r)
			return
		}

		// only the path and query of the request line count, an absolute-form
		// target must not pick the upstream host
		target := c.origin.ResolveReference(&url.URL{Path: r.URL.Path, RawQuery: r.URL.RawQuery}).String()

		res, err := c.Fetch(r.Context(), target)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotCacheable):
				proxy.ServeHTTP(w, r)
				return
			case errors.Is(err, ErrForeignHost):
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			c.logger.Warnw("offline fetch failed", "url", target, "error", err)
			http.Error(w, "origin unavailable", http.StatusBadGateway)
			return
		}

		for k, v := range res.Header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(res.Body)))
		if res.Cached {
			w.Header().Set("X-Offline-Cache", "hit")
		} else {
			w.Header().Set("X-Offline-Cache", "miss")
		}
		w.WriteHeader(res.Status)
		_, _ = w.Write(res.Body)
	})
}
