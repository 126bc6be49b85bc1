package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/metrics"
	"github.com/yigit/yatube/internal/pkg/cache"
)

// PageCacheConfig controls CachePage
type PageCacheConfig struct {
	TTL         time.Duration
	VaryOnQuery bool
}

type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCacheKey is the cache key of r as seen by viewerID (0 for anonymous)
func PageCacheKey(r *http.Request, viewerID int64, varyOnQuery bool) string {
	key := "page:" + r.URL.Path
	if varyOnQuery && r.URL.RawQuery != "" {
		key += "?" + r.URL.RawQuery
	}
	if viewerID == 0 {
		return key + ":anon"
	}
	return key + ":user:" + strconv.FormatInt(viewerID, 10)
}

// CachePage serves GET responses from store for cfg.TTL. Only 200 responses
// are stored and nothing is invalidated on writes; the page may be stale
// until the entry expires or the store is cleared.
func CachePage(store cache.Store, cfg PageCacheConfig, m *metrics.Metrics, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		route := c.FullPath()
		key := PageCacheKey(c.Request, CurrentIdentity(c).ID(), cfg.VaryOnQuery)

		raw, err := store.Get(ctx, key)
		switch {
		case err == nil:
			var page cachedPage
			if err := json.Unmarshal(raw, &page); err == nil {
				m.RecordCacheHit(ctx, route)
				c.Data(page.Status, page.ContentType, page.Body)
				c.Abort()
				return
			}
			logger.Warn().Str("key", key).Msg("Dropping undecodable cache entry")
		case !errors.Is(err, cache.ErrCacheMiss):
			logger.Warn().Err(err).Str("key", key).Msg("Page cache read failed")
		}
		m.RecordCacheMiss(ctx, route)

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}
		data, err := json.Marshal(cachedPage{
			Status:      http.StatusOK,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		})
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Failed to encode page for cache")
			return
		}
		if err := store.Set(ctx, key, data, cfg.TTL); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Page cache write failed")
		}
	}
}
