// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotent replay for activity turns. A client that
// retries a turn with the same Idempotency-Key gets the stored response
// instead of advancing a quiz or conversation a second time. Keys are
// scoped by session and route, so the same key may be reused elsewhere.
//
// Only 2xx responses are recorded. Requests without a key, or whose session
// cannot be identified, pass through untouched apart from key validation.
package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the canonical request header that clients use to
// convey an idempotency key for activity turns.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplay marks a response served from the replay store.
const HeaderIdempotentReplay = "Idempotent-Replay"

// Context keys used internally to stash idempotency state.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

// ErrReplayNotFound is returned by a ReplayStore lookup that found nothing.
var ErrReplayNotFound = errors.New("replay not found")

// Replay is a stored response.
type Replay struct {
	Status int
	Body   []byte
}

// ReplayStore persists finished responses. Lookup returns ErrReplayNotFound
// when no live record exists; TTL is the store's concern.
type ReplayStore interface {
	Lookup(ctx context.Context, sessionID, route, key string, now time.Time) (*Replay, error)
	Save(ctx context.Context, sessionID, route, key string, status int, body []byte) error
}

// GetIdempotencyKey returns the validated idempotency key stored in the Gin
// context by Idempotency. The second return value indicates presence.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the response was served from the replay store.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures header validation.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, ^[A-Za-z0-9._~\-:]+$ is used.
	Pattern *regexp.Regexp
}

// Idempotency validates the Idempotency-Key header and replays or records
// the response through store.
//
// Behavior:
//   - No header: no-op.
//   - Invalid header: 400 with code "bad_idempotency_key".
//   - Stored response found: written as-is with Idempotent-Replay: true and
//     the chain aborted; rate limiting is bypassed.
//   - Otherwise the handler runs and a 2xx response is saved. Save errors
//     are logged and never change the response.
//
// Requests sharing (session, route, key) are serialized from lookup to
// save, so a retry that arrives while the first attempt is still running
// waits for it and replays its response.
func Idempotency(opts IdempotencyOptions, store ReplayStore) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}
	inflight := NewKeyLocks()

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
			})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		sid := SessionFrom(c)
		if store == nil || sid == "" {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := c.Request.Context()

		unlock := inflight.Lock(sid + "\x00" + route + "\x00" + key)
		defer unlock()

		rec, err := store.Lookup(ctx, sid, route, key, time.Now().UTC())
		switch {
		case err == nil && rec != nil:
			c.Set(ctxKeyIdemReplay, true)
			c.Set(ctxKeyRateBypass, true)
			idemReplays.WithLabelValues(route).Inc()
			c.Header(HeaderIdempotentReplay, "true")
			c.Data(rec.Status, "application/json; charset=utf-8", rec.Body)
			c.Abort()
			return
		case err != nil && !errors.Is(err, ErrReplayNotFound):
			LoggerFrom(c).Warn().Err(err).Str("route", route).Msg("idempotency lookup failed")
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Next()

		status := cw.Status()
		if status < 200 || status >= 300 || cw.buf.Len() == 0 {
			return
		}
		if err := store.Save(ctx, sid, route, key, status, cw.buf.Bytes()); err != nil {
			LoggerFrom(c).Warn().Err(err).Str("route", route).Msg("idempotency save failed")
		}
	}
}

// captureWriter tees the response body into buf.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
