// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements SessionScope, which identifies the client session a
// request belongs to. Activity endpoints carry session_id in their JSON
// body; the middleware peeks at it without consuming the body so logging,
// rate limiting and idempotent replay can be keyed by session.
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderSessionID lets clients name their session without a JSON body.
const HeaderSessionID = "X-Session-ID"

const (
	ctxKeySession = "sessionID"
	// maxSessionPeek caps how much of the body is buffered to find session_id.
	maxSessionPeek = 64 << 10
)

// SessionScope stores the request's session ID in the Gin context. The
// X-Session-ID header wins over the body field.
func SessionScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid := sessionFromRequest(c); sid != "" {
			c.Set(ctxKeySession, sid)
		}
		c.Next()
	}
}

// SessionFrom returns the session ID stored by SessionScope, or "".
func SessionFrom(c *gin.Context) string {
	v, ok := c.Get(ctxKeySession)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func sessionFromRequest(c *gin.Context) string {
	if h := strings.TrimSpace(c.GetHeader(HeaderSessionID)); h != "" {
		return h
	}
	r := c.Request
	if r == nil || r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
		return ""
	}
	if !strings.HasPrefix(c.ContentType(), "application/json") {
		return ""
	}

	head, err := io.ReadAll(io.LimitReader(r.Body, maxSessionPeek))
	// Put back what was read; the remainder, if any, is still in r.Body.
	r.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(head), r.Body), Closer: r.Body}
	if err != nil {
		return ""
	}

	var probe struct {
		SessionID string `json:"session_id"`
	}
	if json.Unmarshal(head, &probe) != nil {
		return ""
	}
	return strings.TrimSpace(probe.SessionID)
}

type readCloser struct {
	io.Reader
	io.Closer
}
