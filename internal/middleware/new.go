// Package middleware carries the cross-cutting Gin handlers the HTTP server
// mounts in front of every route.
package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	pkgLog "parley/pkg/log"
	pkgResponse "parley/pkg/response"
)

type Middleware struct {
	l pkgLog.Logger
}

func New(l pkgLog.Logger) Middleware {
	return Middleware{l: l}
}

// RequestLogger writes one line per request: method, path, status, latency.
func (m Middleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		m.l.Infof(c.Request.Context(), "%s %s -> %d (%s)",
			c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// Recovery turns a handler panic into a 500 and logs it through our logger
// instead of gin's default writer.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				m.l.Errorf(c.Request.Context(), "panic recovered on %s %s: %v",
					c.Request.Method, c.Request.URL.Path, r)
				c.Abort()
				pkgResponse.InternalError(c, fmt.Errorf("%v", r))
			}
		}()
		c.Next()
	}
}
