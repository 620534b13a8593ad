package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kiosk404/pluginadm/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	pages     *PageHandler
	profiling bool
}

func initRouter(g *gin.Engine, deps *routerDeps) {
	installMiddleware(g, deps)
	installController(g, deps)
}

func installMiddleware(g *gin.Engine, deps *routerDeps) {
	g.Use(gin.Recovery())
	g.Use(requestID())
	g.Use(accessLog())

	if deps.profiling {
		pprof.Register(g)
	}
}

func installController(g *gin.Engine, deps *routerDeps) {
	g.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	g.GET("/", deps.pages.Index)

	plugins := g.Group("/plugins")
	{
		plugins.GET("/*name", deps.pages.Get)
		plugins.POST("/*name", deps.pages.Post)
	}
}

// requestID tags every request with an id, reusing the caller's if given.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.DebugX("web", "%s %s %d %s id=%s", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start), c.GetString(requestIDHeader))
	}
}
