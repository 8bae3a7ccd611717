// Package server is the HTTP glue around the query dispatcher: request
// decoding, workbook upload, error-to-status mapping. No query logic lives
// here.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/isNotOkay/universal-query-playground-api/dispatch"
	"github.com/isNotOkay/universal-query-playground-api/sheet"
)

const queryTimeout = 30 * time.Second

type Server struct {
	dispatcher *dispatch.Dispatcher
	store      *sheet.XlsxStore // nil when no workbook is configured
	log        *slog.Logger
	router     *gin.Engine
	metrics    *metrics
}

func New(d *dispatch.Dispatcher, store *sheet.XlsxStore, log *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	self := &Server{
		dispatcher: d,
		store:      store,
		log:        log,
		router:     gin.New(),
		metrics:    newMetrics(),
	}

	self.router.Use(self.requestLog(), gin.Recovery())

	api := self.router.Group("/api")
	api.POST("/query", self.handleQuery)
	api.POST("/upload", self.handleUpload)
	api.GET("/sheets", self.handleSheets)

	self.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	self.router.GET("/metrics", gin.WrapH(self.metrics.handler()))

	return self
}

func (self *Server) Handler() http.Handler { return self.router }

// requestLog tags every request with an id and logs it on completion.
func (self *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.NewString()
		c.Set("request_id", reqID)
		c.Next()
		self.log.Info("http request",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
