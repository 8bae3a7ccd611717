package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/isNotOkay/universal-query-playground-api/dispatch"
	"github.com/isNotOkay/universal-query-playground-api/query"
	"github.com/isNotOkay/universal-query-playground-api/sheet"
	"github.com/isNotOkay/universal-query-playground-api/tabular"
)

func (self *Server) handleQuery(c *gin.Context) {
	req := &query.Request{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	start := time.Now()
	res, err := self.dispatcher.Execute(ctx, req)
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	self.metrics.observe(req.Engine, strconv.Itoa(status), time.Since(start))

	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if res.Warning != "" {
		self.log.Warn("query side effect failed", "warning", res.Warning)
	}
	c.JSON(http.StatusOK, res)
}

// statusFor maps engine errors onto HTTP statuses. Everything unrecognized is
// a 500; errors surface undecorated in the body either way.
func statusFor(err error) int {
	switch {
	case errors.Is(err, query.ErrUnsupportedEngine):
		return http.StatusBadRequest
	case errors.Is(err, tabular.ErrJoinKeyNotFound):
		return http.StatusBadRequest
	case errors.Is(err, sheet.ErrSheetNotFound),
		errors.Is(err, sheet.ErrWorkbookNotFound):
		return http.StatusNotFound
	case errors.Is(err, dispatch.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (self *Server) handleUpload(c *gin.Context) {
	if self.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no workbook path configured"})
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing form file \"file\""})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	if err := self.store.Overwrite(c.Request.Context(), f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	self.log.Info("workbook replaced", "filename", header.Filename, "size", header.Size)
	c.Status(http.StatusNoContent)
}

func (self *Server) handleSheets(c *gin.Context) {
	if self.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no workbook path configured"})
		return
	}
	names, err := self.store.Sheets(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheets": names})
}
