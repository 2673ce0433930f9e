package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/calllog-sim/calllog-sim/sim"
	"github.com/calllog-sim/calllog-sim/sim/report"
	"github.com/calllog-sim/calllog-sim/sim/scenario"
)

const headerRequestID = "X-Request-Id"

// callLogRequest is a scenario in JSON plus an optional free-text phone list.
type callLogRequest struct {
	scenario.Scenario
	Phones string `json:"phones,omitempty"`
}

type callLogResponse struct {
	Seed        int64            `json:"seed"`
	Summary     sim.Summary      `json:"summary"`
	Truncations truncationReport `json:"truncations"`
	Records     []sim.CallEvent  `json:"records"`
}

type truncationReport struct {
	Groups          int `json:"groups"`
	DroppedCalls    int `json:"dropped_calls"`
	DroppedAnswered int `json:"dropped_answered"`
}

// handlers serves call logs over HTTP. Each request builds its own RNG and
// renderer, so handlers share no mutable state.
type handlers struct {
	maxRecords int // 0 = unlimited
}

// newRouter wires the service routes.
func newRouter(maxRecords int) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logrus.StandardLogger()))

	h := handlers{maxRecords: maxRecords}
	r.GET("/healthz", h.health)
	v1 := r.Group("/v1")
	v1.POST("/call-logs", h.callLogs)
	v1.POST("/call-logs/report", h.report)
	return r
}

// requestLogger injects a request id and logs one line per request.
func requestLogger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(headerRequestID, rid)

		entry := l.WithField("request_id", rid)
		c.Set("logger", entry)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := logrus.Fields{
			"method":      c.Request.Method,
			"path":        path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(time.Since(start).Milliseconds()),
		}
		if len(c.Errors) > 0 {
			entry.WithFields(fields).WithField("errors", c.Errors.String()).Error("request")
			return
		}
		entry.WithFields(fields).Info("request")
	}
}

// loggerFrom returns the request-scoped logger.
func loggerFrom(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get("logger"); ok {
		if e, ok := v.(*logrus.Entry); ok && e != nil {
			return e
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func (h handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h handlers) callLogs(c *gin.Context) {
	_, g, ok := h.generate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, callLogResponse{
		Seed:    int64(g.Key),
		Summary: g.Summary,
		Truncations: truncationReport{
			Groups:          g.Trace.TruncatedGroups,
			DroppedCalls:    g.Trace.DroppedCalls,
			DroppedAnswered: g.Trace.DroppedAnswered,
		},
		Records: nonNilEvents(g.Events),
	})
}

func (h handlers) report(c *gin.Context) {
	s, g, ok := h.generate(c)
	if !ok {
		return
	}
	doc, err := renderScenario(s, g.Events)
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "report rendering failed"})
		return
	}
	loggerFrom(c).WithFields(logrus.Fields{
		"document_id": doc.ID,
		"pages":       doc.Pages,
		"records":     doc.DataRows,
	}).Debug("rendered report")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.ResolveFileName(s.Report.FileName)))
	c.Header("X-Record-Count", strconv.Itoa(g.Summary.Records))
	c.Header("X-Day-Count", strconv.Itoa(g.Summary.Days))
	c.Header("X-Seed", strconv.FormatInt(int64(g.Key), 10))
	c.Data(http.StatusOK, report.MIMEType, doc.Bytes)
}

// generate binds, validates and size-checks the request, then generates the
// call log. On failure the response has already been written.
func (h handlers) generate(c *gin.Context) (*scenario.Scenario, *generation, bool) {
	req := callLogRequest{Scenario: *scenario.Default()}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return nil, nil, false
	}
	s := &req.Scenario
	if req.Phones != "" {
		s.PhoneLines = append(s.PhoneLines, sim.ParsePhoneLines(req.Phones)...)
	}
	if s.Report.FileName == stdoutPath {
		s.Report.FileName = report.DefaultFileName
	}

	if err := s.Validate(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	params, err := s.Params()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	if h.maxRecords > 0 && params.MaxRecords() > h.maxRecords {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("request may produce %d records; limit is %d", params.MaxRecords(), h.maxRecords),
		})
		return nil, nil, false
	}

	g, err := generateFromScenario(s)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, sim.ErrInvalidParams) {
			status = http.StatusBadRequest
		}
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	return s, g, true
}

func nonNilEvents(events []sim.CallEvent) []sim.CallEvent {
	if events == nil {
		return []sim.CallEvent{}
	}
	return events
}
