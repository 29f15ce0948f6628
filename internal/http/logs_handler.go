package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/i18n"
	"github.com/milestonetrucks/voice-agent/internal/service"
)

const (
	defaultLogsLimit = 50
	maxLogsLimit     = 200
)

// LogsPage is a page of stored log entries.
type LogsPage struct {
	Entries []model.LogEntry `json:"entries"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Skip    int              `json:"skip"`
} // @name LogsPage

// LogsHandler reads back request and tool-call logs, mainly to replay what happened
// on a phone call.
type LogsHandler struct {
	logs service.LoggingService
}

// NewLogsHandler creates a LogsHandler.
func NewLogsHandler(logs service.LoggingService) *LogsHandler {
	return &LogsHandler{logs: logs}
}

// QueryLogs handles GET /api/logs requests.
//
// @Summary      Query logs
// @Description  Lists stored log entries, newest first. Filter by call_id to see every tool call made during one phone call.
// @Tags         Logs
// @Produce      json
// @Param        call_id    query string false "Phone call id"
// @Param        request_id query string false "Request id"
// @Param        tool       query string false "Tool name"
// @Param        level      query string false "info, warn or error"
// @Param        since      query string false "RFC 3339 start time"
// @Param        until      query string false "RFC 3339 end time"
// @Param        limit      query int    false "Page size (max 200)" default(50)
// @Param        skip       query int    false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=LogsPage}
// @Failure      400 {object} dto.ErrorResponse "Invalid query"
// @Failure      503 {object} dto.ErrorResponse "Log store unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/logs [get]
func (h *LogsHandler) QueryLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts, err := logQueryFrom(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	ctx := c.Request.Context()
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyInternalError, err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyInternalError, err)
		return
	}

	if entries == nil {
		entries = []model.LogEntry{}
	}
	builder.SuccessOK(LogsPage{Entries: entries, Total: total, Limit: opts.Limit, Skip: opts.Skip})
}

func logQueryFrom(c *gin.Context) (model.LogQueryOptions, error) {
	opts := model.LogQueryOptions{
		RequestID: c.Query("request_id"),
		CallID:    c.Query("call_id"),
		Tool:      c.Query("tool"),
		Level:     c.Query("level"),
		Limit:     defaultLogsLimit,
	}

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opts, &queryError{param: "limit"}
		}
		opts.Limit = min(n, maxLogsLimit)
	}
	if v := c.Query("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, &queryError{param: "skip"}
		}
		opts.Skip = n
	}
	for param, dst := range map[string]**time.Time{"since": &opts.StartTime, "until": &opts.EndTime} {
		v := c.Query(param)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return opts, &queryError{param: param}
		}
		*dst = &t
	}
	return opts, nil
}

type queryError struct {
	param string
}

func (e *queryError) Error() string {
	return "invalid query parameter: " + e.param
}
