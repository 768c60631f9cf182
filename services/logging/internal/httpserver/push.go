package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/merchstore/merch-store/pkg/logging"
	"github.com/merchstore/merch-store/services/logging/internal/service"
	"github.com/merchstore/merch-store/services/logging/internal/transport"
)

type LoggingHTTP struct {
	Svc *service.IngestService
}

// PushLog is the client-streaming ingestion call: one LogEvent JSON value
// per line of the request body, answered with a single aggregate status
// once the stream is exhausted.
func (h *LoggingHTTP) PushLog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "logging.push_log")

	dec := json.NewDecoder(c.Request().Body)
	next := func() (*transport.LogEvent, error) {
		var ev transport.LogEvent
		if err := dec.Decode(&ev); err != nil {
			return nil, err
		}
		return &ev, nil
	}

	count, err := h.Svc.Ingest(ctx, next)
	if err != nil {
		l.Warn("push_log_error", "status", 400, "reason", "malformed stream", "processed", count, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "malformed log stream")
	}

	l.Info("push_log_success", "count", count)
	return c.JSON(http.StatusOK, transport.PushLogStatus{Success: true, Count: count})
}
