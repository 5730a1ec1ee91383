// Package instrument wraps request handlers and repository calls with
// structured execution logs, and records an audit entry for every
// successful endpoint call.
package instrument

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finance_tracker/internal/feature/audit/domain/entity"
	"finance_tracker/internal/platform/security"
)

// HeaderRequestID carries the correlation id of a request.
const HeaderRequestID = "X-Request-ID"

// AuditSink persists audit records.
type AuditSink interface {
	Save(ctx context.Context, log *entity.AuditLog) (int64, error)
}

// Interceptor instruments endpoint handlers.
type Interceptor struct {
	log  *slog.Logger
	sink AuditSink
	now  func() time.Time
}

// NewInterceptor creates an Interceptor. A nil sink disables auditing.
func NewInterceptor(log *slog.Logger, sink AuditSink) *Interceptor {
	if log == nil {
		log = slog.Default()
	}
	return &Interceptor{log: log, sink: sink, now: time.Now}
}

// Endpoint wraps h, registered under verb, as the endpoint called name
// (e.g. "TransactionHandler.GetByID").
//
// The wrapped handler behaves exactly like h. A call that completes without
// recorded errors and with a 2xx status produces one audit record; failed
// calls are logged and never audited. Panics propagate unchanged.
func (i *Interceptor) Endpoint(verb, name string, h gin.HandlerFunc) gin.HandlerFunc {
	action := ActionFor(verb)

	return func(c *gin.Context) {
		req := RequestInfo{
			ID:      requestID(c),
			Verb:    c.Request.Method,
			Path:    c.Request.URL.Path,
			Query:   MaskQuery(c.Request.URL.RawQuery),
			Headers: MaskHeaders(c.Request.Header),
		}
		ctx := WithRequest(c.Request.Context(), req)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, req.ID)

		i.log.DebugContext(ctx, "request started",
			"request_id", req.ID, "call", req.Line()+" -> "+name, "headers", req.Headers)

		start := i.now()
		done := false
		defer func() {
			if done {
				return
			}
			if r := recover(); r != nil {
				i.log.ErrorContext(ctx, "request panicked", "request_id", req.ID, "method", name,
					"elapsed_ms", i.now().Sub(start).Milliseconds(), "error", fmt.Sprint(r))
				panic(r)
			}
		}()

		h(c)
		done = true
		elapsed := i.now().Sub(start).Milliseconds()
		status := c.Writer.Status()

		if len(c.Errors) > 0 {
			i.log.ErrorContext(ctx, "request failed", "request_id", req.ID, "method", name,
				"status", status, "elapsed_ms", elapsed, "error", c.Errors.String())
			return
		}
		i.log.DebugContext(ctx, "request finished", "request_id", req.ID, "method", name,
			"status", status, "elapsed_ms", elapsed)

		if status >= 200 && status < 300 {
			i.audit(ctx, action, name)
		}
	}
}

// audit records a successful call. A failed write is logged and does not
// change the response.
func (i *Interceptor) audit(ctx context.Context, action, name string) {
	if i.sink == nil {
		return
	}
	actor, _ := security.CurrentActor(ctx)
	userID, email := actor.Identity()

	rec := &entity.AuditLog{
		Action:    action,
		UserID:    userID,
		Email:     email,
		Details:   fmt.Sprintf("%s called: %s", action, name),
		Timestamp: i.now(),
	}
	if _, err := i.sink.Save(context.WithoutCancel(ctx), rec); err != nil {
		i.log.ErrorContext(ctx, "audit write failed", "action", action, "method", name, "error", err)
	}
}

func requestID(c *gin.Context) string {
	if id := c.GetHeader(HeaderRequestID); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	return uuid.NewString()
}
