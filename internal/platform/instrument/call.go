package instrument

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Call runs fn as the named call and logs its start, outcome and duration.
//
// Under a web request the request line is logged instead of the raw
// arguments. Errors are logged at ERROR and returned unchanged; a panic is
// logged and re-raised.
func Call[T any](ctx context.Context, log *slog.Logger, name string, args []any, fn func(context.Context) (T, error)) (T, error) {
	if log == nil {
		log = slog.Default()
	}
	req, inRequest := RequestFrom(ctx)
	if inRequest {
		log.DebugContext(ctx, "call started", "method", name, "request_id", req.ID, "request", req.Line())
	} else {
		log.DebugContext(ctx, "call started", "method", name, "args", FormatArgs(args))
	}

	start := time.Now()
	done := false
	defer func() {
		if done {
			return
		}
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "call panicked", "method", name,
				"elapsed_ms", time.Since(start).Milliseconds(), "error", fmt.Sprint(r))
			panic(r)
		}
	}()

	res, err := fn(ctx)
	done = true
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		log.ErrorContext(ctx, "call failed", "method", name, "elapsed_ms", elapsed, "error", err)
		return res, err
	}
	if inRequest {
		log.DebugContext(ctx, "call finished", "method", name, "elapsed_ms", elapsed)
	} else {
		log.DebugContext(ctx, "call finished", "method", name, "elapsed_ms", elapsed, "result", FormatArg(res))
	}
	return res, nil
}

// Exec is Call for operations without a result.
func Exec(ctx context.Context, log *slog.Logger, name string, args []any, fn func(context.Context) error) error {
	_, err := Call(ctx, log, name, args, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
