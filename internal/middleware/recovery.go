package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Recovery catches panics in handlers. If the panic fires mid-stream the
// error body may land after already-flushed SSE frames; the client still
// sees the connection end without a [DONE] marker and can report it.
func Recovery() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				slog.Default().With(
					"request_id", GetRequestID(c),
					"method", string(c.Method()),
					"path", string(c.Path()),
					"panic", fmt.Sprintf("%v", err),
				).Error("panic recovered", "stack", string(debug.Stack()))

				c.JSON(consts.StatusInternalServerError, utils.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()

		c.Next(ctx)
	}
}
