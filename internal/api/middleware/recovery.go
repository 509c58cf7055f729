package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/ev-charging/api/internal/api/types"
	"github.com/ev-charging/api/pkg/logger"
)

// Recovery turns panics into a 500 reply. The panic value is echoed in the
// error field unless hideDetails is set.
func Recovery(hideDetails bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.L().Error("panic recovered",
					zap.String("id", GetRequestID(r.Context())),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				types.WriteJSON(w, http.StatusInternalServerError, types.ErrorResponse{
					Message: types.MsgPanic,
					Error:   types.ErrorDetail(fmt.Errorf("%v", rec), hideDetails),
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
