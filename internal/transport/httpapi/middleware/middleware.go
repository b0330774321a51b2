package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/wzhuang/portfolio_watcher/utils"
)

// Logger mints a request ID, stores it in the request context and logs the
// request start/finish with its duration.
func Logger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()

			ctx, rqID := utils.CreateCtxWithRqID(r.Context())

			slog.Info(
				"start request",
				slog.String("rqID", rqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			defer func() {
				slog.Info(
					"request finished",
					slog.String("rqID", rqID),
					slog.String("request duration", fmt.Sprintf("%.2fs", time.Since(now).Seconds())),
				)
			}()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
