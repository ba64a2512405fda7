package middleware

import (
	"net/http"
	"time"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AccessLog пишет строку лога на каждый запрос
// 5xx пишутся как Error, 4xx как Warn
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			format := "%s %s - status=%d duration=%s request_id=%s"
			args := []interface{}{r.Method, r.URL.Path, sw.status, time.Since(start), GetRequestID(r.Context())}
			switch {
			case sw.status >= http.StatusInternalServerError:
				logger.Error(format, args...)
			case sw.status >= http.StatusBadRequest:
				logger.Warn(format, args...)
			default:
				logger.Info(format, args...)
			}
		})
	}
}
