package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// zapでリクエストログを出すEcho middleware。
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			err := next(c)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
			}

			if err != nil {
				log.Error("handler error", append(fields, zap.Error(err))...)
				return err
			}

			switch {
			case res.Status >= http.StatusInternalServerError:
				log.Error("server error", fields...)
			case res.Status >= http.StatusBadRequest:
				log.Warn("client error", fields...)
			default:
				log.Info("request", fields...)
			}

			return nil
		}
	}
}
