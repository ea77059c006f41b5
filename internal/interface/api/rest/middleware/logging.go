package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-registry-api/internal/infrastructure/metrics"
)

const (
	maxLogBodySize = 1 << 12 // 4 KB

	redacted = "[REDACTED]"
)

// sensitiveKeys are masked in logged JSON bodies, case-insensitively.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"senha":         {},
	"token":         {},
	"authorization": {},
}

func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if c.Request != nil && c.Request.Body != nil {
			ct := c.GetHeader("Content-Type")
			if strings.HasPrefix(ct, "multipart/form-data") {
				body = "<multipart/form-data omitted>"
			} else {
				raw, err := io.ReadAll(c.Request.Body)
				_ = c.Request.Body.Close()
				c.Request.Body = io.NopCloser(bytes.NewReader(raw))
				if err == nil {
					body = MaskBody(raw)
				}
			}
		}

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues(metrics.AppRequests).Inc()
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", c.GetString(KeyRequestID)),
		)
	}
}

// MaskBody returns a JSON body with sensitive values replaced. Bodies that
// are not valid JSON are not logged at all, since a secret could sit
// anywhere in them.
func MaskBody(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	if len(raw) > maxLogBodySize {
		return "<body too large to log>"
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "<non-json body omitted>"
	}
	b, err := json.Marshal(mask(v))
	if err != nil {
		return "<body omitted>"
	}

	return string(b)
}

func mask(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
				t[k] = redacted
				continue
			}
			t[k] = mask(val)
		}
		return t
	case []any:
		for i := range t {
			t[i] = mask(t[i])
		}
		return t
	default:
		return v
	}
}
