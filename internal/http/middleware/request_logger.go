package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"todo_service/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// RequestLogger writes one line per finished request:
//
//	METHOD path [body] [query] -> status
//
// The body is buffered and handed back to the handler unchanged.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		c.Next()

		status := c.Writer.Status()
		logger.Info(RequestLine(c.Request.Method, c.Request.URL.Path, c.ContentType(), body, c.Request.URL.Query(), status),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// RequestLine formats the log line. body is included only when it decodes
// to a non-empty object for its content type (JSON or urlencoded form),
// query only when it has keys.
func RequestLine(method, path, contentType string, body []byte, query url.Values, status int) string {
	parts := []string{method, path}

	if b := bodyObject(contentType, body); b != "" {
		parts = append(parts, b)
	}

	if b := flatJSON(query); b != "" {
		parts = append(parts, b)
	}

	parts = append(parts, "->", strconv.Itoa(status))
	return strings.Join(parts, " ")
}

func bodyObject(contentType string, body []byte) string {
	switch contentType {
	case binding.MIMEJSON:
		return compactObject(body)
	case binding.MIMEPOSTForm:
		form, err := url.ParseQuery(string(body))
		if err != nil {
			return ""
		}
		return flatJSON(form)
	}
	return ""
}

// flatJSON renders single values as strings and repeated keys as lists
func flatJSON(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	flat := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) == 1 {
			flat[k] = v[0]
		} else {
			flat[k] = v
		}
	}
	b, err := json.Marshal(flat)
	if err != nil {
		return ""
	}
	return string(b)
}

func compactObject(body []byte) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || len(obj) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return ""
	}
	return buf.String()
}
