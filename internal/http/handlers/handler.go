package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"todo_service/internal/logger"
	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// HandlerConfig holds configuration for handler
type HandlerConfig struct {
	RequestTimeout time.Duration
}

type Handler struct {
	Tasks   *service.TaskService
	timeout time.Duration
}

func NewHandler(tasks *service.TaskService) *Handler {
	return NewHandlerWithConfig(tasks, HandlerConfig{RequestTimeout: 10 * time.Second})
}

// NewHandlerWithConfig creates a handler with custom configuration
func NewHandlerWithConfig(tasks *service.TaskService, cfg HandlerConfig) *Handler {
	return &Handler{
		Tasks:   tasks,
		timeout: cfg.RequestTimeout,
	}
}

func (h *Handler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// storeFailure logs err and answers with a generic 500
func storeFailure(c *gin.Context, op string, err error) {
	logger.Error("task operation failed", "op", op, "path", c.Request.URL.Path, "error", err)
	message(c, http.StatusInternalServerError, "internal server error")
}

var errNotAnObject = errors.New("request body is not an object")

// bodyFields decodes the request body into loose fields so handlers can
// check JSON types themselves. Only JSON and urlencoded bodies are read.
// Form bodies yield strings, or string lists for repeated keys. Any other
// content type, or an empty body, yields no fields.
func bodyFields(c *gin.Context) (map[string]any, error) {
	fields := make(map[string]any)

	switch c.ContentType() {
	case binding.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		for k, v := range c.Request.PostForm {
			if len(v) == 1 {
				fields[k] = v[0]
				continue
			}
			list := make([]any, len(v))
			for i := range v {
				list[i] = v[i]
			}
			fields[k] = list
		}
		return fields, nil

	case binding.MIMEJSON:
		if err := c.ShouldBindJSON(&fields); err != nil {
			if errors.Is(err, io.EOF) {
				return fields, nil
			}
			return nil, err
		}
		if fields == nil {
			return nil, errNotAnObject
		}
		return fields, nil

	default:
		return fields, nil
	}
}
