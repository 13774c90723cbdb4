package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"todo_service/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidText      = "invalid 'text' expected string"
	msgInvalidCompleted = "invalid 'completed' expected boolean"
	msgInvalidNewOrder  = "Invalid 'newOrder' parameter. Expected an array."
	msgTodoNotFound     = "Todo not found"
	msgReordered        = "Tasks reordered successfully."
)

// ListTasks returns every task, or a single page of service.PageSize tasks
// when ?page is given.
func (h *Handler) ListTasks(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	raw, paged := c.GetQuery("page")
	if !paged {
		tasks, err := h.Tasks.List(ctx)
		if err != nil {
			storeFailure(c, "list", err)
			return
		}
		c.JSON(http.StatusOK, tasks)
		return
	}

	tasks, err := h.Tasks.ListPage(ctx, ParsePage(raw))
	if err != nil {
		storeFailure(c, "list_page", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ParsePage reads the leading integer of raw ("3", " 3", "3rd"). Anything
// without one, or below 1, means the first page. Values too large for an
// int saturate to math.MaxInt.
func ParsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if errors.Is(err, strconv.ErrRange) && raw[0] != '-' {
		return math.MaxInt
	}
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// CreateTask expects {text: string, dueDate?: any}
func (h *Handler) CreateTask(c *gin.Context) {
	fields, err := bodyFields(c)
	if err != nil {
		message(c, http.StatusBadRequest, msgInvalidText)
		return
	}
	text, ok := fields["text"].(string)
	if !ok {
		message(c, http.StatusBadRequest, msgInvalidText)
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	t, err := h.Tasks.Create(ctx, text, fields["dueDate"])
	if err != nil {
		storeFailure(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// ReorderTasks expects {newOrder: [id, ...]}. Each listed task gets its
// position as the new index.
func (h *Handler) ReorderTasks(c *gin.Context) {
	fields, err := bodyFields(c)
	if err != nil {
		message(c, http.StatusBadRequest, msgInvalidNewOrder)
		return
	}
	list, ok := fields["newOrder"].([]any)
	if !ok {
		message(c, http.StatusBadRequest, msgInvalidNewOrder)
		return
	}

	// non-string entries keep their slot but can never match a task
	ids := make([]string, len(list))
	for i, v := range list {
		if s, ok := v.(string); ok {
			ids[i] = s
		}
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Tasks.Reorder(ctx, ids); err != nil {
		storeFailure(c, "reorder", err)
		return
	}
	message(c, http.StatusOK, msgReordered)
}

func (h *Handler) GetTask(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	t, err := h.Tasks.Get(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrTaskNotFound) {
		message(c, http.StatusNotFound, msgTodoNotFound)
		return
	}
	if err != nil {
		storeFailure(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DueToday returns tasks whose dueDate is today's date as "YYYY-MM-DD"
func (h *Handler) DueToday(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	tasks, err := h.Tasks.DueToday(ctx)
	if err != nil {
		storeFailure(c, "due_today", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// UpdateTask expects {completed: bool}. There is no existence check.
func (h *Handler) UpdateTask(c *gin.Context) {
	fields, err := bodyFields(c)
	if err != nil {
		message(c, http.StatusBadRequest, msgInvalidCompleted)
		return
	}
	completed, ok := fields["completed"].(bool)
	if !ok {
		message(c, http.StatusBadRequest, msgInvalidCompleted)
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Tasks.SetCompleted(ctx, c.Param("id"), completed); err != nil {
		storeFailure(c, "update", err)
		return
	}
	c.Status(http.StatusOK)
}

// DeleteTask always answers 203, whether or not a task was removed
func (h *Handler) DeleteTask(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Tasks.Delete(ctx, c.Param("id")); err != nil {
		storeFailure(c, "delete", err)
		return
	}
	c.Status(http.StatusNonAuthoritativeInfo)
}
