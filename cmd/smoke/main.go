package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"todo_service/internal/domain"
	"todo_service/internal/logger"
)

// Runs create → reorder → update → delete against a live server and exits
// non-zero on the first unexpected response.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := flag.String("url", "http://127.0.0.1:"+port, "server base url")
	flag.Parse()

	c := &client{base: *base, http: &http.Client{Timeout: 5 * time.Second}}

	var tasks [3]domain.Task
	for i := range tasks {
		c.do(http.MethodPost, "/", map[string]any{"text": fmt.Sprintf("smoke T%d", i+1)}, http.StatusCreated, &tasks[i])
		logger.Info("created", "id", tasks[i].ID, "index", tasks[i].Index)
	}
	if !(tasks[0].Index < tasks[1].Index && tasks[1].Index < tasks[2].Index) {
		logger.Fatal("indexes not increasing", "t1", tasks[0].Index, "t2", tasks[1].Index, "t3", tasks[2].Index)
	}

	c.do(http.MethodPost, "/reorder-tasks", map[string]any{"newOrder": []string{tasks[2].ID, tasks[0].ID}}, http.StatusOK, nil)

	var got domain.Task
	c.do(http.MethodGet, "/"+tasks[2].ID, nil, http.StatusOK, &got)
	if got.Index != 0 {
		logger.Fatal("T3 not moved to 0", "index", got.Index)
	}
	c.do(http.MethodGet, "/"+tasks[0].ID, nil, http.StatusOK, &got)
	if got.Index != 1 {
		logger.Fatal("T1 not moved to 1", "index", got.Index)
	}
	c.do(http.MethodGet, "/"+tasks[1].ID, nil, http.StatusOK, &got)
	if got.Index != tasks[1].Index {
		logger.Fatal("T2 index changed", "index", got.Index)
	}

	c.do(http.MethodPut, "/"+tasks[1].ID, map[string]any{"completed": true}, http.StatusOK, nil)
	c.do(http.MethodGet, "/"+tasks[1].ID, nil, http.StatusOK, &got)
	if !got.Completed {
		logger.Fatal("T2 not completed")
	}

	for _, t := range tasks {
		c.do(http.MethodDelete, "/"+t.ID, nil, http.StatusNonAuthoritativeInfo, nil)
		c.do(http.MethodGet, "/"+t.ID, nil, http.StatusNotFound, nil)
	}

	logger.Info("smoke test finished")
}

type client struct {
	base string
	http *http.Client
}

func (c *client) do(method, path string, body any, wantStatus int, out any) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			logger.Fatal("encode body", "error", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.base+path, rdr)
	if err != nil {
		logger.Fatal("build request", "error", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		logger.Fatal("request failed", "method", method, "path", path, "error", err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if res.StatusCode != wantStatus {
		logger.Fatal("unexpected status", "method", method, "path", path, "status", res.StatusCode, "want", wantStatus, "body", string(raw))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			logger.Fatal("decode response", "method", method, "path", path, "error", err)
		}
	}
}
