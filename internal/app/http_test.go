package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tasker/internal/app"
	"tasker/internal/backend/filestore"
	"tasker/internal/taskstore"
	"tasker/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestGetTasksEmpty(t *testing.T) {
	router := app.NewRouter(zerolog.Nop(), testutil.NewFakeService())

	rec := do(t, router, http.MethodGet, "/tasks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", rec.Body.String())
	}
}

func TestCreateTask(t *testing.T) {
	svc := testutil.NewFakeService()
	router := app.NewRouter(zerolog.Nop(), svc)

	rec := do(t, router, http.MethodPost, "/tasks", `{"description": "buy milk"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var got taskstore.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got.Description != "buy milk" || got.Done {
		t.Errorf("unexpected task: %+v", got)
	}

	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Description != "buy milk" {
		t.Errorf("task not stored: %+v", tasks)
	}
}

func TestCreateTaskInvalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"blank description", `{"description": "   "}`, "description required"},
		{"missing description", `{"done": true}`, "description required"},
		{"malformed json", `{"description":`, "invalid request body"},
		{"wrong type", `{"description": 5}`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			router := app.NewRouter(zerolog.Nop(), svc)

			rec := do(t, router, http.MethodPost, "/tasks", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := decodeError(t, rec); got != tt.wantErr {
				t.Errorf("error = %q, want %q", got, tt.wantErr)
			}
			if len(svc.Tasks()) != 0 {
				t.Errorf("task stored despite error: %+v", svc.Tasks())
			}
		})
	}
}

func TestCompleteTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("buy milk", "pay bills")
	router := app.NewRouter(zerolog.Nop(), svc)

	rec := do(t, router, http.MethodPut, "/tasks/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got taskstore.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got.Description != "pay bills" || !got.Done {
		t.Errorf("unexpected task: %+v", got)
	}
	if svc.Tasks()[0].Done {
		t.Error("index 0 changed")
	}
}

func TestDeleteTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("buy milk", "pay bills")
	router := app.NewRouter(zerolog.Nop(), svc)

	rec := do(t, router, http.MethodDelete, "/tasks/0", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got struct {
		Removed taskstore.Task `json:"removed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got.Removed.Description != "buy milk" {
		t.Errorf("removed = %+v", got.Removed)
	}

	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Description != "pay bills" {
		t.Errorf("unexpected tasks after delete: %+v", tasks)
	}
}

func TestIndexErrors(t *testing.T) {
	tests := []struct {
		method   string
		path     string
		wantCode int
		wantErr  string
	}{
		{http.MethodPut, "/tasks/5", http.StatusNotFound, "task not found"},
		{http.MethodPut, "/tasks/-1", http.StatusNotFound, "task not found"},
		{http.MethodDelete, "/tasks/1", http.StatusNotFound, "task not found"},
		{http.MethodPut, "/tasks/abc", http.StatusBadRequest, "invalid task index"},
		{http.MethodDelete, "/tasks/1.5", http.StatusBadRequest, "invalid task index"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			svc := testutil.NewFakeService()
			svc.Seed("only")
			router := app.NewRouter(zerolog.Nop(), svc)

			rec := do(t, router, tt.method, tt.path, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := decodeError(t, rec); got != tt.wantErr {
				t.Errorf("error = %q, want %q", got, tt.wantErr)
			}
			if tasks := svc.Tasks(); len(tasks) != 1 || tasks[0].Done {
				t.Errorf("store changed: %+v", tasks)
			}
		})
	}
}

func TestStoreFailureIs500(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = &taskstore.CorruptStoreError{Path: "tasks.json", Err: errors.New("parse: invalid character")}
	svc.AddTaskErr = errors.New("write task store: permission denied")
	router := app.NewRouter(zerolog.Nop(), svc)

	rec := do(t, router, http.MethodGet, "/tasks", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("GET status = %d, want 500", rec.Code)
	}
	// Internal details stay in the log.
	if strings.Contains(rec.Body.String(), "tasks.json") {
		t.Errorf("error body leaks store details: %s", rec.Body.String())
	}

	rec = do(t, router, http.MethodPost, "/tasks", `{"description": "x"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("POST status = %d, want 500", rec.Code)
	}
}

func TestCancelledRequestIsNotServerError(t *testing.T) {
	var logs bytes.Buffer
	svc := testutil.NewFakeService()
	svc.ListTasksErr = context.Canceled
	router := app.NewRouter(zerolog.New(&logs), svc)

	rec := do(t, router, http.MethodGet, "/tasks", "")
	if rec.Code != 499 {
		t.Errorf("status = %d, want 499", rec.Code)
	}
	if strings.Contains(logs.String(), `"level":"error"`) || strings.Contains(logs.String(), `"level":"warn"`) {
		t.Errorf("cancelled request logged as a failure: %s", logs.String())
	}
}

type panicService struct {
	*testutil.FakeService
}

func (panicService) ListTasks(ctx context.Context) ([]taskstore.Task, error) {
	panic("boom")
}

func TestRecovery(t *testing.T) {
	var logs bytes.Buffer
	router := app.NewRouter(zerolog.New(&logs), panicService{testutil.NewFakeService()})

	rec := do(t, router, http.MethodGet, "/tasks", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(logs.String(), "recovered from panic") {
		t.Errorf("panic not logged: %s", logs.String())
	}
}

func TestRequestID(t *testing.T) {
	var logs bytes.Buffer
	router := app.NewRouter(zerolog.New(&logs), testutil.NewFakeService())

	rec := do(t, router, http.MethodGet, "/tasks", "")
	generated := rec.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("X-Request-ID %q is not a UUID", generated)
	}
	if !strings.Contains(logs.String(), generated) {
		t.Errorf("access log missing request id:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), `"message":"handled request"`) {
		t.Errorf("access log missing:\n%s", logs.String())
	}

	own := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("X-Request-ID", own)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != own {
		t.Errorf("X-Request-ID = %q, want client's %q", got, own)
	}

	req = httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got == "not-a-uuid" {
		t.Error("invalid client request id was reused")
	}
}

func TestFileBackedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	svc, err := filestore.New(context.Background(), path)
	if err != nil {
		t.Fatalf("filestore.New: %v", err)
	}
	router := app.NewRouter(zerolog.Nop(), svc)

	for _, desc := range []string{"buy milk", "pay bills"} {
		rec := do(t, router, http.MethodPost, "/tasks", `{"description": "`+desc+`"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST %s: status %d", desc, rec.Code)
		}
	}
	if rec := do(t, router, http.MethodPut, "/tasks/0", ""); rec.Code != http.StatusOK {
		t.Fatalf("PUT: status %d", rec.Code)
	}
	if rec := do(t, router, http.MethodDelete, "/tasks/1", ""); rec.Code != http.StatusOK {
		t.Fatalf("DELETE: status %d", rec.Code)
	}

	store, err := taskstore.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tasks, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Description != "buy milk" || !tasks[0].Done {
		t.Errorf("unexpected persisted tasks: %+v", tasks)
	}
	if tasks[0].Created == nil {
		t.Error("created timestamp not stamped")
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	svc := testutil.NewFakeService()
	svc.Seed("buy milk")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Serve(ctx, listener, time.Second, zerolog.Nop(), app.NewRouter(zerolog.Nop(), svc))
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/tasks")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
