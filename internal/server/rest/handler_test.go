package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	"github.com/dmitrijs2005/gophtasks/internal/server/shared/db"
	"github.com/dmitrijs2005/gophtasks/internal/server/tasks"
	"github.com/dmitrijs2005/gophtasks/internal/server/users"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		EndpointAddr:          ":0",
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
		StorageBackend:        config.StorageMemory,
		GinMode:               gin.TestMode,
	}

	m := db.NewInMemoryRepositoryManager()
	us := users.NewService(m.Users(), cfg)
	ts := tasks.NewService(m.Tasks())

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s, err := NewServer(cfg, logger, us, ts)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return s.Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func wireError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &body)
	return body.Error
}

func registerAccount(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": password})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %q: status %d, body %s", email, w.Code, w.Body.String())
	}
	var resp authResponse
	decodeBody(t, w, &resp)
	if resp.Token == "" {
		t.Fatalf("register %q: empty token", email)
	}
	return resp.Token
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body struct {
		OK bool `json:"ok"`
	}
	decodeBody(t, w, &body)
	if !body.OK {
		t.Fatalf("expected ok=true, got %s", w.Body.String())
	}
}

func TestRegister(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{"email": "  Alice@Example.COM ", "password": "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var resp authResponse
	decodeBody(t, w, &resp)
	if resp.User.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", resp.User.Email)
	}
	if resp.User.ID == "" || resp.Token == "" {
		t.Fatalf("incomplete response: %+v", resp)
	}
}

func TestRegister_Validation(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"short password", gin.H{"email": "a@b.c", "password": "12345"}},
		{"empty email", gin.H{"email": "   ", "password": "secret1"}},
		{"missing fields", gin.H{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status %d, body %s", w.Code, w.Body.String())
			}
			if code := wireError(t, w); code != "invalid_input" {
				t.Fatalf("error code %q", code)
			}
		})
	}
}

func TestRegister_MalformedJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	if code := wireError(t, w); code != "invalid_input" {
		t.Fatalf("error code %q", code)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	registerAccount(t, router, "dup@example.com", "secret1")

	// same address with different case collides
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{"email": "DUP@example.com", "password": "another1"})
	if w.Code != http.StatusConflict {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if code := wireError(t, w); code != "email_exists" {
		t.Fatalf("error code %q", code)
	}
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)
	registerAccount(t, router, "bob@example.com", "secret1")

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{"email": " BOB@example.com ", "password": "secret1"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var resp authResponse
	decodeBody(t, w, &resp)
	if resp.Token == "" || resp.User.Email != "bob@example.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	router := newTestRouter(t)
	registerAccount(t, router, "bob@example.com", "secret1")

	// unknown email and wrong password are indistinguishable on the wire
	for _, body := range []gin.H{
		{"email": "nobody@example.com", "password": "secret1"},
		{"email": "bob@example.com", "password": "wrong-pass"},
	} {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", body)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("body %v: status %d", body, w.Code)
		}
		if code := wireError(t, w); code != "invalid_credentials" {
			t.Fatalf("body %v: error code %q", body, code)
		}
	}
}

func TestTasks_RequireToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/todos", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", w.Code)
	}
	if code := wireError(t, w); code != "unauthorized" {
		t.Fatalf("error code %q", code)
	}
}

func TestTasks_Lifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := registerAccount(t, router, "carol@example.com", "secret1")

	// empty list to start
	w := doJSON(t, router, http.MethodGet, "/api/todos", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	var list []tasks.Task
	decodeBody(t, w, &list)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}

	// create
	w = doJSON(t, router, http.MethodPost, "/api/todos", token, gin.H{"title": "  buy milk  "})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", w.Code, w.Body.String())
	}
	var created tasks.Task
	decodeBody(t, w, &created)
	if created.Title != "buy milk" || created.Completed {
		t.Fatalf("unexpected task: %+v", created)
	}

	// toggle done
	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/todos/%d", created.ID), token, gin.H{"completed": true})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: status %d, body %s", w.Code, w.Body.String())
	}
	var updated tasks.Task
	decodeBody(t, w, &updated)
	if !updated.Completed {
		t.Fatalf("expected completed=true: %+v", updated)
	}

	// delete
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/todos/%d", created.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status %d, body %s", w.Code, w.Body.String())
	}
	var deleted struct {
		Deleted bool  `json:"deleted"`
		ID      int64 `json:"id"`
	}
	decodeBody(t, w, &deleted)
	if !deleted.Deleted || deleted.ID != created.ID {
		t.Fatalf("unexpected delete response: %+v", deleted)
	}

	// gone
	w = doJSON(t, router, http.MethodGet, "/api/todos", token, nil)
	decodeBody(t, w, &list)
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", list)
	}
}

func TestCreateTask_EmptyTitle(t *testing.T) {
	router := newTestRouter(t)
	token := registerAccount(t, router, "carol@example.com", "secret1")

	for _, body := range []gin.H{{"title": "   "}, {}} {
		w := doJSON(t, router, http.MethodPost, "/api/todos", token, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %v: status %d", body, w.Code)
		}
		if code := wireError(t, w); code != "title_required" {
			t.Fatalf("body %v: error code %q", body, code)
		}
	}
}

func TestPatchTask_InvalidID(t *testing.T) {
	router := newTestRouter(t)
	token := registerAccount(t, router, "carol@example.com", "secret1")

	for _, id := range []string{"abc", "0", "-3", "1.5"} {
		w := doJSON(t, router, http.MethodPatch, "/api/todos/"+id, token, gin.H{"completed": true})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("id %q: status %d", id, w.Code)
		}
		if code := wireError(t, w); code != "invalid_id" {
			t.Fatalf("id %q: error code %q", id, code)
		}
	}
}

func TestPatchTask_MissingCompleted(t *testing.T) {
	router := newTestRouter(t)
	token := registerAccount(t, router, "carol@example.com", "secret1")

	w := doJSON(t, router, http.MethodPatch, "/api/todos/1", token, gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	if code := wireError(t, w); code != "invalid_input" {
		t.Fatalf("error code %q", code)
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	router := newTestRouter(t)
	token := registerAccount(t, router, "carol@example.com", "secret1")

	w := doJSON(t, router, http.MethodDelete, "/api/todos/42", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d", w.Code)
	}
	if code := wireError(t, w); code != "not_found" {
		t.Fatalf("error code %q", code)
	}
}

func TestTasks_OwnerIsolation(t *testing.T) {
	router := newTestRouter(t)
	alice := registerAccount(t, router, "alice@example.com", "secret1")
	mallory := registerAccount(t, router, "mallory@example.com", "secret1")

	w := doJSON(t, router, http.MethodPost, "/api/todos", alice, gin.H{"title": "private"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d", w.Code)
	}
	var created tasks.Task
	decodeBody(t, w, &created)

	// another account sees nothing
	w = doJSON(t, router, http.MethodGet, "/api/todos", mallory, nil)
	var list []tasks.Task
	decodeBody(t, w, &list)
	if len(list) != 0 {
		t.Fatalf("cross-account list leak: %+v", list)
	}

	// and cannot modify or delete even with the right id
	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/todos/%d", created.ID), mallory, gin.H{"completed": true})
	if w.Code != http.StatusNotFound {
		t.Fatalf("cross-account patch: status %d", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/todos/%d", created.ID), mallory, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("cross-account delete: status %d", w.Code)
	}
}
