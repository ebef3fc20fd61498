package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"ktask/internal/config"
	"ktask/internal/service"
)

// fakeAPI serves the handful of Google Tasks endpoints the client uses.
type fakeAPI struct {
	mu       sync.Mutex
	lists    []map[string]any
	inserted []map[string]any
	deleted  []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/tasks/v1/users/@me/lists":
		json.NewEncoder(w).Encode(map[string]any{"items": f.lists})
	case r.Method == http.MethodPost && r.URL.Path == "/tasks/v1/users/@me/lists":
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		body["id"] = "new-list"
		json.NewEncoder(w).Encode(body)
	case r.Method == http.MethodGet && r.URL.Path == "/tasks/v1/lists/L1/tasks":
		json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
			{"id": "t1", "title": "old", "status": "completed", "due": "2019-10-15T00:00:00.000Z"},
		}})
	case r.Method == http.MethodPost && r.URL.Path == "/tasks/v1/lists/L1/tasks":
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		f.inserted = append(f.inserted, body)
		json.NewEncoder(w).Encode(body)
	case r.Method == http.MethodDelete && r.URL.Path == "/tasks/v1/lists/L1/tasks/t1":
		f.deleted = append(f.deleted, "t1")
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 404, "message": "no such thing"}})
	}
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := NewWithHTTPClient(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("NewWithHTTPClient() err = %v, want nil", err)
	}
	return c
}

func TestClient_ResolveList(t *testing.T) {
	api := &fakeAPI{lists: []map[string]any{
		{"id": "L1", "title": "Ktask"},
		{"id": "L2", "title": "Work"},
		{"id": "L3", "title": "dup"},
		{"id": "L4", "title": " Dup "},
	}}
	c := newTestClient(t, api)
	ctx := context.Background()

	list, err := c.ResolveList(ctx, "ktask")
	if err != nil {
		t.Fatalf("ResolveList() err = %v, want nil", err)
	}
	if list.ID != "L1" {
		t.Errorf("expected L1, got %q", list.ID)
	}

	if _, err := c.ResolveList(ctx, "missing"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := c.ResolveList(ctx, "dup"); !errors.Is(err, service.ErrAmbiguous) {
		t.Errorf("expected ErrAmbiguous, got %v", err)
	}
}

func TestClient_CreateList(t *testing.T) {
	c := newTestClient(t, &fakeAPI{})

	list, err := c.CreateList(context.Background(), "ktask")
	if err != nil {
		t.Fatalf("CreateList() err = %v, want nil", err)
	}
	if list.ID != "new-list" || list.Title != "ktask" {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestClient_ListTasks(t *testing.T) {
	c := newTestClient(t, &fakeAPI{})

	got, err := c.ListTasks(context.Background(), "L1")
	if err != nil {
		t.Fatalf("ListTasks() err = %v, want nil", err)
	}
	if len(got) != 1 || got[0].ID != "t1" || !got[0].Completed {
		t.Fatalf("unexpected tasks %+v", got)
	}
	if want := time.Date(2019, time.October, 15, 0, 0, 0, 0, time.UTC); !got[0].Due.Equal(want) {
		t.Errorf("expected due %v, got %v", want, got[0].Due)
	}
}

func TestClient_CreateTask(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	err := c.CreateTask(context.Background(), "L1", service.Task{
		Title:     "return book",
		Notes:     "[D][X] return book (by: Oct 15 2019)",
		Due:       time.Date(2019, time.October, 15, 13, 0, 0, 0, time.UTC),
		Completed: true,
	})
	if err != nil {
		t.Fatalf("CreateTask() err = %v, want nil", err)
	}
	if len(api.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(api.inserted))
	}
	body := api.inserted[0]
	if body["title"] != "return book" || body["status"] != "completed" {
		t.Errorf("unexpected body %v", body)
	}
	if body["due"] != "2019-10-15T00:00:00Z" {
		t.Errorf("expected due truncated to the day, got %v", body["due"])
	}
}

func TestClient_DeleteTask(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	if err := c.DeleteTask(context.Background(), "L1", "t1"); err != nil {
		t.Fatalf("DeleteTask() err = %v, want nil", err)
	}
	if len(api.deleted) != 1 {
		t.Errorf("expected one delete, got %v", api.deleted)
	}

	err := c.DeleteTask(context.Background(), "L1", "nope")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWrapError(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		err := wrapError(&googleapi.Error{Code: code})
		if !errors.Is(err, service.ErrAuth) {
			t.Errorf("HTTP %d: expected ErrAuth, got %v", code, err)
		}
	}
	if err := wrapError(&googleapi.Error{Code: http.StatusNotFound}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("HTTP 404: expected ErrNotFound, got %v", err)
	}
	if err := wrapError(&googleapi.Error{Code: http.StatusInternalServerError}); errors.Is(err, service.ErrAuth) {
		t.Errorf("HTTP 500: unexpected ErrAuth in %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	_, err := New(context.Background(), cfg)
	if !errors.Is(err, service.ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
}
