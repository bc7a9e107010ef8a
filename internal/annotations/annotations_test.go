package annotations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/db"
	"github.com/ziadkadry99/research-reader/internal/session"
)

func setupSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewSQLStore(database)
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"sql":    setupSQLStore(t),
		"memory": NewMemoryStore(),
	}
}

func TestSetMarshalCanonical(t *testing.T) {
	a := NewSet("b", "a", "c", "a").Marshal()
	b := NewSet("c", "b", "a").Marshal()
	if a != b {
		t.Errorf("Marshal not canonical: %q vs %q", a, b)
	}
	if a != `["a","b","c"]` {
		t.Errorf("Marshal = %q, want %q", a, `["a","b","c"]`)
	}
	if got := NewSet().Marshal(); got != "[]" {
		t.Errorf("empty Marshal = %q, want %q", got, "[]")
	}
}

func TestUnmarshal(t *testing.T) {
	set, err := Unmarshal(`["x","y","x"]`)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if set.Len() != 2 || !set.Has("x") || !set.Has("y") {
		t.Errorf("Unmarshal = %v, want {x y}", set.IDs())
	}

	empty, err := Unmarshal("")
	if err != nil || empty.Len() != 0 {
		t.Errorf("Unmarshal(\"\") = %v, %v; want empty set", empty.IDs(), err)
	}

	if _, err := Unmarshal("{bad"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestToggleTwiceRestoresValue(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Put(ctx, "c1", SetHighlighted, []string{"7", "3"}); err != nil {
				t.Fatalf("Put: %v", err)
			}
			before, _ := store.Get(ctx, "c1", SetHighlighted)

			member, err := store.Toggle(ctx, "c1", SetHighlighted, "5")
			if err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			if !member {
				t.Error("first toggle should add")
			}
			member, err = store.Toggle(ctx, "c1", SetHighlighted, "5")
			if err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			if member {
				t.Error("second toggle should remove")
			}

			after, _ := store.Get(ctx, "c1", SetHighlighted)
			if before.Marshal() != after.Marshal() {
				t.Errorf("after double toggle = %q, want %q", after.Marshal(), before.Marshal())
			}
		})
	}
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if err := store.Add(ctx, "c1", SetRead, "42"); err != nil {
					t.Fatalf("Add: %v", err)
				}
			}
			set, err := store.Get(ctx, "c1", SetRead)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if set.Len() != 1 {
				t.Errorf("Len = %d, want 1", set.Len())
			}
			ok, err := store.Has(ctx, "c1", SetRead, "42")
			if err != nil || !ok {
				t.Errorf("Has(42) = %v, %v; want true", ok, err)
			}
		})
	}
}

func TestSetsAreIsolated(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store.Add(ctx, "c1", SetRead, "1")

			if ok, _ := store.Has(ctx, "c1", SetHighlighted, "1"); ok {
				t.Error("readDocs leaked into highlightedDocs")
			}
			if ok, _ := store.Has(ctx, "c2", SetRead, "1"); ok {
				t.Error("client c1's set leaked into c2")
			}
		})
	}
}

func TestUnknownSet(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Get(ctx, "c1", SetName("bogus")); err == nil {
				t.Error("expected error for unknown set")
			}
			if _, err := store.Toggle(ctx, "c1", SetName("bogus"), "1"); err == nil {
				t.Error("expected error for unknown set")
			}
		})
	}
}

func setupRouter(t *testing.T, store Store) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(session.WithClientID(req.Context(), "client-a")))
		})
	})
	RegisterRoutes(r, store, zap.NewNop())
	return r
}

func TestToggleRoute(t *testing.T) {
	store := NewMemoryStore()
	router := setupRouter(t, store)

	req := httptest.NewRequest("POST", "/api/annotations/highlightedDocs/9/toggle", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp toggleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Member || resp.DocID != "9" {
		t.Errorf("resp = %+v, want member of 9", resp)
	}

	ok, _ := store.Has(context.Background(), "client-a", SetHighlighted, "9")
	if !ok {
		t.Error("toggle route did not write to the client's set")
	}
}

func TestGetRoute(t *testing.T) {
	store := NewMemoryStore()
	store.Put(context.Background(), "client-a", SetRead, []string{"2", "1"})
	router := setupRouter(t, store)

	req := httptest.NewRequest("GET", "/api/annotations/readDocs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp setResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.IDs) != 2 || resp.IDs[0] != "1" || resp.IDs[1] != "2" {
		t.Errorf("ids = %v, want [1 2]", resp.IDs)
	}
}

func TestUnknownSetRoute(t *testing.T) {
	router := setupRouter(t, NewMemoryStore())

	req := httptest.NewRequest("GET", "/api/annotations/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSQLStoreConcurrentToggles(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "reader.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	store := NewSQLStore(database)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := store.Toggle(ctx, "c1", SetHighlighted, id); err != nil {
				errs <- err
			}
		}(strconv.Itoa(i))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Toggle: %v", err)
	}

	set, err := store.Get(ctx, "c1", SetHighlighted)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if set.Len() != n {
		t.Errorf("set has %d ids, want %d: %v", set.Len(), n, set.IDs())
	}
	for i := 0; i < n; i++ {
		if !set.Has(strconv.Itoa(i)) {
			t.Errorf("id %d missing", i)
		}
	}
}
