package browse

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ziadkadry99/research-reader/internal/backend"
)

type fakeFinder struct {
	mu            sync.Mutex
	categories    []backend.Category
	categoriesErr error
	catCalls      int
	catGate       chan struct{}
	byCategory    map[int][]backend.Document
	searchResults []backend.Document
	searchErr     error
	lastSearch    backend.SearchRequest
}

func (f *fakeFinder) Categories(ctx context.Context) ([]backend.Category, error) {
	f.mu.Lock()
	f.catCalls++
	gate := f.catGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.categories, f.categoriesErr
}

func (f *fakeFinder) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.catCalls
}

func (f *fakeFinder) DocumentsByCategory(ctx context.Context, id int) ([]backend.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byCategory[id], nil
}

func (f *fakeFinder) Search(ctx context.Context, req backend.SearchRequest) ([]backend.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSearch = req
	return f.searchResults, f.searchErr
}

func newFinder() *fakeFinder {
	return &fakeFinder{
		categories: []backend.Category{{ID: 1, Name: "Plants"}, {ID: 2, Name: "Microbes"}},
		byCategory: map[int][]backend.Document{
			1: {{ID: 10, Title: "Roots", Link: "https://a/10"}},
			2: {{ID: 20, Title: "Spores", Link: "https://a/20"}, {ID: 21, Title: "Biofilm", Link: "https://a/21"}},
		},
		searchResults: []backend.Document{{ID: 30, Title: "Bone loss", Link: "https://a/30"}},
	}
}

func TestInitialState(t *testing.T) {
	st := NewState(newFinder(), 100, nil)
	snap := st.Snapshot()
	if snap.Mode != ModeBrowsing {
		t.Errorf("Mode = %q, want %q", snap.Mode, ModeBrowsing)
	}
	if len(snap.Categories) != 0 || len(snap.Results) != 0 || snap.Query != "" || snap.Loading {
		t.Errorf("unexpected initial snapshot: %+v", snap)
	}
}

func TestMountFetchesOnce(t *testing.T) {
	f := newFinder()
	st := NewState(f, 100, nil)

	st.Mount(context.Background())
	st.Mount(context.Background())

	if f.catCalls != 1 {
		t.Errorf("Categories called %d times, want 1", f.catCalls)
	}
	if got := len(st.Snapshot().Categories); got != 2 {
		t.Errorf("len(Categories) = %d, want 2", got)
	}
}

func TestMountWaitsForInFlightFetch(t *testing.T) {
	f := newFinder()
	f.catGate = make(chan struct{})
	st := NewState(f, 100, nil)

	go st.Mount(context.Background())
	deadline := time.Now().Add(2 * time.Second)
	for f.calls() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first Mount never reached the backend")
		}
		time.Sleep(time.Millisecond)
	}

	second := make(chan int, 1)
	go func() {
		st.Mount(context.Background())
		second <- len(st.Snapshot().Categories)
	}()

	select {
	case n := <-second:
		t.Fatalf("second Mount returned before the fetch finished, with %d categories", n)
	case <-time.After(50 * time.Millisecond):
	}

	close(f.catGate)
	select {
	case n := <-second:
		if n != 2 {
			t.Errorf("len(Categories) after waiting = %d, want 2", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second Mount did not return after the fetch finished")
	}
	if got := f.calls(); got != 1 {
		t.Errorf("Categories called %d times, want 1", got)
	}
}

func TestMountWaitHonorsContext(t *testing.T) {
	f := newFinder()
	f.catGate = make(chan struct{})
	defer close(f.catGate)
	st := NewState(f, 100, nil)

	go st.Mount(context.Background())
	deadline := time.Now().Add(2 * time.Second)
	for f.calls() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first Mount never reached the backend")
		}
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	st.Mount(ctx)
	if got := len(st.Snapshot().Categories); got != 0 {
		t.Errorf("len(Categories) = %d, want 0 while fetch is pending", got)
	}
}

func TestMountFailureNotRetried(t *testing.T) {
	f := newFinder()
	f.categoriesErr = errors.New("down")
	st := NewState(f, 100, nil)

	st.Mount(context.Background())
	f.categoriesErr = nil
	st.Mount(context.Background())

	if f.catCalls != 1 {
		t.Errorf("Categories called %d times, want 1", f.catCalls)
	}
	if got := len(st.Snapshot().Categories); got != 0 {
		t.Errorf("len(Categories) = %d, want 0", got)
	}
}

func TestSubmitQuery(t *testing.T) {
	f := newFinder()
	st := NewState(f, 100, nil)

	st.SubmitQuery(context.Background(), "  bone  ")
	snap := st.Snapshot()

	if snap.Mode != ModeSearching {
		t.Errorf("Mode = %q, want %q", snap.Mode, ModeSearching)
	}
	if snap.Loading {
		t.Error("Loading should be cleared after the search completes")
	}
	if f.lastSearch.Query != "bone" || f.lastSearch.Limit != 100 {
		t.Errorf("search request = %+v, want {bone 100}", f.lastSearch)
	}
	if len(snap.Results) != 1 || snap.Results[0].ID != 30 {
		t.Errorf("Results = %+v", snap.Results)
	}
}

func TestEmptyQueryReturnsToBrowsing(t *testing.T) {
	st := NewState(newFinder(), 100, nil)
	st.SubmitQuery(context.Background(), "bone")

	for _, q := range []string{"", "   ", "\t\n"} {
		st.SubmitQuery(context.Background(), "bone")
		st.SubmitQuery(context.Background(), q)
		snap := st.Snapshot()
		if snap.Searching() {
			t.Errorf("query %q: still searching", q)
		}
		if len(snap.Results) != 0 {
			t.Errorf("query %q: results not cleared: %+v", q, snap.Results)
		}
	}
}

func TestSearchFailureClearsResults(t *testing.T) {
	f := newFinder()
	st := NewState(f, 100, nil)
	st.SubmitQuery(context.Background(), "bone")

	f.searchErr = errors.New("boom")
	st.SubmitQuery(context.Background(), "muscle")
	snap := st.Snapshot()

	if !snap.Searching() {
		t.Error("failed search should stay in searching mode")
	}
	if snap.Loading {
		t.Error("Loading should be cleared on failure")
	}
	if len(snap.Results) != 0 {
		t.Errorf("Results = %+v, want empty", snap.Results)
	}
}

func TestSelectCategoryReplacesResults(t *testing.T) {
	st := NewState(newFinder(), 100, nil)

	st.SubmitQuery(context.Background(), "bone")
	st.SelectCategory(context.Background(), 2)
	snap := st.Snapshot()
	if len(snap.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(snap.Results))
	}
	if snap.ActiveCategory != 2 {
		t.Errorf("ActiveCategory = %d, want 2", snap.ActiveCategory)
	}

	st.SelectCategory(context.Background(), 1)
	snap = st.Snapshot()
	if len(snap.Results) != 1 || snap.Results[0].ID != 10 {
		t.Errorf("Results = %+v, want only document 10", snap.Results)
	}
}

func TestStaleResultsDropped(t *testing.T) {
	st := NewState(newFinder(), 100, nil)

	st.mu.Lock()
	stale := st.begin()
	st.mu.Unlock()

	st.SelectCategory(context.Background(), 1)
	st.finish(stale, []backend.Document{{ID: 99}}, nil)

	snap := st.Snapshot()
	if len(snap.Results) != 1 || snap.Results[0].ID != 10 {
		t.Errorf("Results = %+v, stale results should be dropped", snap.Results)
	}
}

func TestArticleLink(t *testing.T) {
	got := ArticleLink(backend.Document{ID: 1, Link: "https://example.org/a?b=c&d=e"})
	want := "/article?url=https%3A%2F%2Fexample.org%2Fa%3Fb%3Dc%26d%3De"
	if got != want {
		t.Errorf("ArticleLink = %q, want %q", got, want)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(newFinder(), 100, time.Minute, nil)

	a := reg.Get("a")
	if reg.Get("a") != a {
		t.Error("Get should return the same state for a client")
	}
	if reg.Get("b") == a {
		t.Error("clients should not share state")
	}
	if reg.Len() != 2 {
		t.Errorf("Len = %d, want 2", reg.Len())
	}

	reg.Discard("a")
	if reg.Get("a") == a {
		t.Error("Discard should drop the state")
	}
}
