package pages

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/annotations"
	"github.com/ziadkadry99/research-reader/internal/backend"
	"github.com/ziadkadry99/research-reader/internal/browse"
	"github.com/ziadkadry99/research-reader/internal/chat"
	"github.com/ziadkadry99/research-reader/internal/db"
	"github.com/ziadkadry99/research-reader/internal/session"
)

// fakeBackend serves canned envelopes and counts calls per path.
type fakeBackend struct {
	mu      sync.Mutex
	calls   map[string]int
	article string
}

func (f *fakeBackend) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.URL.Path]++
	article := f.article
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/categories":
		io.WriteString(w, `{"status":"success","data":[{"id":1,"name":"Plants"},{"id":2,"name":"Microbes"}]}`)
	case "/categories/1/documents":
		io.WriteString(w, `{"status":"success","data":[{"id":10,"title":"Root growth","summary":"","link":"https://example.org/10","category_id":1}]}`)
	case "/categories/2/documents":
		io.WriteString(w, `{"status":"success","data":[
			{"id":20,"title":"Spore survival","summary":"Spores persist.","link":"https://example.org/20","category_id":2},
			{"id":21,"title":"Biofilm formation","summary":"Biofilms grow.","link":"https://example.org/21","category_id":2}]}`)
	case "/categories/9/documents":
		io.WriteString(w, `{"status":"success","data":[]}`)
	case "/search":
		io.WriteString(w, `{"status":"success","data":[{"id":30,"title":"Bone loss in orbit","summary":"Mice lose bone.","link":"https://example.org/30","category_id":3}]}`)
	case "/article_content":
		if article == "" {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"status":"error","error":"scrape failed"}`)
			return
		}
		io.WriteString(w, article)
	case "/chat_article":
		io.WriteString(w, `{"answer":"It is about plants."}`)
	default:
		http.NotFound(w, r)
	}
}

type fixture struct {
	backend *fakeBackend
	store   *annotations.MemoryStore
	router  http.Handler
}

func setup(t *testing.T) *fixture {
	t.Helper()
	fb := &fakeBackend{calls: map[string]int{}}
	ts := httptest.NewServer(fb)
	t.Cleanup(ts.Close)

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	client := backend.NewCategoryCache(backend.NewClient(ts.URL), 0)
	store := annotations.NewMemoryStore()
	registry := browse.NewRegistry(client, 100, 0, nil)
	chatSvc := chat.NewService(chat.NewStore(database), client, nil)
	p := New(client, registry, store, chatSvc, zap.NewNop(), Options{})

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(session.WithClientID(req.Context(), "visitor")))
		})
	})
	RegisterRoutes(r, p)

	return &fixture{backend: fb, store: store, router: r}
}

func (f *fixture) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestArticleMissingURL(t *testing.T) {
	f := setup(t)

	w := f.do(t, "GET", "/article", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No URL provided") {
		t.Error("expected \"No URL provided\" message")
	}
	if n := f.backend.total(); n != 0 {
		t.Errorf("backend called %d times, want 0", n)
	}
}

func TestArticleTitleOnly(t *testing.T) {
	f := setup(t)
	f.backend.article = `{"status":"success","data":{"title":"T"}}`

	w := f.do(t, "GET", "/article?url="+url.QueryEscape("https://example.org/t"), nil)
	body := w.Body.String()

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(body, "<h1>T</h1>") {
		t.Error("expected title T")
	}
	if strings.Contains(body, "Authors:") {
		t.Error("expected no authors line")
	}
	if strings.Contains(body, "section-card") {
		t.Error("expected no summary sections")
	}
	if !strings.Contains(body, "No summary content available") {
		t.Error("expected empty-summary message")
	}
}

func TestArticleSections(t *testing.T) {
	f := setup(t)
	f.backend.article = `{"status":"success","data":{
		"title":"Plants in Space",
		"authors":["A. Botanist","B. Biologist"],
		"pdf_url":"https://example.org/p.pdf",
		"summary":{
			"KeyFindings":"**Growth**\n- roots curl\n- **faster** germination",
			"Background":"Microgravity alters plants.",
			"Methodology":"**Setup**: ISS chambers"
		}}}`

	w := f.do(t, "GET", "/article?url="+url.QueryEscape("https://example.org/p"), nil)
	body := w.Body.String()

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	labels := []string{"Background &amp; Context", "Methods &amp; Study Design", "Key Results &amp; Findings"}
	last := -1
	for _, l := range labels {
		i := strings.Index(body, l)
		if i < 0 {
			t.Fatalf("missing section %q", l)
		}
		if i < last {
			t.Errorf("section %q out of order", l)
		}
		last = i
	}
	for _, absent := range []string{"Conclusions", "Ethical Considerations", "Additional Notes"} {
		if strings.Contains(body, absent) {
			t.Errorf("empty section %q rendered", absent)
		}
	}
	for _, want := range []string{
		"A. Botanist, B. Biologist",
		"<h3>Overview</h3>",
		"<h3>Growth</h3>",
		"<strong>faster</strong> germination",
		"ISS chambers",
		"https://example.org/p.pdf",
		"automatically generated using AI",
		chat.Greeting,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestArticleBackendError(t *testing.T) {
	f := setup(t)

	w := f.do(t, "GET", "/article?url="+url.QueryEscape("https://example.org/bad"), nil)
	body := w.Body.String()

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
	for _, want := range []string{"Unable to load article", "Please check the URL and try again", "Go Back"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "scrape failed") {
		t.Error("backend error detail leaked into page")
	}
}

func TestArticleSummaryReused(t *testing.T) {
	f := setup(t)
	f.backend.article = `{"status":"success","data":{"title":"T"}}`
	target := "/article?url=" + url.QueryEscape("https://example.org/t")

	f.do(t, "GET", target, nil)
	f.do(t, "GET", target, nil)

	if n := f.backend.count("/article_content"); n != 1 {
		t.Errorf("article_content called %d times, want 1", n)
	}
}

func TestHomeBrowsing(t *testing.T) {
	f := setup(t)

	w := f.do(t, "GET", "/", nil)
	body := w.Body.String()

	if !strings.Contains(body, "Browse by Category") {
		t.Error("expected browsing mode")
	}
	if !strings.Contains(body, `href="/?category=2"`) {
		t.Error("expected category tile for Microbes")
	}
	for _, want := range []string{"NEROMIND", "SHARE TO BE SHARED", "NASA Space Apps Challenge 2025"} {
		if !strings.Contains(body, want) {
			t.Errorf("footer missing %q", want)
		}
	}

	f.do(t, "GET", "/home", nil)
	if n := f.backend.count("/categories"); n != 1 {
		t.Errorf("categories fetched %d times, want 1", n)
	}
}

func TestHomeSearchThenEmptyQuery(t *testing.T) {
	f := setup(t)

	w := f.do(t, "GET", "/search?q=bone", nil)
	body := w.Body.String()
	if !strings.Contains(body, "Bone loss in orbit") {
		t.Fatal("expected search result")
	}
	if !strings.Contains(body, "/article?url=https%3a%2f%2fexample.org%2f30") &&
		!strings.Contains(body, "/article?url=https%3A%2F%2Fexample.org%2F30") {
		t.Error("expected result to link to the article view")
	}

	w = f.do(t, "GET", "/?q=", nil)
	body = w.Body.String()
	if !strings.Contains(body, "Browse by Category") {
		t.Error("empty query should return to browsing")
	}
	if strings.Contains(body, "Bone loss in orbit") {
		t.Error("empty query should clear results")
	}
}

func TestHomeCategoryReplacesResults(t *testing.T) {
	f := setup(t)

	f.do(t, "GET", "/?q=bone", nil)
	body := f.do(t, "GET", "/?category=2", nil).Body.String()

	if strings.Contains(body, "Bone loss in orbit") {
		t.Error("category click should replace search results")
	}
	if !strings.Contains(body, "Spore survival") || !strings.Contains(body, "Biofilm formation") {
		t.Error("expected category documents")
	}
}

func TestHomeNoResults(t *testing.T) {
	f := setup(t)
	body := f.do(t, "GET", "/?category=9", nil).Body.String()
	if !strings.Contains(body, "No documents found matching your criteria.") {
		t.Error("expected no-results message")
	}
}

func TestTopicFavoritesTab(t *testing.T) {
	f := setup(t)

	w := f.do(t, "GET", "/topic/2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<h1>Microbes</h1>") {
		t.Error("expected topic name from categories")
	}

	w = f.do(t, "POST", "/topic/2/favorite/20", url.Values{"tab": {"all"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("toggle status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/topic/2?tab=all" {
		t.Errorf("Location = %q, want /topic/2?tab=all", loc)
	}

	body := f.do(t, "GET", "/topic/2?tab=favorites", nil).Body.String()
	if !strings.Contains(body, "Spore survival") {
		t.Error("favorite document missing from favorites tab")
	}
	if strings.Contains(body, "Biofilm formation") {
		t.Error("non-favorite document shown on favorites tab")
	}
	if !strings.Contains(body, "Favorites (1)") {
		t.Error("expected favorite count")
	}

	f.do(t, "GET", "/topic/2?tab=all", nil)
	if n := f.backend.count("/categories/2/documents"); n != 1 {
		t.Errorf("documents fetched %d times, want 1", n)
	}
}

func TestTopicFavoriteToggleTwice(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.store.Put(ctx, "visitor", annotations.SetHighlighted, []string{"21"})
	before, _ := f.store.Get(ctx, "visitor", annotations.SetHighlighted)

	f.do(t, "POST", "/topic/2/favorite/20", url.Values{})
	f.do(t, "POST", "/topic/2/favorite/20", url.Values{})

	after, _ := f.store.Get(ctx, "visitor", annotations.SetHighlighted)
	if before.Marshal() != after.Marshal() {
		t.Errorf("after double toggle = %q, want %q", after.Marshal(), before.Marshal())
	}
}

func TestTopicEmptyStates(t *testing.T) {
	f := setup(t)

	body := f.do(t, "GET", "/topic/2?tab=favorites", nil).Body.String()
	if !strings.Contains(body, "No favorites yet") || !strings.Contains(body, "Star documents to add them to your favorites") {
		t.Error("expected empty favorites message")
	}

	body = f.do(t, "GET", "/topic/9", nil).Body.String()
	if !strings.Contains(body, "No documents found for this topic.") {
		t.Error("expected empty topic message")
	}
	if !strings.Contains(body, "<h1>Topic 9</h1>") {
		t.Error("expected fallback topic name")
	}
}

func TestTopicStillResearching(t *testing.T) {
	f := setup(t)
	body := f.do(t, "GET", "/topic/1", nil).Body.String()
	if !strings.Contains(body, "Still Researching") {
		t.Error("expected placeholder for document without summary")
	}
}

func TestTopicOpenMarksRead(t *testing.T) {
	f := setup(t)

	w := f.do(t, "POST", "/topic/1/open/10", url.Values{"url": {"https://example.org/10"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	want := "/article?url=" + url.QueryEscape("https://example.org/10")
	if loc := w.Header().Get("Location"); loc != want {
		t.Errorf("Location = %q, want %q", loc, want)
	}
	ok, _ := f.store.Has(context.Background(), "visitor", annotations.SetRead, "10")
	if !ok {
		t.Error("opening a document should mark it read")
	}
}

func TestTopicInvalidID(t *testing.T) {
	f := setup(t)
	if w := f.do(t, "GET", "/topic/abc", nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestNotFound(t *testing.T) {
	f := setup(t)
	w := f.do(t, "GET", "/no/such/page", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "404 - Not found") {
		t.Error("expected not found message")
	}
}

func TestInline(t *testing.T) {
	rr := newRenderer(zap.NewNop())
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"**bold** tail", "<strong>bold</strong> tail"},
		{"~~gone~~", "<del>gone</del>"},
		{"1. Mice were flown for 30 days", "1. Mice were flown for 30 days"},
		{"1998. The first study", "1998. The first study"},
		{"# of samples: 12", "# of samples: 12"},
		{"> 50% survived", "&gt; 50% survived"},
		{"* nested", "* nested"},
		{"+ more", "+ more"},
		{"---", "---"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := string(rr.inline(tt.in)); got != tt.want {
				t.Errorf("inline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if got := string(rr.inline("<script>alert(1)</script>")); strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
}
