package pages

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/annotations"
	"github.com/ziadkadry99/research-reader/internal/backend"
	"github.com/ziadkadry99/research-reader/internal/browse"
	"github.com/ziadkadry99/research-reader/internal/chat"
	"github.com/ziadkadry99/research-reader/internal/session"
)

type homeData struct {
	layoutData
	State browse.Snapshot
}

// handleHome renders the browse/search view. ?q= submits a query (an empty
// one returns to browsing) and ?category= selects a category.
func (p *Pages) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st := p.browse.Get(session.ClientID(ctx))
	st.Mount(ctx)

	query := r.URL.Query()
	switch {
	case query.Has("category"):
		id, err := strconv.Atoi(query.Get("category"))
		if err != nil {
			p.handleNotFound(w, r)
			return
		}
		st.SelectCategory(ctx, id)
	case query.Has("q"):
		st.SubmitQuery(ctx, query.Get("q"))
	}

	snap := st.Snapshot()
	data := homeData{layoutData: p.layout(ctx, ""), State: snap}
	data.Query = snap.Query
	data.SearchPlaceholder = "Search..."
	p.view.render(w, http.StatusOK, "home", data)
}

type topicDoc struct {
	Document backend.Document
	Read     bool
	Favorite bool
}

type topicData struct {
	layoutData
	TopicID       int
	TopicName     string
	Tab           string
	Favorites     bool
	FavoriteCount int
	Failed        bool
	Docs          []topicDoc
}

// handleTopic lists one category's documents. A plain visit loads the list;
// requests carrying ?tab= reuse the visitor's loaded list and only filter it.
func (p *Pages) handleTopic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		p.handleNotFound(w, r)
		return
	}
	clientID := session.ClientID(ctx)
	tab := r.URL.Query().Get("tab")

	docs, ok := p.loadedTopic(clientID, id)
	failed := false
	if !ok || tab == "" {
		docs, err = p.backend.DocumentsByCategory(ctx, id)
		if err != nil {
			p.logger.Error("loading topic documents", zap.Int("category_id", id), zap.Error(err))
			failed = true
			docs = nil
		} else {
			p.topics.SetDefault(topicKey(clientID, id), docs)
		}
	}

	read, err := p.annotations.Get(ctx, clientID, annotations.SetRead)
	if err != nil {
		p.logger.Error("reading read flags", zap.Error(err))
	}
	favs, err := p.annotations.Get(ctx, clientID, annotations.SetHighlighted)
	if err != nil {
		p.logger.Error("reading favorite flags", zap.Error(err))
	}

	name := p.backend.CategoryName(ctx, id)
	data := topicData{
		layoutData: p.layout(ctx, name),
		TopicID:    id,
		TopicName:  name,
		Tab:        tab,
		Favorites:  tab == "favorites",
		Failed:     failed,
	}
	data.BackLink = "/"

	for _, d := range docs {
		docID := strconv.Itoa(d.ID)
		td := topicDoc{Document: d, Read: read.Has(docID), Favorite: favs.Has(docID)}
		if td.Favorite {
			data.FavoriteCount++
		}
		if data.Favorites && !td.Favorite {
			continue
		}
		data.Docs = append(data.Docs, td)
	}

	p.view.render(w, http.StatusOK, "topic", data)
}

func topicKey(clientID string, categoryID int) string {
	return clientID + ":" + strconv.Itoa(categoryID)
}

func (p *Pages) loadedTopic(clientID string, categoryID int) ([]backend.Document, bool) {
	v, ok := p.topics.Get(topicKey(clientID, categoryID))
	if !ok {
		return nil, false
	}
	return v.([]backend.Document), true
}

// handleToggle flips the read or favorite flag of one document and returns
// to the topic on the same tab.
func (p *Pages) handleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	topicID := chi.URLParam(r, "id")
	docID := chi.URLParam(r, "docID")

	set := annotations.SetRead
	if strings.Contains(r.URL.Path, "/favorite/") {
		set = annotations.SetHighlighted
	}
	if _, err := p.annotations.Toggle(ctx, session.ClientID(ctx), set, docID); err != nil {
		p.logger.Error("toggling flag", zap.String("set", string(set)), zap.String("doc_id", docID), zap.Error(err))
	}

	tab := r.FormValue("tab")
	if tab == "" {
		tab = "all"
	}
	http.Redirect(w, r, "/topic/"+url.PathEscape(topicID)+"?tab="+url.QueryEscape(tab), http.StatusSeeOther)
}

// handleOpen marks a document read and continues to its article.
func (p *Pages) handleOpen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docID := chi.URLParam(r, "docID")
	if err := p.annotations.Add(ctx, session.ClientID(ctx), annotations.SetRead, docID); err != nil {
		p.logger.Error("marking document read", zap.String("doc_id", docID), zap.Error(err))
	}
	http.Redirect(w, r, browse.ArticleLink(backend.Document{Link: r.FormValue("url")}), http.StatusSeeOther)
}

type articleData struct {
	layoutData
	ArticleURL string
	Error      string
	Article    *backend.ArticleSummary
	Sections   []sectionView
	Chat       *chat.Transcript
}

// handleArticle renders the structured summary for ?url=. Without a url no
// backend call is made.
func (p *Pages) handleArticle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	articleURL := r.URL.Query().Get("url")

	if articleURL == "" {
		data := articleData{layoutData: p.bareLayout("Article"), Error: "No URL provided"}
		data.HistoryBack = true
		p.view.render(w, http.StatusBadRequest, "article", data)
		return
	}

	data := articleData{layoutData: p.layout(ctx, "Article"), ArticleURL: articleURL}
	data.HistoryBack = true
	data.SearchPlaceholder = "Search in article..."

	article, err := p.articleSummary(r, articleURL)
	if err != nil {
		p.logger.Error("loading article", zap.String("url", articleURL), zap.Error(err))
		data.Error = "Unable to load article"
		p.view.render(w, http.StatusBadGateway, "article", data)
		return
	}

	data.Title = article.Title
	data.Article = article
	data.Sections = p.view.articleSections(article.Summary)

	tr, err := p.chat.Open(ctx, session.ClientID(ctx), chat.Article{
		URL:     articleURL,
		Title:   article.Title,
		Context: article.Context(),
	})
	if err != nil {
		p.logger.Error("opening chat", zap.String("url", articleURL), zap.Error(err))
	}
	data.Chat = tr

	p.view.render(w, http.StatusOK, "article", data)
}

func (p *Pages) articleSummary(r *http.Request, articleURL string) (*backend.ArticleSummary, error) {
	if v, ok := p.summaries.Get(articleURL); ok {
		return v.(*backend.ArticleSummary), nil
	}
	article, err := p.backend.ArticleSummary(r.Context(), articleURL)
	if err != nil {
		return nil, err
	}
	p.summaries.SetDefault(articleURL, article)
	return article, nil
}

func (p *Pages) handleNotFound(w http.ResponseWriter, r *http.Request) {
	data := p.layout(r.Context(), "Not found")
	p.view.render(w, http.StatusNotFound, "notfound", struct{ layoutData }{data})
}
