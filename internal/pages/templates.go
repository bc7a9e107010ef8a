package pages

// layoutTemplate wraps every page: header with navigation and search box,
// star background, footer and back-to-top anchor.
const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Title}}{{.Title}} | {{end}}{{.SiteName}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body id="top">
  <div class="stars" aria-hidden="true"></div>
  <header class="top-bar">
    <div class="top-bar-inner">
      {{if .HistoryBack}}<a class="back-link" href="javascript:history.back()">&larr; Back</a>{{else if .BackLink}}<a class="back-link" href="{{.BackLink}}">&larr; Back</a>{{else}}<a class="brand" href="/">{{.SiteName}}</a>{{end}}
      <form class="search-box" action="/search" method="get">
        <input type="text" name="q" value="{{.Query}}" placeholder="{{.SearchPlaceholder}}" autocomplete="off">
      </form>
      <nav class="nav">
        <a href="/">Home</a>
        {{if .NavCategories}}
        <details class="nav-topics">
          <summary>Topics</summary>
          <div class="nav-dropdown">
            {{range .NavCategories}}<a href="/topic/{{.ID}}">{{.Name}}</a>{{end}}
          </div>
        </details>
        {{end}}
      </nav>
    </div>
  </header>
  <main class="content">
    {{template "content" .}}
  </main>
  <div class="loading-overlay" id="loading-overlay"><div class="spinner"></div><p>Analyzing article...</p></div>
  <footer class="footer">
    <div class="footer-inner">
      <div>
        <h3>NEROMIND</h3>
        <p>A team joining the NASA Space Apps Challenge 2025 to advance space biology research and share knowledge for the benefit of humanity.</p>
        <p class="motto">SHARE TO BE SHARED</p>
      </div>
      <div>
        <h4>Topics</h4>
        <ul>{{range .NavCategories}}<li><a href="/topic/{{.ID}}">{{.Name}}</a></li>{{end}}</ul>
      </div>
    </div>
    <p class="copyright">&copy; 2025 NEROMIND - NASA Space Apps Challenge 2025</p>
  </footer>
  <a class="back-to-top" href="#top" aria-label="Back to top">&uarr;</a>
  <script>
    document.querySelectorAll("[data-article-link]").forEach(function (el) {
      el.addEventListener("click", function () {
        document.getElementById("loading-overlay").classList.add("visible");
      });
    });
  </script>
</body>
</html>{{end}}`

const homeTemplate = `{{define "content"}}
<section class="home {{if .State.Searching}}home-searching{{end}}">
  <h1>Document Search</h1>
  <form class="hero-search" action="/" method="get">
    <input type="text" name="q" value="{{.State.Query}}" placeholder="{{if .State.Searching}}Search...{{else}}Enter keywords to search documents...{{end}}" autocomplete="off">
  </form>

  {{if not .State.Searching}}
  <div class="categories">
    <h2>Browse by Category</h2>
    <div class="category-grid">
      {{range .State.Categories}}
      <a class="category-tile" href="/?category={{.ID}}">{{.Name}}</a>
      {{end}}
    </div>
  </div>
  {{else}}
  <div class="category-pills">
    {{range .State.Categories}}
    <a class="pill {{if eq .ID $.State.ActiveCategory}}active{{end}}" href="/?category={{.ID}}">{{.Name}}</a>
    {{end}}
  </div>
  {{if .State.Loading}}
  <p class="loading">Loading results...</p>
  {{else if .State.Results}}
  <ul class="results">
    {{range .State.Results}}
    <li class="result-card">
      <a href="{{articleLink .}}" data-article-link>
        <h3>{{.Title}}</h3>
        <p>{{.Summary}}</p>
        <span class="view">View document</span>
      </a>
    </li>
    {{end}}
  </ul>
  {{else}}
  <p class="empty">No documents found matching your criteria.</p>
  {{end}}
  {{end}}
</section>
{{end}}`

const topicTemplate = `{{define "content"}}
<section class="topic">
  <h1>{{.TopicName}}</h1>
  <div class="tabs">
    <a class="tab {{if not .Favorites}}active{{end}}" href="/topic/{{.TopicID}}?tab=all">All Documents</a>
    <a class="tab {{if .Favorites}}active{{end}}" href="/topic/{{.TopicID}}?tab=favorites">Favorites{{if .FavoriteCount}} ({{.FavoriteCount}}){{end}}</a>
  </div>
  <h2>Related Research Documents</h2>
  {{if .Failed}}
  <p class="empty">Failed to load documents for this topic.</p>
  {{else if .Docs}}
  <ul class="doc-list">
    {{range .Docs}}
    <li class="doc-card {{if .Read}}read{{end}}">
      <form class="doc-open" action="/topic/{{$.TopicID}}/open/{{.Document.ID}}" method="post" data-article-link>
        <input type="hidden" name="url" value="{{.Document.Link}}">
        <button type="submit">
          <h3>{{.Document.Title}}</h3>
          <p>{{if .Document.Summary}}{{.Document.Summary}}{{else}}Still Researching{{end}}</p>
        </button>
      </form>
      <div class="doc-actions">
        <form action="/topic/{{$.TopicID}}/favorite/{{.Document.ID}}" method="post">
          <input type="hidden" name="tab" value="{{$.Tab}}">
          <button type="submit" class="star {{if .Favorite}}on{{end}}" title="Add to favorites">&#9733;</button>
        </form>
        <form action="/topic/{{$.TopicID}}/read/{{.Document.ID}}" method="post">
          <input type="hidden" name="tab" value="{{$.Tab}}">
          <button type="submit" class="check {{if .Read}}on{{end}}" title="Mark as read">&#10003;</button>
        </form>
      </div>
    </li>
    {{end}}
  </ul>
  {{else if .Favorites}}
  <div class="empty">
    <p>No favorites yet</p>
    <p class="hint">Star documents to add them to your favorites</p>
  </div>
  {{else}}
  <p class="empty">No documents found for this topic.</p>
  {{end}}
</section>
{{end}}`

const articleTemplate = `{{define "content"}}
{{if .Error}}
<section class="article-error">
  <p class="error-title">{{.Error}}</p>
  <p>Please check the URL and try again</p>
  <a class="button" href="javascript:history.back()">Go Back</a>
</section>
{{else}}
<article class="article">
  <div class="article-header">
    <div class="badge">RESEARCH ARTICLE</div>
    <h1>{{.Article.Title}}</h1>
    {{if .Article.Authors}}<p class="authors"><span>Authors: </span>{{join .Article.Authors ", "}}</p>{{end}}
    {{if .Article.PDFURL}}<p><a class="pdf" href="{{.Article.PDFURL}}" target="_blank" rel="noopener">View PDF</a></p>{{end}}
  </div>

  {{if .Sections}}
  <div class="article-sections">
    {{range .Sections}}
    <section class="section-card" id="{{.Key}}">
      <h2>{{.Label}}</h2>
      {{range .Groups}}
      <div class="section-group">
        <h3>{{.Title}}</h3>
        <ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
      </div>
      {{end}}
    </section>
    {{end}}
  </div>
  {{else}}
  <div class="empty">
    <p>No summary content available</p>
    <p class="hint">The article analysis did not return structured content</p>
  </div>
  {{end}}

  <p class="note"><strong>Note:</strong> This summary was automatically generated using AI. Please refer to the original article for complete details and validation.</p>
</article>

{{if .Chat}}
<aside class="chat" id="chat">
  <h3>Article Assistant</h3>
  <div class="chat-messages">
    {{range .Chat.Messages}}
    <div class="chat-message {{.Role}}"><p>{{.Content}}</p><time>{{.Timestamp.Format "15:04"}}</time></div>
    {{end}}
    {{if .Chat.Busy}}<div class="chat-message assistant thinking">Thinking...</div>{{end}}
  </div>
  <form class="chat-form" action="/article/chat" method="post">
    <input type="hidden" name="url" value="{{.ArticleURL}}">
    <input type="text" name="message" placeholder="Ask about the article..." autocomplete="off" {{if .Chat.Busy}}disabled{{end}}>
    <button type="submit" {{if .Chat.Busy}}disabled{{end}}>Send</button>
  </form>
</aside>
{{end}}
{{end}}
{{end}}`

const notFoundTemplate = `{{define "content"}}
<section class="not-found">
  <h1>404 - Not found</h1>
  <p><a href="/">Return home</a></p>
</section>
{{end}}`

// cssContent is the stylesheet served at /static/style.css.
const cssContent = `:root {
  --bg: #f8fafc;
  --card: #ffffff;
  --text: #1f2937;
  --muted: #6b7280;
  --accent: #2563eb;
  --accent-light: #dbeafe;
  --border: #e5e7eb;
  --night: #111827;
}
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, -apple-system, "Segoe UI", sans-serif; background: var(--bg); color: var(--text); }
a { color: var(--accent); text-decoration: none; }
.stars {
  position: fixed; inset: 0; z-index: -1; opacity: 0.25; pointer-events: none;
  background-image:
    radial-gradient(2px 2px at 20px 30px, #94a3b8, transparent),
    radial-gradient(2px 2px at 40px 70px, #cbd5e1, transparent),
    radial-gradient(1px 1px at 90px 40px, #64748b, transparent),
    radial-gradient(1px 1px at 130px 80px, #94a3b8, transparent),
    radial-gradient(2px 2px at 160px 30px, #cbd5e1, transparent);
  background-size: 200px 100px;
}
.top-bar { position: sticky; top: 0; background: rgba(255,255,255,0.9); border-bottom: 1px solid var(--border); z-index: 10; }
.top-bar-inner { max-width: 1100px; margin: 0 auto; display: flex; align-items: center; gap: 1.5rem; padding: 0.75rem 1.5rem; }
.brand { font-weight: 800; color: var(--text); }
.back-link { color: var(--muted); }
.search-box { flex: 1; }
.search-box input, .hero-search input, .chat-form input { width: 100%; padding: 0.5rem 1rem; border: 1px solid var(--border); border-radius: 999px; }
.nav { display: flex; gap: 1rem; align-items: center; font-size: 0.9rem; }
.nav-topics { position: relative; }
.nav-topics summary { cursor: pointer; list-style: none; }
.nav-dropdown { position: absolute; top: 1.8rem; left: 0; width: 14rem; background: var(--card); border: 1px solid var(--border); border-radius: 0.5rem; }
.nav-dropdown a { display: block; padding: 0.5rem 0.75rem; color: var(--text); }
.content { max-width: 1100px; margin: 0 auto; padding: 2rem 1.5rem 4rem; min-height: 70vh; }
.home { text-align: center; }
.hero-search { max-width: 36rem; margin: 4rem auto 0; }
.home-searching .hero-search { margin-top: 1rem; max-width: 28rem; }
.category-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(14rem, 1fr)); gap: 1.5rem; max-width: 48rem; margin: 0 auto; }
.category-tile { background: var(--card); padding: 1rem 1.5rem; border-radius: 0.75rem; border: 1px solid var(--border); color: var(--text); font-weight: 500; }
.category-pills { display: flex; flex-wrap: wrap; justify-content: center; gap: 0.5rem; margin-top: 1rem; }
.pill { background: var(--card); border: 1px solid var(--border); border-radius: 999px; padding: 0.25rem 0.75rem; font-size: 0.85rem; color: var(--text); }
.pill.active { background: var(--accent-light); }
.results { list-style: none; padding: 0; display: grid; grid-template-columns: repeat(auto-fill, minmax(18rem, 1fr)); gap: 1.5rem; margin-top: 2rem; text-align: left; }
.result-card a { display: block; background: var(--card); padding: 1.5rem; border-radius: 0.75rem; border-top: 4px solid var(--accent); color: var(--text); }
.result-card p { color: var(--muted); font-size: 0.9rem; }
.empty, .loading { color: var(--muted); text-align: center; margin-top: 2rem; }
.hint { font-size: 0.85rem; }
.tabs { display: flex; gap: 1.5rem; border-bottom: 1px solid var(--border); margin-bottom: 1.5rem; }
.tab { padding: 0.5rem 0; color: var(--muted); }
.tab.active { color: var(--text); border-bottom: 2px solid var(--text); }
.doc-list { list-style: none; padding: 0; }
.doc-card { display: flex; gap: 1rem; background: var(--card); border: 1px solid var(--border); border-radius: 0.75rem; padding: 1rem; margin-bottom: 1rem; }
.doc-card.read { opacity: 0.7; }
.doc-open { flex: 1; }
.doc-open button { all: unset; cursor: pointer; display: block; }
.doc-actions { display: flex; flex-direction: column; gap: 0.5rem; }
.doc-actions button { border: none; background: none; font-size: 1.2rem; color: var(--border); cursor: pointer; }
.doc-actions .star.on { color: #f59e0b; }
.doc-actions .check.on { color: #16a34a; }
.article-header { border-bottom: 1px solid var(--border); padding-bottom: 1.5rem; margin-bottom: 2rem; }
.badge { font-size: 0.75rem; font-weight: 700; color: var(--accent); letter-spacing: 0.1em; }
.section-card { background: var(--card); border: 1px solid var(--border); border-radius: 0.75rem; padding: 1.5rem; margin-bottom: 1.5rem; }
.section-group h3 { font-size: 1rem; }
.note { background: var(--accent-light); padding: 1rem; border-radius: 0.5rem; font-size: 0.85rem; }
.article-error { text-align: center; margin-top: 4rem; }
.error-title { color: #b91c1c; font-weight: 600; }
.button { display: inline-block; background: var(--accent); color: #fff; padding: 0.5rem 1.25rem; border-radius: 0.5rem; }
.chat { background: var(--card); border: 1px solid var(--border); border-radius: 0.75rem; padding: 1rem; margin-top: 2rem; }
.chat-message { padding: 0.5rem 0.75rem; border-radius: 0.5rem; margin-bottom: 0.5rem; max-width: 80%; }
.chat-message.user { background: var(--accent); color: #fff; margin-left: auto; }
.chat-message.assistant { background: var(--bg); }
.chat-message time { font-size: 0.7rem; opacity: 0.6; }
.chat-form { display: flex; gap: 0.5rem; }
.loading-overlay { display: none; position: fixed; inset: 0; background: rgba(255,255,255,0.85); align-items: center; justify-content: center; flex-direction: column; z-index: 20; }
.loading-overlay.visible { display: flex; }
.spinner { width: 3rem; height: 3rem; border: 4px solid var(--accent-light); border-top-color: var(--accent); border-radius: 50%; animation: spin 1s linear infinite; }
@keyframes spin { to { transform: rotate(360deg); } }
.footer { background: var(--night); color: #e5e7eb; padding: 3rem 1.5rem 1.5rem; }
.footer-inner { max-width: 1100px; margin: 0 auto; display: grid; grid-template-columns: 2fr 1fr; gap: 2rem; }
.footer a { color: #d1d5db; }
.footer ul { list-style: none; padding: 0; }
.motto { color: #60a5fa; font-weight: 600; }
.copyright { text-align: center; color: #9ca3af; font-size: 0.85rem; margin-top: 2rem; }
.back-to-top { position: fixed; right: 1.5rem; bottom: 1.5rem; background: var(--accent); color: #fff; width: 2.5rem; height: 2.5rem; border-radius: 50%; display: flex; align-items: center; justify-content: center; }
.not-found { text-align: center; margin-top: 5rem; }
`
