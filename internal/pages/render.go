package pages

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/backend"
	"github.com/ziadkadry99/research-reader/internal/browse"
	"github.com/ziadkadry99/research-reader/internal/sections"
)

type groupView struct {
	Title string
	Items []template.HTML
}

type sectionView struct {
	Key    string
	Label  string
	Groups []groupView
}

// renderer holds the parsed page templates and the markdown converter used
// for section items.
type renderer struct {
	md     goldmark.Markdown
	pages  map[string]*template.Template
	logger *zap.Logger
}

func newRenderer(logger *zap.Logger) *renderer {
	// Items are single lines of prose: only paragraphs are recognized as
	// blocks, so "1. ", "# " or "> " prefixes stay literal text.
	md := goldmark.New(
		goldmark.WithParser(parser.NewParser(
			parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
			parser.WithInlineParsers(parser.DefaultInlineParsers()...),
			parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
		)),
		goldmark.WithExtensions(extension.GFM),
	)

	funcs := template.FuncMap{
		"articleLink": browse.ArticleLink,
		"join":        strings.Join,
	}
	pages := map[string]*template.Template{}
	for name, body := range map[string]string{
		"home":     homeTemplate,
		"topic":    topicTemplate,
		"article":  articleTemplate,
		"notfound": notFoundTemplate,
	} {
		tmpl := template.Must(template.New(name).Funcs(funcs).Parse(layoutTemplate))
		pages[name] = template.Must(tmpl.Parse(body))
	}

	return &renderer{md: md, pages: pages, logger: logger}
}

// inline converts one item of pseudo-markdown to HTML without the wrapping
// paragraph. Raw HTML in the input is not passed through.
func (rr *renderer) inline(text string) template.HTML {
	var buf bytes.Buffer
	if err := rr.md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out)
}

// articleSections renders every non-empty summary field through the section
// parser, in display order.
func (rr *renderer) articleSections(summary backend.Summary) []sectionView {
	var views []sectionView
	for _, f := range backend.DisplayOrder {
		content := summary.Field(f.Key)
		if strings.TrimSpace(content) == "" {
			continue
		}
		view := sectionView{Key: f.Key, Label: f.Label}
		for _, sec := range sections.Parse(content) {
			g := groupView{Title: sec.Title()}
			for _, item := range sec.Items {
				g.Items = append(g.Items, rr.inline(item))
			}
			view.Groups = append(view.Groups, g)
		}
		if len(view.Groups) == 0 {
			continue
		}
		views = append(views, view)
	}
	return views
}

// render executes a page template into the response. Rendering errors are
// logged, never shown.
func (rr *renderer) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := rr.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		rr.logger.Error("rendering page", zap.String("page", page), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
