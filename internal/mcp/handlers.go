package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/research-reader/internal/backend"
	"github.com/ziadkadry99/research-reader/internal/sections"
)

// handleListCategories lists all categories.
func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cats, err := s.library.Categories(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing categories failed: %v", err)), nil
	}
	if len(cats) == 0 {
		return mcp.NewToolResultText("No categories found."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d categories:\n", len(cats)))
	for _, c := range cats {
		sb.WriteString(fmt.Sprintf("- [%d] %s\n", c.ID, c.Name))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListDocuments lists the documents of one category.
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetInt("category_id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("missing required parameter: category_id"), nil
	}

	docs, err := s.library.DocumentsByCategory(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing documents failed: %v", err)), nil
	}
	if len(docs) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No documents found for category %d.", id)), nil
	}
	return mcp.NewToolResultText(formatDocuments(docs)), nil
}

// handleSearchDocuments runs a free-text search.
func (s *Server) handleSearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", s.searchLimit)
	if limit <= 0 {
		limit = s.searchLimit
	}

	docs, err := s.library.Search(ctx, backend.SearchRequest{Query: strings.TrimSpace(query), Limit: limit})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(docs) == 0 {
		return mcp.NewToolResultText("No documents found matching your criteria."), nil
	}
	return mcp.NewToolResultText(formatDocuments(docs)), nil
}

// handleGetArticleSummary fetches and formats one article's summary.
func (s *Server) handleGetArticleSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	articleURL, err := request.RequireString("url")
	if err != nil || articleURL == "" {
		return mcp.NewToolResultError("No URL provided"), nil
	}

	article, err := s.library.ArticleSummary(ctx, articleURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading article failed: %v", err)), nil
	}
	return mcp.NewToolResultText(FormatArticle(article)), nil
}

// handleAskArticle answers a question using the article's summary as context.
func (s *Server) handleAskArticle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	articleURL, err := request.RequireString("url")
	if err != nil || articleURL == "" {
		return mcp.NewToolResultError("No URL provided"), nil
	}
	question, err := request.RequireString("question")
	if err != nil || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	article, err := s.library.ArticleSummary(ctx, articleURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading article failed: %v", err)), nil
	}
	answer, err := s.library.AskArticle(ctx, backend.ChatRequest{
		Question:       strings.TrimSpace(question),
		ArticleTitle:   article.Title,
		ArticleContext: article.Context(),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("asking failed: %v", err)), nil
	}
	if strings.TrimSpace(answer) == "" {
		return mcp.NewToolResultText("No answer was generated."), nil
	}
	return mcp.NewToolResultText(answer), nil
}

// formatDocuments renders a document list for agent consumption.
func formatDocuments(docs []backend.Document) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d document(s):\n", len(docs)))

	for i, d := range docs {
		sb.WriteString(fmt.Sprintf("\n--- Document %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("ID: %d\n", d.ID))
		sb.WriteString(fmt.Sprintf("Title: %s\n", d.Title))
		if d.Link != "" {
			sb.WriteString(fmt.Sprintf("Link: %s\n", d.Link))
		}
		if d.Summary != "" {
			sb.WriteString("\n")
			sb.WriteString(d.Summary)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FormatArticle renders an article summary as plain text with each
// non-empty field split into its heading groups.
func FormatArticle(a *backend.ArticleSummary) string {
	var sb strings.Builder
	sb.WriteString("# " + a.Title + "\n")
	if len(a.Authors) > 0 {
		sb.WriteString("Authors: " + strings.Join(a.Authors, ", ") + "\n")
	}
	if a.PDFURL != "" {
		sb.WriteString("PDF: " + a.PDFURL + "\n")
	}

	wrote := false
	for _, f := range backend.DisplayOrder {
		groups := sections.Parse(a.Summary.Field(f.Key))
		if len(groups) == 0 {
			continue
		}
		wrote = true
		sb.WriteString("\n## " + f.Label + "\n")
		for _, g := range groups {
			sb.WriteString("\n### " + g.Title() + "\n")
			for _, item := range g.Items {
				sb.WriteString("- " + item + "\n")
			}
		}
	}
	if !wrote {
		sb.WriteString("\nNo summary content available.\n")
	}
	return sb.String()
}
