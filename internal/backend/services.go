package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	body, err := c.get(ctx, "/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	cats, err := decodeList[Category](body)
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	return cats, nil
}

// DocumentsByCategory lists the documents of one category.
func (c *Client) DocumentsByCategory(ctx context.Context, categoryID int) ([]Document, error) {
	body, err := c.get(ctx, "/categories/"+strconv.Itoa(categoryID)+"/documents", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching documents for category %d: %w", categoryID, err)
	}
	docs, err := decodeList[Document](body)
	if err != nil {
		return nil, fmt.Errorf("fetching documents for category %d: %w", categoryID, err)
	}
	return docs, nil
}

// Search runs a free-text document search.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Document, error) {
	body, err := c.post(ctx, "/search", req)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	docs, err := decodeList[Document](body)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	return docs, nil
}

// ArticleSummary fetches the structured summary of the article at articleURL.
// Partial payloads are defaulted field by field rather than rejected.
func (c *Client) ArticleSummary(ctx context.Context, articleURL string) (*ArticleSummary, error) {
	body, err := c.get(ctx, "/article_content", url.Values{"url": {articleURL}})
	if err != nil {
		return nil, fmt.Errorf("fetching article summary: %w", err)
	}
	data, err := unwrap(body)
	if err != nil {
		return nil, fmt.Errorf("fetching article summary: %w", err)
	}
	article, err := normalizeArticle(data)
	if err != nil {
		return nil, fmt.Errorf("fetching article summary: %w", err)
	}
	return article, nil
}

// AskArticle posts a question about one article and returns the answer.
// An empty answer is returned as-is; callers decide the fallback text.
func (c *Client) AskArticle(ctx context.Context, req ChatRequest) (string, error) {
	body, err := c.post(ctx, "/chat_article", req)
	if err != nil {
		return "", fmt.Errorf("asking about article: %w", err)
	}
	var resp chatResponse
	if err := decodeJSON(body, &resp); err != nil {
		return "", fmt.Errorf("asking about article: %w", err)
	}
	return resp.Answer, nil
}

// Healthy reports whether the backend answers the categories endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	_, err := c.get(ctx, "/categories", nil)
	return err == nil
}
