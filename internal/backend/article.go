package backend

import (
	"encoding/json"
	"fmt"
)

// UntitledArticle is the title used when the backend omits one.
const UntitledArticle = "Untitled Article"

// rawArticle mirrors the article payload loosely so each field can be
// validated on its own.
type rawArticle struct {
	Title   json.RawMessage `json:"title"`
	Authors json.RawMessage `json:"authors"`
	Summary json.RawMessage `json:"summary"`
	PDFURL  json.RawMessage `json:"pdf_url"`
}

// normalizeArticle applies the defaulting rules: missing title becomes
// UntitledArticle, missing or non-array authors become an empty list, a
// missing or non-object summary becomes all-empty, absent summary keys
// become "", and pdf_url is optional.
func normalizeArticle(data json.RawMessage) (*ArticleSummary, error) {
	var raw rawArticle
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding article: %w", err)
	}

	article := &ArticleSummary{
		Title:   stringOr(raw.Title, ""),
		Authors: []string{},
		PDFURL:  stringOr(raw.PDFURL, ""),
	}
	if article.Title == "" {
		article.Title = UntitledArticle
	}

	var authors []any
	if json.Unmarshal(raw.Authors, &authors) == nil {
		for _, a := range authors {
			switch v := a.(type) {
			case string:
				article.Authors = append(article.Authors, v)
			case nil:
			default:
				article.Authors = append(article.Authors, fmt.Sprint(v))
			}
		}
	}

	var fields map[string]any
	if json.Unmarshal(raw.Summary, &fields) == nil {
		for _, key := range SummaryKeys {
			switch v := fields[key].(type) {
			case string:
				article.Summary.set(key, v)
			case nil:
			default:
				article.Summary.set(key, fmt.Sprint(v))
			}
		}
	}

	return article, nil
}

// stringOr returns the JSON string in raw, or fallback for anything else.
func stringOr(raw json.RawMessage, fallback string) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return fallback
	}
	return s
}

func decodeJSON(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Context flattens the non-empty summary fields into labelled paragraphs,
// used as the article context sent with chat questions.
func (a *ArticleSummary) Context() string {
	var out []byte
	for _, key := range SummaryKeys {
		text := a.Summary.Field(key)
		if text == "" {
			continue
		}
		if len(out) > 0 {
			out = append(out, "\n\n"...)
		}
		out = append(out, key...)
		out = append(out, ":\n"...)
		out = append(out, text...)
	}
	return string(out)
}
