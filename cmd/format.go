package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/ziadkadry99/research-reader/internal/backend"
	"github.com/ziadkadry99/research-reader/internal/sections"
)

const (
	titleWidth   = 48
	summaryWidth = 60
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
)

// cell pads or truncates s to exactly width display columns, so titles in
// CJK or with emoji still line up.
func cell(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func printCategories(w io.Writer, cats []backend.Category) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return
	}
	headingColor.Fprintf(w, "%-4s %s\n", "ID", "NAME")
	for _, c := range cats {
		fmt.Fprintf(w, "%-4d %s\n", c.ID, c.Name)
	}
}

func printDocuments(w io.Writer, docs []backend.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents found matching your criteria.")
		return
	}
	headingColor.Fprintf(w, "%-6s %s %s\n", "ID", cell("TITLE", titleWidth), "SUMMARY")
	for _, d := range docs {
		summary := d.Summary
		if summary == "" {
			summary = "Still Researching"
		}
		fmt.Fprintf(w, "%-6s %s %s\n", strconv.Itoa(d.ID), cell(d.Title, titleWidth), cell(summary, summaryWidth))
		mutedColor.Fprintf(w, "%-6s %s\n", "", d.Link)
	}
	fmt.Fprintf(w, "\n%d document(s)\n", len(docs))
}

func printArticle(w io.Writer, a *backend.ArticleSummary) {
	headingColor.Fprintln(w, a.Title)
	if len(a.Authors) > 0 {
		fmt.Fprintf(w, "Authors: %s\n", strings.Join(a.Authors, ", "))
	}
	if a.PDFURL != "" {
		mutedColor.Fprintf(w, "PDF: %s\n", a.PDFURL)
	}

	wrote := false
	for _, f := range backend.DisplayOrder {
		groups := sections.Parse(a.Summary.Field(f.Key))
		if len(groups) == 0 {
			continue
		}
		wrote = true
		fmt.Fprintln(w)
		labelColor.Fprintln(w, f.Label)
		for _, g := range groups {
			fmt.Fprintf(w, "  %s\n", g.Title())
			for _, item := range g.Items {
				fmt.Fprintf(w, "    • %s\n", item)
			}
		}
	}
	if !wrote {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No summary content available")
		mutedColor.Fprintln(w, "The article analysis did not return structured content")
	}

	fmt.Fprintln(w)
	mutedColor.Fprintln(w, "Note: This summary was automatically generated using AI. Please refer to the original article for complete details and validation.")
}
