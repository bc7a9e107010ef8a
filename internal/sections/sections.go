// Package sections turns the loosely structured summary text produced by
// the backend (bold headings followed by dash bullets) into heading/items
// groups for display.
package sections

import (
	"regexp"
	"strings"
)

// OverviewTitle labels a group that has no heading of its own.
const OverviewTitle = "Overview"

var (
	headingRe = regexp.MustCompile(`^\*\*(.+?)\*\*:?\s*`)
	bulletRe  = regexp.MustCompile(`^-\s*`)
)

// Section is one heading with its bullet items. Heading is empty for text
// that appeared before any bold heading.
type Section struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// Title returns the heading, or OverviewTitle for a heading-less group.
func (s Section) Title() string {
	if s.Heading == "" {
		return OverviewTitle
	}
	return s.Heading
}

// Parse splits content into sections. Segments are separated by blank
// lines and start anew at every line beginning with "**". A segment that
// opens with **Heading** starts a new section whose items are the rest of
// that segment; any other segment's lines are appended to the open section.
// Sections without items are dropped. Parse never fails: empty or
// whitespace-only input yields no sections.
func Parse(content string) []Section {
	var (
		out     []Section
		heading string
		items   []string
		open    bool
	)

	flush := func() {
		if open && len(items) > 0 {
			out = append(out, Section{Heading: heading, Items: items})
		}
		heading, items, open = "", nil, false
	}

	for _, seg := range segments(content) {
		if m := headingRe.FindStringSubmatchIndex(seg); m != nil {
			flush()
			heading = strings.TrimSpace(seg[m[2]:m[3]])
			items = splitItems(seg[m[1]:])
			open = true
			continue
		}
		items = append(items, splitItems(seg)...)
		open = true
	}
	flush()

	return out
}

// segments splits content on blank lines and before lines starting with
// "**". Each returned segment is trimmed and non-empty.
func segments(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var (
		segs []string
		cur  []string
	)
	flush := func() {
		if seg := strings.TrimSpace(strings.Join(cur, "\n")); seg != "" {
			segs = append(segs, seg)
		}
		cur = nil
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, "**") {
			flush()
		}
		cur = append(cur, line)
	}
	flush()

	return segs
}

// splitItems returns the non-empty lines of text, each stripped of a
// leading dash bullet.
func splitItems(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(bulletRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}
