package sections

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Section
	}{
		{
			name:  "two headed groups",
			input: "**Foo**\n- a\n- b\n\n**Bar**\n- c",
			want: []Section{
				{Heading: "Foo", Items: []string{"a", "b"}},
				{Heading: "Bar", Items: []string{"c"}},
			},
		},
		{
			name:  "heading without blank line before it",
			input: "**Foo**\n- a\n**Bar**\n- b",
			want: []Section{
				{Heading: "Foo", Items: []string{"a"}},
				{Heading: "Bar", Items: []string{"b"}},
			},
		},
		{
			name:  "text on the heading line",
			input: "**Sample size**: 12 mice\n- 6 flown",
			want: []Section{
				{Heading: "Sample size", Items: []string{"12 mice", "6 flown"}},
			},
		},
		{
			name:  "leading text before first heading",
			input: "Intro line\n\n**Foo**\n- a",
			want: []Section{
				{Heading: "", Items: []string{"Intro line"}},
				{Heading: "Foo", Items: []string{"a"}},
			},
		},
		{
			name:  "paragraph after blank line joins open heading",
			input: "**Foo**\n- a\n\n- b\n- c",
			want: []Section{
				{Heading: "Foo", Items: []string{"a", "b", "c"}},
			},
		},
		{
			name:  "heading with no items is dropped",
			input: "**Empty**\n\n**Full**\n- x",
			want: []Section{
				{Heading: "Full", Items: []string{"x"}},
			},
		},
		{
			name:  "indented bullets and CRLF",
			input: "**Foo**\r\n  - a\r\n  -b",
			want: []Section{
				{Heading: "Foo", Items: []string{"a", "b"}},
			},
		},
		{
			name:  "bold mid-line is not a heading",
			input: "- uses **CRISPR** screens",
			want: []Section{
				{Heading: "", Items: []string{"uses **CRISPR** screens"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) =\n  %+v\nwant\n  %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t\n", "**Only**"} {
		if got := Parse(input); len(got) != 0 {
			t.Errorf("Parse(%q) = %+v, want no sections", input, got)
		}
	}
}

func TestParseWithoutHeadingsKeepsAllLinesInOrder(t *testing.T) {
	inputs := []struct {
		text  string
		lines []string
	}{
		{"one", []string{"one"}},
		{"one\ntwo\n\nthree", []string{"one", "two", "three"}},
		{"\n\nalpha\n   \nbeta\ngamma\n", []string{"alpha", "beta", "gamma"}},
	}
	for _, in := range inputs {
		got := Parse(in.text)
		if len(got) != 1 {
			t.Fatalf("Parse(%q) returned %d sections, want 1", in.text, len(got))
		}
		if got[0].Heading != "" {
			t.Errorf("Parse(%q) heading = %q, want empty", in.text, got[0].Heading)
		}
		if !reflect.DeepEqual(got[0].Items, in.lines) {
			t.Errorf("Parse(%q) items = %v, want %v", in.text, got[0].Items, in.lines)
		}
	}
}

func TestSectionTitle(t *testing.T) {
	if got := (Section{}).Title(); got != OverviewTitle {
		t.Errorf("Title() = %q, want %q", got, OverviewTitle)
	}
	if got := (Section{Heading: "Methods"}).Title(); got != "Methods" {
		t.Errorf("Title() = %q, want Methods", got)
	}
}
