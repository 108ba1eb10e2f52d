package posts

import (
	"testing"
	"time"
)

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		header    string
		body      string
		hasHeader bool
	}{
		{
			name:      "basic",
			src:       "---\ntitle: A\n---\nbody\n",
			header:    "title: A\n",
			body:      "body\n",
			hasHeader: true,
		},
		{
			name:      "crlf",
			src:       "---\r\ntitle: A\r\n---\r\nbody\r\n",
			header:    "title: A\r\n",
			body:      "body\r\n",
			hasHeader: true,
		},
		{
			name:      "byte order mark",
			src:       "\ufeff---\ntitle: A\n---\nbody",
			header:    "title: A\n",
			body:      "body",
			hasHeader: true,
		},
		{
			name:      "no header",
			src:       "# Just markdown\n---\nmore\n",
			header:    "",
			body:      "# Just markdown\n---\nmore\n",
			hasHeader: false,
		},
		{
			name:      "empty header",
			src:       "---\n---\nbody",
			header:    "",
			body:      "body",
			hasHeader: true,
		},
		{
			name:      "unterminated header",
			src:       "---\ntitle: A\nbody",
			header:    "title: A\nbody",
			body:      "",
			hasHeader: true,
		},
		{
			name:      "closing fence at end of file",
			src:       "---\ntitle: A\n---",
			header:    "title: A\n",
			body:      "",
			hasHeader: true,
		},
		{
			name:      "horizontal rule in body",
			src:       "---\ntitle: A\n---\nintro\n---\noutro\n",
			header:    "title: A\n",
			body:      "intro\n---\noutro\n",
			hasHeader: true,
		},
		{
			name:      "four dashes is not a fence",
			src:       "----\ntitle: A\n",
			header:    "",
			body:      "----\ntitle: A\n",
			hasHeader: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body, ok := splitFrontmatter(tt.src)
			if header != tt.header {
				t.Errorf("header = %q, want %q", header, tt.header)
			}
			if body != tt.body {
				t.Errorf("body = %q, want %q", body, tt.body)
			}
			if ok != tt.hasHeader {
				t.Errorf("ok = %v, want %v", ok, tt.hasHeader)
			}
		})
	}
}

func TestParseHeaderKeepsSourceSpelling(t *testing.T) {
	fields, err := parseHeader("date: 2024-01-01\nversion: 1.10\ncount: 007\nempty: ~\nalias: &a hi\nref: *a\n")
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	want := map[string]string{
		"date":    "2024-01-01",
		"version": "1.10",
		"count":   "007",
		"alias":   "hi",
		"ref":     "hi",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("fields[%q] = %q, want %q", k, fields[k], v)
		}
	}
	if _, ok := fields["empty"]; ok {
		t.Errorf("null value should be dropped, got %q", fields["empty"])
	}
}

func TestParseHeaderRejectsNonMapping(t *testing.T) {
	if _, err := parseHeader("- a\n- b\n"); err == nil {
		t.Fatal("expected error for a sequence header")
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2025/06/19", "2025-06-19"},
		{"2025-06-19", "2025-06-19"},
		{"2025/06-19", "2025-06-19"},
		{" 2025/06/19 ", "2025-06-19"},
		{"June 19, 2025", "June 19, 2025"},
		{"2025/6/19", "2025/6/19"},
		{"2025-06-19T08:00:00Z", "2025-06-19T08:00:00Z"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeDate(tt.input); got != tt.expected {
			t.Errorf("normalizeDate(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2025-06-19", time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)},
		{"2025-06-19T08:30:00+02:00", time.Date(2025, 6, 19, 6, 30, 0, 0, time.UTC)},
		{"2025-06-19 08:30:00", time.Date(2025, 6, 19, 8, 30, 0, 0, time.UTC)},
		{"June 19, 2025", time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)},
		{"Jun 19, 2025", time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)},
		{"not a date", time.Time{}},
		{"", time.Time{}},
	}
	for _, tt := range tests {
		if got := parseDate(tt.input); !got.Equal(tt.want) {
			t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
