package posts

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Keys with a dedicated Post field. Everything else lands in Post.Extra.
var knownKeys = map[string]struct{}{
	"title":       {},
	"date":        {},
	"description": {},
	"category":    {},
	"image":       {},
}

// 2025-06-19 or 2025/06/19 (mixed separators included)
var reBareDate = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}$`)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"01/02/2006",
	time.RFC1123Z,
	time.RFC1123,
}

// splitFrontmatter separates a leading "---" fenced header from the body.
// A file without an opening fence is all body; an unterminated header
// swallows the rest of the file.
func splitFrontmatter(src string) (header, body string, ok bool) {
	src = strings.TrimPrefix(src, "\ufeff")
	first, rest, more := cutLine(src)
	if !isFence(first) {
		return "", src, false
	}
	if !more {
		return "", "", true
	}
	pos := 0
	for {
		line, after, more := cutLine(rest[pos:])
		if isFence(line) {
			return rest[:pos], after, true
		}
		if !more {
			return rest, "", true
		}
		pos += len(line) + 1
	}
}

func cutLine(s string) (line, rest string, found bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

func isFence(line string) bool {
	return strings.TrimRight(line, " \t\r") == fence
}

// parseHeader decodes the YAML header into flat string fields. Decoding goes
// through yaml.Node so timestamps and numbers keep their source spelling.
func parseHeader(header string) (map[string]string, error) {
	fields := make(map[string]string)
	if strings.TrimSpace(header) == "" {
		return fields, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(header), &doc); err != nil {
		return fields, fmt.Errorf("%w: %w", ErrMalformedFrontmatter, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return fields, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fields, fmt.Errorf("%w: header is not a key/value mapping", ErrMalformedFrontmatter)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if v, ok := scalarValue(val); ok {
			fields[key.Value] = v
		}
	}
	return fields, nil
}

func scalarValue(n *yaml.Node) (string, bool) {
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return "", false
		}
		return scalarValue(n.Alias)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return "", false
		}
		return n.Value, true
	case yaml.SequenceNode:
		var items []string
		for _, c := range n.Content {
			if v, ok := scalarValue(c); ok && v != "" {
				items = append(items, v)
			}
		}
		return strings.Join(items, ", "), true
	}
	return "", false
}

// parseDocument turns raw file contents into a Post. In lenient mode a broken
// header leaves every field at its default and still returns the body.
func parseDocument(slug, src string, strict bool) (Post, error) {
	header, body, _ := splitFrontmatter(src)
	fields, err := parseHeader(header)
	if err != nil {
		if strict {
			return Post{}, err
		}
		fields = map[string]string{}
	}
	return buildPost(slug, fields, body), nil
}

func buildPost(slug string, fields map[string]string, body string) Post {
	date := normalizeDate(fields["date"])
	p := Post{
		Slug:        slug,
		Title:       fields["title"],
		Date:        date,
		Published:   parseDate(date),
		Description: fields["description"],
		Category:    fields["category"],
		Image:       strings.TrimSpace(fields["image"]),
		Content:     body,
		Link:        "/blog/" + slug + "/",
	}
	for k, v := range fields {
		if _, ok := knownKeys[k]; ok {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		p.Extra[k] = v
	}
	return p
}

// normalizeDate rewrites bare calendar dates to use "-" separators. Other
// formats pass through untouched.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if reBareDate.MatchString(s) {
		return strings.ReplaceAll(s, "/", "-")
	}
	return s
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
