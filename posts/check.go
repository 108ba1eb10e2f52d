package posts

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

// Problem is a content issue found by Check.
type Problem struct {
	File    string
	Slug    string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.File, p.Message)
}

// Check lints every markdown file in the content directory. Problems are
// content issues; the error is reserved for storage failures.
func (s *Store) Check() ([]Problem, error) {
	fsys, release, err := s.open()
	if err != nil {
		return nil, err
	}
	defer release()

	kept, shadowed, err := s.scan(fsys)
	if err != nil {
		return nil, err
	}

	var problems []Problem
	owner := make(map[string]string, len(kept))
	for _, e := range kept {
		owner[e.slug] = e.name
	}
	for _, e := range shadowed {
		problems = append(problems, Problem{
			File:    e.name,
			Slug:    e.slug,
			Message: fmt.Sprintf("duplicate slug %q, shadowed by %s", e.slug, owner[e.slug]),
		})
	}

	for _, e := range kept {
		b, err := fs.ReadFile(fsys, e.name)
		if err != nil {
			return nil, &IOError{Op: "read", Path: e.name, Err: err}
		}
		add := func(format string, args ...any) {
			problems = append(problems, Problem{File: e.name, Slug: e.slug, Message: fmt.Sprintf(format, args...)})
		}

		header, body, hasHeader := splitFrontmatter(string(b))
		if !hasHeader {
			add("no frontmatter")
		}
		fields, err := parseHeader(header)
		if err != nil {
			add("%v", err)
		}
		p := buildPost(e.slug, fields, body)
		if p.Title == "" {
			add("missing title, the post has no detail page")
		}
		switch {
		case p.Date == "":
			add("missing date")
		case p.Published.IsZero():
			add("unparseable date %q", p.Date)
		}
		if p.HasImage() && !p.ExternalImage() {
			asset, ok := AssetPath(p)
			if !ok {
				add("cover image %q is not a file inside the content directory", p.Image)
				continue
			}
			if _, err := fs.Stat(fsys, asset); err != nil {
				switch {
				case errors.Is(err, fs.ErrNotExist):
					add("cover image %q not found", p.Image)
				case errors.Is(err, fs.ErrInvalid):
					add("cover image %q is not a file inside the content directory", p.Image)
				default:
					return nil, &IOError{Op: "stat", Path: asset, Err: err}
				}
			}
		}
	}

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].File < problems[j].File
	})
	return problems, nil
}
