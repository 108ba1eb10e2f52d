// Package scaffold provides the embedded templates the folio CLI uses to
// create new posts and new site directories.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

const siteRoot = "templates/site"

var funcs = template.FuncMap{
	"yaml":    yamlString,
	"initial": initial,
}

// PostData holds the frontmatter of a new post.
type PostData struct {
	Title       string
	Date        string // YYYY-MM-DD
	Category    string
	Description string
}

// SiteData holds the template variables for a new site.
type SiteData struct {
	Name string
	URL  string
	Date string // date of the sample post
}

// WritePost renders a new markdown post with its frontmatter to w.
func WritePost(w io.Writer, d PostData) error {
	tmpl, err := template.New("post.md.tmpl").Funcs(funcs).ParseFS(Templates, "templates/post.md.tmpl")
	if err != nil {
		return fmt.Errorf("parse post template: %w", err)
	}
	return tmpl.Execute(w, d)
}

// WriteSite creates dir and fills it with a starter content directory,
// static directory and .env.example. It refuses to touch an existing dir.
// created is called with each file path written and may be nil.
func WriteSite(dir string, d SiteData, created func(path string)) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}

	return fs.WalkDir(Templates, siteRoot, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(siteRoot, path)
		if err != nil {
			return err
		}

		outPath := filepath.Join(dir, relPath)
		outPath = strings.TrimSuffix(outPath, ".tmpl")

		// Rename dotenv to .env.example.
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if de.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		content, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Funcs(funcs).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, d); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		if created != nil {
			created(outPath)
		}
		return nil
	})
}

// ToTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func ToTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// yamlString renders s as a single-line YAML scalar, quoting when needed.
func yamlString(s string) (string, error) {
	b, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func initial(s string) string {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if r > unicode.MaxASCII {
				return "F"
			}
			return string(unicode.ToUpper(r))
		}
	}
	return "F"
}
