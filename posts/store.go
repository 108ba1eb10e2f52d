package posts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Lookup order for a slug. ".md" shadows ".mdx".
var extensions = []string{".md", ".mdx"}

var reMarkdownExt = regexp.MustCompile(`(?i)\.mdx?$`)

// Store reads posts from a content directory. It holds no post data between
// calls, so it is safe for concurrent use.
type Store struct {
	dir      string
	fsys     fs.FS
	log      *zap.Logger
	strict   bool
	debounce time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for content warnings.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStrictFrontmatter makes unparseable YAML headers an error instead of
// silently defaulting every field.
func WithStrictFrontmatter() Option {
	return func(s *Store) {
		s.strict = true
	}
}

// WithWatchDebounce sets how long Watch waits for a burst of filesystem
// events to settle.
func WithWatchDebounce(d time.Duration) Option {
	return func(s *Store) {
		s.debounce = d
	}
}

// NewStore returns a Store over the directory dir. Every read is confined to
// dir through os.Root, so symlinks and ".." cannot escape it. The directory is
// not checked here; a missing directory surfaces as ErrStorageUnavailable on
// the first read.
func NewStore(dir string, opts ...Option) *Store {
	return newStore(dir, nil, opts)
}

// NewStoreFS returns a Store over an arbitrary file system, such as embedded
// content.
func NewStoreFS(fsys fs.FS, opts ...Option) *Store {
	return newStore("", fsys, opts)
}

func newStore(dir string, fsys fs.FS, opts []Option) *Store {
	s := &Store{
		dir:      dir,
		fsys:     fsys,
		log:      zap.NewNop(),
		debounce: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the content directory, or "" for fs.FS-backed stores.
func (s *Store) Dir() string {
	return s.dir
}

// open returns a file system rooted at the content directory and a func that
// releases it.
func (s *Store) open() (fs.FS, func(), error) {
	if s.fsys != nil {
		return s.fsys, func() {}, nil
	}
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return nil, nil, unavailable(s.dir, err)
	}
	return root.FS(), func() { root.Close() }, nil
}

// ListAllPosts returns every post in the content directory, newest first.
func (s *Store) ListAllPosts() ([]Post, error) {
	fsys, release, err := s.open()
	if err != nil {
		return nil, err
	}
	defer release()

	kept, shadowed, err := s.scan(fsys)
	if err != nil {
		return nil, err
	}
	for _, e := range shadowed {
		s.log.Warn("duplicate post slug, file ignored",
			zap.String("slug", e.slug),
			zap.String("file", e.name))
	}

	posts := make([]Post, 0, len(kept))
	for _, e := range kept {
		b, err := fs.ReadFile(fsys, e.name)
		if err != nil {
			return nil, &IOError{Op: "read", Path: e.name, Err: err}
		}
		p, err := parseDocument(e.slug, string(b), s.strict)
		if err != nil {
			return nil, fmt.Errorf("posts: parse %s: %w", e.name, err)
		}
		posts = append(posts, p)
	}
	sortNewestFirst(posts)
	return posts, nil
}

// GetPostBySlug returns the post for slug. The lookup ignores case and a
// trailing ".md"/".mdx". The boolean is false when no such file exists or the
// file has no title; neither case is an error.
func (s *Store) GetPostBySlug(slug string) (Post, bool, error) {
	slug, err := NormalizeSlug(slug)
	if err != nil {
		return Post{}, false, err
	}

	fsys, release, err := s.open()
	if err != nil {
		return Post{}, false, err
	}
	defer release()

	name, err := s.resolve(fsys, slug)
	if err != nil || name == "" {
		return Post{}, false, err
	}
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Post{}, false, nil
		}
		return Post{}, false, &IOError{Op: "read", Path: name, Err: err}
	}
	p, err := parseDocument(slug, string(b), s.strict)
	if err != nil {
		return Post{}, false, fmt.Errorf("posts: parse %s: %w", name, err)
	}
	if p.Title == "" {
		return Post{}, false, nil
	}
	return p, true, nil
}

// ReadAsset reads a non-markdown file, such as a cover image, from inside the
// content directory. name is a slash-separated path relative to the directory.
func (s *Store) ReadAsset(name string) ([]byte, error) {
	name = path.Clean(strings.TrimPrefix(name, "./"))
	if !validAsset(name) {
		return nil, fmt.Errorf("posts: asset %q: %w", name, fs.ErrInvalid)
	}
	fsys, release, err := s.open()
	if err != nil {
		return nil, err
	}
	defer release()

	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, &IOError{Op: "read", Path: name, Err: err}
	}
	return b, nil
}

// NormalizeSlug strips a markdown extension and lower-cases slug. It returns
// ErrInvalidSlug for anything that is not a single plain path element.
func NormalizeSlug(slug string) (string, error) {
	slug = strings.ToLower(reMarkdownExt.ReplaceAllString(slug, ""))
	switch {
	case slug == "",
		strings.HasPrefix(slug, "."),
		strings.ContainsAny(slug, "/\\\x00"),
		!filepath.IsLocal(slug),
		!fs.ValidPath(slug):
		return "", ErrInvalidSlug
	}
	return slug, nil
}

// AssetPath returns the content-relative path of the post's cover image. It
// reports false when the image is absent, is a URL to be used as is, or names
// a file ReadAsset would refuse, such as one outside the content directory.
func AssetPath(p Post) (string, bool) {
	if p.Image == "" || remoteImage(p.Image) {
		return "", false
	}
	name := path.Clean(strings.TrimPrefix(p.Image, "./"))
	if !validAsset(name) {
		return "", false
	}
	return name, true
}

func remoteImage(img string) bool {
	return strings.HasPrefix(img, "/") || strings.HasPrefix(img, "data:") || strings.Contains(img, "://")
}

func validAsset(name string) bool {
	return fs.ValidPath(name) && name != "." && !hasHiddenElem(name) && !reMarkdownExt.MatchString(name)
}

type entry struct {
	name string
	slug string
	rank int // index into extensions
}

// scan lists markdown files in the content directory. Files whose slug is
// already taken by a higher-priority file are returned separately.
func (s *Store) scan(fsys fs.FS) (kept, shadowed []entry, err error) {
	des, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, nil, unavailable(s.dir, err)
	}
	var all []entry
	for _, de := range des {
		name := de.Name()
		if de.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		slug, rank, ok := markdownSlug(name)
		if !ok {
			continue
		}
		all = append(all, entry{name: name, slug: slug, rank: rank})
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.slug != b.slug {
			return a.slug < b.slug
		}
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		return a.name < b.name
	})
	for i, e := range all {
		if i > 0 && all[i-1].slug == e.slug {
			shadowed = append(shadowed, e)
			continue
		}
		kept = append(kept, e)
	}
	return kept, shadowed, nil
}

// resolve finds the file backing slug: exact names first, then a
// case-insensitive match. It returns "" when nothing matches.
func (s *Store) resolve(fsys fs.FS, slug string) (string, error) {
	for _, ext := range extensions {
		name := slug + ext
		info, err := fs.Stat(fsys, name)
		if err == nil {
			if info.IsDir() {
				continue
			}
			return name, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", &IOError{Op: "stat", Path: name, Err: err}
		}
	}
	kept, _, err := s.scan(fsys)
	if err != nil {
		return "", err
	}
	for _, e := range kept {
		if e.slug == slug {
			return e.name, nil
		}
	}
	return "", nil
}

func markdownSlug(name string) (string, int, bool) {
	ext := strings.ToLower(path.Ext(name))
	for rank, want := range extensions {
		if ext == want {
			base := name[:len(name)-len(ext)]
			if base == "" {
				return "", 0, false
			}
			return strings.ToLower(base), rank, true
		}
	}
	return "", 0, false
}

func hasHiddenElem(name string) bool {
	for _, elem := range strings.Split(name, "/") {
		if strings.HasPrefix(elem, ".") {
			return true
		}
	}
	return false
}
