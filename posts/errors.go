package posts

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable is returned when the content directory is missing
	// or cannot be listed.
	ErrStorageUnavailable = errors.New("posts: content directory unavailable")

	// ErrInvalidSlug is returned for slugs that could name a path outside the
	// content directory, or that are empty.
	ErrInvalidSlug = errors.New("posts: invalid slug")

	// ErrMalformedFrontmatter is returned in strict mode when the YAML header
	// cannot be parsed.
	ErrMalformedFrontmatter = errors.New("posts: malformed frontmatter")
)

// IOError reports a storage failure on a single file that is not a plain
// "does not exist".
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("posts: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func unavailable(dir string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, dir, err)
}
