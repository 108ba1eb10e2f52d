package posts

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	s := NewStoreFS(fstest.MapFS{
		"good.md":         file("---\ntitle: Good\ndate: 2024-01-01\nimage: covers/good.png\n---\nbody\n"),
		"covers/good.png": file("png"),
		"no-title.md":     file("---\ndate: 2024-01-01\n---\n"),
		"bad-date.md":     file("---\ntitle: Bad\ndate: yesterday\n---\n"),
		"no-cover.md":     file("---\ntitle: C\ndate: 2024-01-01\nimage: covers/nope.png\n---\n"),
		"remote.md":       file("---\ntitle: R\ndate: 2024-01-01\nimage: https://example.com/x.png\n---\n"),
		"escape.md":       file("---\ntitle: E\ndate: 2024-01-01\nimage: ../outside.png\n---\n"),
		"hidden.md":       file("---\ntitle: H\ndate: 2024-01-01\nimage: .secret/x.png\n---\n"),
		"plain.md":        file("no header"),
		"twice.md":        file("---\ntitle: T\ndate: 2024-01-01\n---\n"),
		"twice.mdx":       file("---\ntitle: T2\ndate: 2024-01-01\n---\n"),
	})

	problems, err := s.Check()
	require.NoError(t, err)

	byFile := make(map[string][]string)
	for _, p := range problems {
		byFile[p.File] = append(byFile[p.File], p.Message)
	}

	assert.NotContains(t, byFile, "good.md")
	assert.NotContains(t, byFile, "remote.md")
	assert.NotContains(t, byFile, "twice.md")
	assert.Equal(t, []string{"missing title, the post has no detail page"}, byFile["no-title.md"])
	assert.Equal(t, []string{`unparseable date "yesterday"`}, byFile["bad-date.md"])
	assert.Equal(t, []string{`cover image "covers/nope.png" not found`}, byFile["no-cover.md"])
	assert.Equal(t, []string{`cover image "../outside.png" is not a file inside the content directory`}, byFile["escape.md"])
	assert.Equal(t, []string{`cover image ".secret/x.png" is not a file inside the content directory`}, byFile["hidden.md"])
	assert.Equal(t, []string{"no frontmatter", "missing title, the post has no detail page", "missing date"}, byFile["plain.md"])
	assert.Equal(t, []string{`duplicate slug "twice", shadowed by twice.md`}, byFile["twice.mdx"])
}

func TestCheckEmptyDirectory(t *testing.T) {
	problems, err := NewStore(t.TempDir()).Check()
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestCheckEscapingCoverKeepsOtherProblems(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"a.md": "---\ntitle: A\ndate: 2024-01-01\nimage: ../outside.png\n---\n",
		"b.md": "---\ntitle: B\ndate: someday\n---\n",
	})

	problems, err := NewStore(dir).Check()
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, "a.md", problems[0].File)
	assert.Equal(t, "b.md", problems[1].File)
	assert.Equal(t, `unparseable date "someday"`, problems[1].Message)
}
