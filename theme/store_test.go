package theme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPersister struct {
	loadErr, saveErr error
}

func (f failingPersister) Load() (string, error) { return "", f.loadErr }
func (f failingPersister) Save(string) error { return f.saveErr }

func TestNewStoreDefaultsToAmberAndPersists(t *testing.T) {
	p := &MemoryPersister{}
	s, err := NewStore(p)
	require.NoError(t, err)
	assert.Equal(t, "amber", s.Get().Name)

	saved, _ := p.Load()
	assert.Equal(t, "amber", saved)
}

func TestNewStoreUnknownPreferenceFallsBack(t *testing.T) {
	p := &MemoryPersister{}
	require.NoError(t, p.Save("sunrise"))
	s, err := NewStore(p)
	require.NoError(t, err)
	assert.Equal(t, "green", s.Get().Name)
}

func TestNewStoreUsesSavedPreference(t *testing.T) {
	p := &MemoryPersister{}
	require.NoError(t, p.Save("Purple"))
	s, err := NewStore(p)
	require.NoError(t, err)
	assert.Equal(t, "purple", s.Get().Name)
}

func TestNewStorePersisterErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewStore(failingPersister{loadErr: boom})
	assert.ErrorIs(t, err, boom)
	_, err = NewStore(failingPersister{saveErr: boom})
	assert.ErrorIs(t, err, boom)
}

func TestSetNotifiesOnChange(t *testing.T) {
	p := &MemoryPersister{}
	s, err := NewStore(p)
	require.NoError(t, err)

	var got []string
	s.Subscribe(func(t Theme) { got = append(got, "first:"+t.Name) })
	s.Subscribe(func(t Theme) { got = append(got, "second:"+t.Name) })

	require.NoError(t, s.Set("red"))
	require.NoError(t, s.Set("red"))
	require.NoError(t, s.Set("CYAN"))

	assert.Equal(t, []string{"first:red", "second:red", "first:cyan", "second:cyan"}, got)
	assert.Equal(t, "cyan", s.Get().Name)
	saved, _ := p.Load()
	assert.Equal(t, "cyan", saved)
}

func TestSetUnknownTheme(t *testing.T) {
	s, err := NewStore(&MemoryPersister{})
	require.NoError(t, err)
	calls := 0
	s.Subscribe(func(Theme) { calls++ })

	err = s.Set("evangelion")
	assert.ErrorIs(t, err, ErrUnknownTheme)
	assert.Equal(t, "amber", s.Get().Name)
	assert.Zero(t, calls)
}

func TestUnsubscribe(t *testing.T) {
	s, err := NewStore(&MemoryPersister{})
	require.NoError(t, err)

	calls := 0
	unsubscribe := s.Subscribe(func(Theme) { calls++ })
	require.NoError(t, s.Set("blue"))
	unsubscribe()
	unsubscribe()
	require.NoError(t, s.Set("pink"))
	assert.Equal(t, 1, calls)
}

func TestSubscriberMaySetAgain(t *testing.T) {
	s, err := NewStore(&MemoryPersister{})
	require.NoError(t, err)
	s.Subscribe(func(t Theme) {
		if t.Name == "red" {
			_ = s.Set("green")
		}
	})
	require.NoError(t, s.Set("red"))
	assert.Equal(t, "green", s.Get().Name)
}

func TestConcurrentAccess(t *testing.T) {
	s, err := NewStore(&MemoryPersister{})
	require.NoError(t, err)
	names := []string{"green", "amber", "purple", "blue"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			unsub := s.Subscribe(func(Theme) {})
			_ = s.Set(names[i%len(names)])
			_ = s.Get()
			unsub()
		}(i)
	}
	wg.Wait()
	_, ok := Lookup(s.Get().Name)
	assert.True(t, ok)
}

func TestConcurrentSetPersistsActiveTheme(t *testing.T) {
	p := &MemoryPersister{}
	s, err := NewStore(p)
	require.NoError(t, err)
	names := []string{"green", "amber", "purple", "blue"}

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Set(names[i%len(names)])
		}(i)
	}
	wg.Wait()

	saved, _ := p.Load()
	assert.Equal(t, s.Get().Name, saved)
}

// brokenSavePersister loads a saved theme but refuses further saves.
type brokenSavePersister struct{ name string }

func (b brokenSavePersister) Load() (string, error) { return b.name, nil }
func (b brokenSavePersister) Save(string) error { return errors.New("disk full") }

func TestSetSaveFailureKeepsTheme(t *testing.T) {
	s, err := NewStore(brokenSavePersister{name: "blue"})
	require.NoError(t, err)
	notified := 0
	defer s.Subscribe(func(Theme) { notified++ })()

	err = s.Set("purple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "blue", s.Get().Name)
	assert.Zero(t, notified)
}

func TestFilePersister(t *testing.T) {
	p := &FilePersister{Path: filepath.Join(t.TempDir(), "nested", "theme")}

	name, err := p.Load()
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, p.Save("pink"))
	name, err = p.Load()
	require.NoError(t, err)
	assert.Equal(t, "pink", name)

	b, err := os.ReadFile(p.Path)
	require.NoError(t, err)
	assert.Equal(t, "pink\n", string(b))
}

func TestPalette(t *testing.T) {
	all := All()
	require.Len(t, all, 7)
	assert.Equal(t, "green", all[0].Name)
	assert.Equal(t, "green", Fallback().Name)
	assert.Equal(t, "amber", Default().Name)

	cyan, ok := Lookup(" Cyan ")
	require.True(t, ok)
	assert.Equal(t, "#06b6d4", cyan.Colors.Text)
	assert.Equal(t, "#06b6d4", cyan.Colors.Glow)

	_, ok = Lookup("synthwave")
	assert.False(t, ok)

	css := Default().CSSVariables()
	assert.True(t, strings.HasPrefix(css, "--color-primary: #fe9a00;"))
	assert.Contains(t, css, "--color-background: #121212;")
	assert.Contains(t, css, "--glow-color: #fe9a00;")
}
