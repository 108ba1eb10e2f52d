package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrUnknownTheme is returned by Set for names missing from the table.
var ErrUnknownTheme = errors.New("theme: unknown theme")

// Persister loads and saves the selected theme name. Load returns "" when
// nothing was saved.
type Persister interface {
	Load() (string, error)
	Save(name string) error
}

// Store holds the active theme and notifies subscribers when it changes.
type Store struct {
	mu      sync.RWMutex
	current Theme
	persist Persister
	subs    map[int]func(Theme)
	order   []int
	nextID  int
}

// NewStore loads the persisted preference. With nothing saved the default
// theme is selected and written back; an unknown saved name selects the
// fallback theme.
func NewStore(p Persister) (*Store, error) {
	s := &Store{persist: p, subs: make(map[int]func(Theme))}
	name, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("theme: load preference: %w", err)
	}
	if name == "" {
		s.current = Default()
		if err := p.Save(s.current.Name); err != nil {
			return nil, fmt.Errorf("theme: save preference: %w", err)
		}
		return s, nil
	}
	t, ok := Lookup(name)
	if !ok {
		t = Fallback()
	}
	s.current = t
	return s, nil
}

// Get returns the active theme.
func (s *Store) Get() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set selects the named theme and persists it. Subscribers are notified only
// when the active theme actually changes.
func (s *Store) Set(name string) error {
	t, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	// Save under the lock so the persisted and active themes never disagree.
	s.mu.Lock()
	if err := s.persist.Save(t.Name); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("theme: save preference: %w", err)
	}
	changed := s.current.Name != t.Name
	s.current = t
	var notify []func(Theme)
	if changed {
		for _, id := range s.order {
			notify = append(notify, s.subs[id])
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(t)
	}
	return nil
}

// Subscribe registers fn to run after every change, in subscription order.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Theme)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// MemoryPersister keeps the preference in memory.
type MemoryPersister struct {
	mu   sync.Mutex
	name string
}

// Load implements Persister.
func (m *MemoryPersister) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name, nil
}

// Save implements Persister.
func (m *MemoryPersister) Save(name string) error {
	m.mu.Lock()
	m.name = name
	m.mu.Unlock()
	return nil
}

// FilePersister stores the preference as a one-line file.
type FilePersister struct {
	Path string
}

// DefaultFilePersister stores the preference under the user config directory.
func DefaultFilePersister() (*FilePersister, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &FilePersister{Path: filepath.Join(dir, "folio", "theme")}, nil
}

// Load implements Persister. A missing file means no preference.
func (f *FilePersister) Load() (string, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Save implements Persister.
func (f *FilePersister) Save(name string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.Path, []byte(name+"\n"), 0o644)
}
