// Package theme holds the site's colour themes and an observable store for
// the active one.
package theme

import (
	"fmt"
	"strings"
)

// Palette is the set of CSS colours a theme assigns.
type Palette struct {
	Primary    string
	Border     string
	Background string
	Text       string
	Glow       string
}

// Theme is a named palette.
type Theme struct {
	Name   string
	Label  string
	Colors Palette
}

const (
	// DefaultName is selected when nothing has been persisted yet.
	DefaultName = "amber"
	background  = "#121212"
)

var themes = []Theme{
	{Name: "green", Label: "Green", Colors: Palette{Primary: "#22c55e", Border: "#22c55e", Background: background, Text: "#22c55e", Glow: "#22c55e"}},
	{Name: "amber", Label: "Amber", Colors: Palette{Primary: "#fe9a00", Border: "#fe9a00", Background: background, Text: "#fe9a00", Glow: "#fe9a00"}},
	{Name: "purple", Label: "Purple", Colors: Palette{Primary: "#8b5cf6", Border: "#8b5cf6", Background: background, Text: "#8b5cf6", Glow: "#8b5cf6"}},
	{Name: "blue", Label: "Blue", Colors: Palette{Primary: "#3b82f6", Border: "#3b82f6", Background: background, Text: "#3b82f6"}},
	{Name: "red", Label: "Red", Colors: Palette{Primary: "#ef4444", Border: "#ef4444", Background: background, Text: "#ef4444", Glow: "#ef4444"}},
	{Name: "cyan", Label: "Cyan", Colors: Palette{Primary: "#06b6d4", Border: "#06b6d4", Background: background}},
	{Name: "pink", Label: "Pink", Colors: Palette{Primary: "#ec4899", Border: "#ec4899", Background: background, Text: "#ec4899", Glow: "#ec4899"}},
}

// All returns every theme in display order.
func All() []Theme {
	out := make([]Theme, len(themes))
	for i, t := range themes {
		out[i] = t.filled()
	}
	return out
}

// Lookup finds a theme by name, ignoring case and surrounding space.
func Lookup(name string) (Theme, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range themes {
		if t.Name == name {
			return t.filled(), true
		}
	}
	return Theme{}, false
}

// Default returns the theme used before any preference exists.
func Default() Theme {
	t, _ := Lookup(DefaultName)
	return t
}

// Fallback returns the theme used when a stored preference is unknown.
func Fallback() Theme {
	return themes[0].filled()
}

// filled copies the theme with empty text and glow colours set to primary.
func (t Theme) filled() Theme {
	if t.Colors.Text == "" {
		t.Colors.Text = t.Colors.Primary
	}
	if t.Colors.Glow == "" {
		t.Colors.Glow = t.Colors.Primary
	}
	return t
}

// CSSVariables renders the palette as CSS custom property declarations.
func (t Theme) CSSVariables() string {
	t = t.filled()
	return fmt.Sprintf("--color-primary: %s; --color-border: %s; --glow-color: %s; --color-background: %s; --color-text: %s;",
		t.Colors.Primary, t.Colors.Border, t.Colors.Glow, t.Colors.Background, t.Colors.Text)
}
