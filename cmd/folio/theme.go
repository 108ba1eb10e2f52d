package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/eringen/folio/theme"
)

// themeFileEnv overrides where the terminal theme preference is stored.
const themeFileEnv = "FOLIO_THEME_FILE"

func themePersister() (*theme.FilePersister, error) {
	if path := os.Getenv(themeFileEnv); path != "" {
		return &theme.FilePersister{Path: path}, nil
	}
	return theme.DefaultFilePersister()
}

func openThemeStore() (*theme.Store, error) {
	p, err := themePersister()
	if err != nil {
		return nil, err
	}
	return theme.NewStore(p)
}

// styles colours CLI output with the active terminal theme.
type styles struct {
	heading lipgloss.Style
	accent  lipgloss.Style
	muted   lipgloss.Style
	border  lipgloss.Style
	problem lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	primary := lipgloss.Color(t.Colors.Primary)
	return styles{
		heading: lipgloss.NewStyle().Bold(true).Foreground(primary),
		accent:  lipgloss.NewStyle().Foreground(primary),
		muted:   lipgloss.NewStyle().Faint(true),
		border:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Border)),
		problem: lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	}
}

// currentStyles falls back to the default theme when the preference file
// cannot be read; colours are cosmetic.
func currentStyles() styles {
	store, err := openThemeStore()
	if err != nil {
		return newStyles(theme.Default())
	}
	return newStyles(store.Get())
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [name]",
		Short: "Print or set the terminal colour theme",
		Long: `Without arguments, theme lists the available themes and marks the
active one. With a name, it makes that theme active for list, show and check.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openThemeStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				changed := false
				unsubscribe := store.Subscribe(func(t theme.Theme) {
					changed = true
					fmt.Fprintf(out, "theme set to %s\n", newStyles(t).accent.Render(t.Name))
				})
				defer unsubscribe()
				if err := store.Set(args[0]); err != nil {
					return err
				}
				if !changed {
					fmt.Fprintf(out, "theme is already %s\n", store.Get().Name)
				}
				return nil
			}

			current := store.Get()
			for _, t := range theme.All() {
				marker := "  "
				if t.Name == current.Name {
					marker = "* "
				}
				fmt.Fprintf(out, "%s%s\n", marker, newStyles(t).accent.Render(fmt.Sprintf("%-8s %s", t.Name, t.Colors.Primary)))
			}
			return nil
		},
	}
}
