package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/eringen/folio/posts"
)

func newListCmd(o *rootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := o.store().ListAllPosts()
			if err != nil {
				return err
			}
			list = posts.FilterByCategory(list, category)
			out := cmd.OutOrStdout()
			st := currentStyles()

			if len(list) == 0 {
				fmt.Fprintln(out, st.muted.Render("no posts"))
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, p := range list {
				title := p.Title
				if title == "" {
					title = "(untitled)"
				}
				rows = append(rows, []string{p.Slug, title, p.Category, postAge(p)})
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(st.border).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return st.heading.Padding(0, 1)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				}).
				Headers("SLUG", "TITLE", "CATEGORY", "DATE").
				Rows(rows...)
			fmt.Fprintln(out, t.Render())
			fmt.Fprintln(out, st.muted.Render(fmt.Sprintf("%d post(s) in %s", len(list), o.cfg.ContentDir)))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list posts in this category")
	return cmd
}

// postAge formats the date column: the date plus a relative time when the
// date parsed, the raw value otherwise.
func postAge(p posts.Post) string {
	switch {
	case p.Date == "":
		return "-"
	case p.Published.IsZero():
		return p.Date + " (?)"
	default:
		return fmt.Sprintf("%s (%s)", p.Published.Format("2006-01-02"), humanize.Time(p.Published))
	}
}
