package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/eringen/folio/markdown"
)

func newShowCmd(o *rootOptions) *cobra.Command {
	var (
		width int
		style string
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Render a post in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, ok, err := o.store().GetPostBySlug(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no post %q in %s", args[0], o.cfg.ContentDir)
			}
			out := cmd.OutOrStdout()

			if raw {
				fmt.Fprint(out, post.Content)
				return nil
			}

			st := currentStyles()
			meta := []string{post.Slug}
			if post.Date != "" {
				meta = append(meta, post.Date)
			}
			if post.Category != "" {
				meta = append(meta, post.Category)
			}
			meta = append(meta, fmt.Sprintf("%d min read", markdown.ReadingTime(post.Content)))
			fmt.Fprintln(out, st.heading.Render(post.Title))
			fmt.Fprintln(out, st.muted.Render(strings.Join(meta, " · ")))
			if post.Description != "" {
				fmt.Fprintln(out, st.accent.Render(post.Description))
			}

			opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
			if style == "auto" {
				opts = append(opts, glamour.WithAutoStyle())
			} else {
				opts = append(opts, glamour.WithStandardStyle(style))
			}
			r, err := glamour.NewTermRenderer(opts...)
			if err != nil {
				return err
			}
			rendered, err := r.Render(post.Content)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "wrap width")
	cmd.Flags().StringVar(&style, "style", "auto", "glamour style: auto, dark, light, notty, ...")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown body without rendering")
	return cmd
}
