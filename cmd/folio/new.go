package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/posts"
	"github.com/eringen/folio/scaffold"
)

func newNewCmd(o *rootOptions) *cobra.Command {
	var (
		category    string
		description string
		date        string
		slug        string
	)
	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a new post in the content directory",
		Example: `  folio new "Shipping os.Root" --category Go
  folio new "Year in review" --date 2025-12-31 --slug review-2025`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(strings.Fields(strings.Join(args, " ")), " ")
			if slug == "" {
				slug = folio.Slugify(title)
			}
			normalized, err := posts.NormalizeSlug(slug)
			if err != nil || normalized != slug {
				return fmt.Errorf("cannot derive a slug from %q, pass --slug", slug)
			}

			if date == "" {
				date = time.Now().Format("2006-01-02")
			} else if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD, got %q", date)
			}

			dir := o.cfg.ContentDir
			for _, ext := range []string{".md", ".mdx"} {
				if _, err := os.Stat(filepath.Join(dir, slug+ext)); err == nil {
					return fmt.Errorf("post %q already exists", slug+ext)
				}
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			path := filepath.Join(dir, slug+".md")
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if errors.Is(err, os.ErrExist) {
				return fmt.Errorf("post %q already exists", slug+".md")
			}
			if err != nil {
				return err
			}
			werr := scaffold.WritePost(f, scaffold.PostData{
				Title:       title,
				Date:        date,
				Category:    category,
				Description: description,
			})
			if err := f.Close(); werr == nil {
				werr = err
			}
			if werr != nil {
				_ = os.Remove(path)
				return werr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "post category")
	cmd.Flags().StringVar(&description, "description", "", "one-line summary")
	cmd.Flags().StringVar(&date, "date", "", "publication date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&slug, "slug", "", "file name without extension (default derived from the title)")
	return cmd
}
