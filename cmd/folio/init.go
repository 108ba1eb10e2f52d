package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/scaffold"
)

func newInitCmd() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "init <dir>",
		Short: "Create a new site directory with a sample post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			out := cmd.OutOrStdout()
			data := scaffold.SiteData{
				Name: scaffold.ToTitle(filepath.Base(dir)),
				URL:  url,
				Date: time.Now().Format("2006-01-02"),
			}

			fmt.Fprintf(out, "Creating new folio site: %s\n\n", dir)
			err := scaffold.WriteSite(dir, data, func(path string) {
				fmt.Fprintf(out, "  created %s\n", path)
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Done! Next steps:")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  cd %s\n", dir)
			fmt.Fprintln(out, "  cp .env.example .env")
			fmt.Fprintln(out, "  folio serve")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Add posts with 'folio new <title>' and set SESSION_SECRET in .env for production.")
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:3000", "canonical site URL")
	return cmd
}
