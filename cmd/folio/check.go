package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/folio/posts"
)

func newCheckCmd(o *rootOptions) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Lint the frontmatter of every post",
		Long: `check reports posts with missing titles or dates, unparseable dates,
duplicate slugs and missing cover images. It exits non-zero when it finds
problems. With --watch it re-checks whenever the content directory changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := o.store()
			out := cmd.OutOrStdout()
			st := currentStyles()

			if !watch {
				n, err := runCheck(out, store, st)
				if err != nil {
					return err
				}
				if n > 0 {
					return fmt.Errorf("%d problem(s) found", n)
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if _, err := runCheck(out, store, st); err != nil {
				return err
			}
			fmt.Fprintln(out, st.muted.Render("watching "+store.Dir()+" (ctrl-c to stop)"))
			return store.Watch(ctx, func(name string) {
				fmt.Fprintln(out, st.muted.Render("changed: "+name))
				if _, err := runCheck(out, store, st); err != nil {
					o.logger.Warn("check failed", zap.Error(err))
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run on every change until interrupted")
	return cmd
}

// runCheck prints the problems found in the store and returns how many.
func runCheck(out io.Writer, store *posts.Store, st styles) (int, error) {
	problems, err := store.Check()
	if err != nil {
		return 0, err
	}
	if len(problems) == 0 {
		list, err := store.ListAllPosts()
		if err != nil {
			return 0, err
		}
		fmt.Fprintln(out, st.accent.Render(fmt.Sprintf("ok: %d post(s), no problems", len(list))))
		return 0, nil
	}
	for _, p := range problems {
		fmt.Fprintln(out, st.problem.Render(p.String()))
	}
	return len(problems), nil
}
