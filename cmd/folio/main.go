// Command folio serves a markdown portfolio and blog, and helps author,
// preview and lint its posts.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/folio"
	"github.com/eringen/folio/internal/logging"
	"github.com/eringen/folio/posts"
)

// version is set at build time via ldflags.
var version = "dev"

// rootOptions carries the persistent flags and the state PersistentPreRunE
// builds from them.
type rootOptions struct {
	contentDir string
	logLevel   string
	logFormat  string
	envFiles   []string

	cfg    folio.SiteConfig
	logger *zap.Logger
}

func (o *rootOptions) store() *posts.Store {
	return posts.NewStore(o.cfg.ContentDir, posts.WithLogger(o.logger.Named("posts")))
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "folio",
		Short: "folio - a markdown portfolio and blog",
		Long: `folio serves a portfolio and blog from a directory of markdown posts.

Each post is a .md or .mdx file with a YAML frontmatter header; the file
name is the slug. Configuration comes from the environment and .env.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := folio.LoadConfig(o.envFiles...)
			if err != nil {
				return err
			}
			if cmd.Flag("content").Changed {
				cfg.ContentDir = o.contentDir
			}
			if cmd.Flag("log-level").Changed {
				cfg.LogLevel = o.logLevel
			}
			o.cfg = cfg

			o.logger, err = logging.New(cfg.LogLevel, o.logFormat != "json")
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.contentDir, "content", "content", "directory of markdown posts (overrides CONTENT_DIR)")
	flags.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flags.StringVar(&o.logFormat, "log-format", "console", "log format: console or json")
	flags.StringSliceVar(&o.envFiles, "env-file", nil, "dotenv files to load (default .env)")

	cmd.AddCommand(
		newServeCmd(o),
		newNewCmd(o),
		newInitCmd(),
		newListCmd(o),
		newShowCmd(o),
		newCheckCmd(o),
		newThemeCmd(),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
		},
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
