package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/pgentity/compiler"
	"github.com/syssam/pgentity/compiler/gen"
	"github.com/syssam/pgentity/dialect"
)

// DefaultConfigFile is the file written by the init command.
const DefaultConfigFile = "pgentity.yaml"

type flags struct {
	config    string
	dialect   string
	out       string
	schema    string
	driver    string
	source    string
	pkg       string
	workers   int
	slowQuery time.Duration
	verbose   bool
}

func rootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "pgentity [flags] [URL]",
		Short: "Generate ORM entities from a PostgreSQL schema",
		Long: `pgentity reads the catalog of one PostgreSQL schema and writes entity
definitions for the selected dialect:

  py-sqlalchemy  SQLAlchemy models in a single Python module
  ts-typeorm     one TypeORM entity file per table
  go-struct      Go structs in a single file
  graphql        a GraphQL SDL document

The connection string, dialect, output path and schema are required. They can
be given as flags or read from a YAML file with --config.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if f.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd, args)
			if err != nil {
				return err
			}
			report, err := compiler.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.config, "config", "", "YAML configuration file")
	cmd.Flags().StringVarP(&f.dialect, "dialect", "d", "", "output dialect ("+strings.Join(compiler.Dialects(), ", ")+")")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file, or directory for per-table dialects")
	cmd.Flags().StringVarP(&f.schema, "schema", "s", "", "database schema to generate entities for")
	cmd.Flags().StringVar(&f.driver, "driver", dialect.Postgres, "database driver ("+strings.Join(dialect.Drivers, ", ")+")")
	cmd.Flags().StringVar(&f.source, "source", gen.SourceQuery, "catalog source (query, atlas, file)")
	cmd.Flags().StringVar(&f.pkg, "package", gen.DefaultPackage, "package name for the go-struct dialect")
	cmd.Flags().IntVar(&f.workers, "workers", gen.DefaultWorkers, "number of parallel file writes")
	cmd.Flags().DurationVar(&f.slowQuery, "slow-query", 0, "log catalog queries slower than this")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(initCmd(), dialectsCmd())
	return cmd
}

// resolve merges the configuration file, the flags set on the command line
// and the URL argument, in increasing precedence.
func (f *flags) resolve(cmd *cobra.Command, args []string) (*gen.Config, error) {
	cfg := &gen.Config{}
	if f.config != "" {
		loaded, err := gen.LoadConfig(f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	var opts []gen.Option
	set := cmd.Flags().Changed
	if len(args) == 1 {
		opts = append(opts, gen.WithURL(args[0]))
	}
	if set("dialect") {
		opts = append(opts, gen.WithDialect(f.dialect))
	}
	if set("out") {
		opts = append(opts, gen.WithTarget(f.out))
	}
	if set("schema") {
		opts = append(opts, gen.WithSchema(f.schema))
	}
	if set("driver") {
		opts = append(opts, gen.WithDriver(f.driver))
	}
	if set("source") {
		opts = append(opts, gen.WithSource(f.source))
	}
	if set("package") {
		opts = append(opts, gen.WithPackage(f.pkg))
	}
	if set("workers") {
		opts = append(opts, gen.WithWorkers(f.workers))
	}
	if set("slow-query") {
		opts = append(opts, gen.WithSlowQuery(f.slowQuery))
	}
	if err := cfg.ApplyAll(opts...); err != nil {
		return nil, err
	}
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printReport(w io.Writer, r *gen.Report) {
	ok := color.New(color.FgGreen).Sprint("✓")
	fmt.Fprintf(w, "%s %s: %d tables, %d files, %d bytes\n", ok, r.Dialect, r.Tables, len(r.Files), r.Bytes)
	for _, path := range r.Files {
		fmt.Fprintf(w, "  %s\n", path)
	}
}

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			cfg := &gen.Config{
				URL:     "postgres://localhost:5432/postgres?sslmode=disable",
				Driver:  dialect.Postgres,
				Source:  gen.SourceQuery,
				Dialect: "py-sqlalchemy",
				Target:  "models.py",
				Schema:  "public",
			}
			if err := gen.SaveConfig(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", color.New(color.FgGreen).Sprint("✓"), path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func dialectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported dialects",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range compiler.Dialects() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
