package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/marco/movieCatalog/internal/index"
	"github.com/marco/movieCatalog/internal/writer"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the SQLite search index from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, s, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			if err := requireStore(s); err != nil {
				return err
			}

			var ix index.Index
			ix, err = index.NewSQLiteIndex(cfg.Index.Path)
			if err != nil {
				return err
			}
			defer ix.Close()

			if err := ix.Sync(cat.All()); err != nil {
				return err
			}
			n, err := ix.Count()
			if err != nil {
				return err
			}

			slog.Info("index rebuilt", "path", cfg.Index.Path, "movies", n)
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d movies into %s\n", n, cfg.Index.Path)
			return nil
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var q index.Query
	var plain bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the index by title and genre",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var ix index.Index
			ix, err = index.OpenSQLiteIndex(cfg.Index.Path)
			if err != nil {
				if errors.Is(err, index.ErrNotBuilt) {
					return fmt.Errorf("%w (run \"movies index\" first)", err)
				}
				return err
			}
			defer ix.Close()

			results, err := ix.Search(q)
			if err != nil {
				return err
			}

			slog.Debug("search completed", "title", q.Title, "genre", q.Genre, "results", len(results))
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No movies found (run \"movies index\" after adding movies)")
				return nil
			}
			printMovies(cmd.OutOrStdout(), results, !plain && stdoutIsTerminal())
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.Title, "title", "t", "", "Title substring, case-insensitive")
	cmd.Flags().StringVarP(&q.Genre, "genre", "g", "", "Genre label, case-insensitive")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print Id/Title/Genre(s) blocks instead of a table")
	return cmd
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one MDX page per movie",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, s, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			if err := requireStore(s); err != nil {
				return err
			}

			if dir == "" {
				dir = cfg.Export.MDXDir
			}

			written, err := writer.NewMDXWriter(dir).WriteAll(cmd.Context(), cat.All(), cfg.Export.Workers)
			if err != nil {
				return err
			}

			if skipped := cat.Len() - written; skipped > 0 {
				slog.Warn("pages skipped for repeated slugs", "count", skipped)
			}
			slog.Info("mdx export complete", "dir", dir, "pages", written)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pages to %s\n", written, dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Output directory (overrides export.mdx_dir)")
	return cmd
}
