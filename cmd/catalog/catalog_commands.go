package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marco/movieCatalog/internal/catalog"
	"github.com/marco/movieCatalog/internal/store"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Display all movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, s, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			if err := requireStore(s); err != nil {
				return err
			}
			printMovies(cmd.OutOrStdout(), cat.All(), !plain && stdoutIsTerminal())
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print Id/Title/Genre(s) blocks instead of a table")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var genres []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Append a movie to the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, s, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			if err := requireStore(s); err != nil {
				return err
			}

			title := strings.Join(args, " ")
			m, err := cat.Add(title, genres)
			if err != nil {
				if errors.Is(err, catalog.ErrDuplicateTitle) {
					slog.Info("duplicate movie title", "title", title)
				}
				return err
			}

			slog.Info("movie added", "id", m.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d: %s (%s)\n", m.ID, m.Title, m.GenreList())
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&genres, "genre", "g", nil, "Genre label (repeatable)")
	return cmd
}

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the catalog file with its header",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			s := ctx.newStore(cfg)

			created, err := s.Init()
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "Catalog %s already exists\n", s.Path())
				return nil
			}
			slog.Info("catalog created", "file", s.Path(), "header", cfg.Catalog.Header)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", s.Path())
			return nil
		},
	}
}

func newDuplicatesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates",
		Short: "Report movies whose titles differ only by case",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, s, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			if err := requireStore(s); err != nil {
				return err
			}

			sets := cat.Duplicates()
			out := cmd.OutOrStdout()
			if len(sets) == 0 {
				fmt.Fprintln(out, "No duplicate titles found")
				return nil
			}

			for _, set := range sets {
				ids := make([]string, 0, len(set.Movies))
				for _, m := range set.Movies {
					ids = append(ids, fmt.Sprintf("%d", m.ID))
				}
				fmt.Fprintf(out, "%s: ids %s\n", set.Movies[0].Title, strings.Join(ids, ", "))
			}
			slog.Warn("duplicate titles found", "sets", len(sets))
			return nil
		},
	}
}

// requireStore fails when the catalog file cannot be read at all.
func requireStore(s *store.File) error {
	if !s.Exists() {
		return &store.UnavailableError{Path: s.Path(), Op: "stat", Err: errors.New(`file does not exist (run "movies init")`)}
	}
	return nil
}
