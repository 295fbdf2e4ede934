package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var fileFlag string
	var verboseFlag bool

	ctx := newCommandContext(&configFlag, &fileFlag, &verboseFlag)

	rootCmd := &cobra.Command{
		Use:           "movies",
		Short:         "Manage a movie catalog stored in a CSV file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("program started")
			defer slog.Info("program ended")

			cat, s, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			if !s.Exists() {
				// already logged by openCatalog
				return nil
			}

			runMenu(cmd.InOrStdin(), cmd.OutOrStdout(), cat, stdoutIsTerminal())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "Catalog file (overrides catalog.file)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show detailed logging")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newAddCommand(ctx))
	rootCmd.AddCommand(newInitCommand(ctx))
	rootCmd.AddCommand(newDuplicatesCommand(ctx))
	rootCmd.AddCommand(newIndexCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))

	return rootCmd
}
