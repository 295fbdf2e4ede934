package main

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marco/movieCatalog/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload the catalog whenever the file changes",
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

			var mu sync.Mutex
			known := cat.Len()

			w, err := watch.NewWatcher(s.Path(), cfg.DebounceDelay(), func() error {
				mu.Lock()
				defer mu.Unlock()

				reloaded := loadCatalog(s)
				all := reloaded.All()
				if len(all) > known {
					for _, m := range all[known:] {
						slog.Info("new movie", "id", m.ID, "title", m.Title, "genres", m.GenreList())
					}
				}
				known = len(all)
				return nil
			})
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return err
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			<-sigCtx.Done()
			slog.Info("stopping watcher")
			return w.Stop()
		},
	}
}
