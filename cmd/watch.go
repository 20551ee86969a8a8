package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/homespun/homespun/internal/dashboard"
	"github.com/homespun/homespun/internal/flags"
	"github.com/homespun/homespun/internal/log"
	"github.com/homespun/homespun/internal/presentation"
	"github.com/homespun/homespun/internal/pubsub"
	"github.com/homespun/homespun/internal/ui/live"
	"github.com/homespun/homespun/internal/watcher"
)

var errWatchDisabled = errors.New(`watch is disabled; set "flags.live-watch: true" in the config`)

func newWatchCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard that refreshes when the store changes",
		Long: `Open a live dashboard showing the status indicator and sessions.

The view refreshes whenever the store is written, for example by
'homespun import' in another terminal.

Keys: g toggles project/status grouping, c toggles containers,
r refreshes, ? shows help, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !o.flags.Enabled(flags.FlagLiveWatch) {
				return errWatchDisabled
			}
			svc, err := o.newService()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			w, err := watcher.New(watcher.Config{DBPath: o.cfg.StorePath, Debounce: o.cfg.Watch.Debounce})
			if err != nil {
				return err
			}
			changes, err := w.Start()
			if err != nil {
				_ = w.Stop()
				return err
			}
			defer func() { _ = w.Stop() }()

			broker := pubsub.NewBroker[presentation.SnapshotDTO]()
			defer broker.Close()

			model := live.New(ctx, svc,
				live.WithBroker(broker),
				live.WithProject(o.project),
				live.WithTheme(o.theme(cmd.OutOrStdout())),
			)
			go publishOnChange(ctx, svc, o.project, changes, broker)

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("running live view: %w", err)
			}
			return nil
		},
	}
}

// publishOnChange rebuilds the dashboard after every store change until ctx
// is done. The entity cache is dropped first so renamed entities show up.
func publishOnChange(
	ctx context.Context,
	svc *dashboard.Service,
	projectID string,
	changes <-chan struct{},
	broker *pubsub.Broker[presentation.SnapshotDTO],
) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
		}

		log.Debug(log.CatWatcher, "Store changed, refreshing")
		if err := svc.Invalidate(ctx); err != nil {
			broker.PublishError(err)
			continue
		}
		snap, err := svc.Snapshot(ctx, projectID)
		if err != nil {
			broker.PublishError(err)
			continue
		}
		broker.Publish(pubsub.RefreshedEvent, snap)
	}
}
