package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/homespun/homespun/internal/cachemanager"
	"github.com/homespun/homespun/internal/dashboard"
	"github.com/homespun/homespun/internal/flags"
	"github.com/homespun/homespun/internal/infrastructure/sqlite"
	"github.com/homespun/homespun/internal/log"
	"github.com/homespun/homespun/internal/presentation"
	"github.com/homespun/homespun/internal/sessions/domain"
	"github.com/homespun/homespun/internal/tracing"
	"github.com/homespun/homespun/internal/ui/styles"
)

// openStore opens the configured SQLite store; it is closed with the command.
func (o *rootOptions) openStore() (*sqlite.DB, error) {
	db, err := sqlite.NewDB(o.cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	o.onClose(func() {
		if err := db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "Failed to close store", err)
		}
	})
	return db, nil
}

func (o *rootOptions) startTracing() (*tracing.Provider, error) {
	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      o.cfg.Tracing.Enabled,
		Exporter:     o.cfg.Tracing.Exporter,
		FilePath:     o.cfg.Tracing.FilePath,
		OTLPEndpoint: o.cfg.Tracing.OTLPEndpoint,
		SampleRate:   o.cfg.Tracing.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}
	o.onClose(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Failed to flush traces", err)
		}
	})
	return provider, nil
}

// newService wires the dashboard service over the store with the entity
// cache, tracing and feature flags from config.
func (o *rootOptions) newService() (*dashboard.Service, error) {
	db, err := o.openStore()
	if err != nil {
		return nil, err
	}
	provider, err := o.startTracing()
	if err != nil {
		return nil, err
	}

	opts := []dashboard.Option{
		dashboard.WithTracer(provider.Tracer()),
		dashboard.WithContainerUptime(o.flags.Enabled(flags.FlagContainerUptime)),
	}
	if o.cfg.Cache.Enabled {
		cache := cachemanager.NewInMemoryCacheManager[string, domain.EntityLookup](
			"entity-info", o.cfg.Cache.TTL, o.cfg.Cache.CleanupInterval)
		opts = append(opts, dashboard.WithCache(cache, o.cfg.Cache.TTL))
	}

	return dashboard.NewService(db.SessionRepository(), db.ContainerRepository(), db.EntityRepository(), opts...), nil
}

// theme colours output only for terminals, and never when NO_COLOR is set.
func (o *rootOptions) theme(w io.Writer) *styles.Theme {
	color := o.cfg.Output.Color && isTerminal(w) && termenv.EnvColorProfile() != termenv.Ascii
	return styles.NewTheme(o.cfg.Theme.StatusColors(), color)
}

// formatter writes to cmd's output using the configured format, theme and
// terminal width.
func (o *rootOptions) formatter(cmd *cobra.Command) (*presentation.Formatter, error) {
	format, err := presentation.ParseFormat(o.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	w := cmd.OutOrStdout()
	return presentation.NewFormatter(w,
		presentation.WithFormat(format),
		presentation.WithTheme(o.theme(w)),
		presentation.WithWidth(terminalWidth(w)),
	), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd fits in int
}

// terminalWidth returns 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // G115: fd fits in int
	if err != nil {
		return 0
	}
	return width
}
