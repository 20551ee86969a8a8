package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/homespun/homespun/internal/config"
	"github.com/homespun/homespun/internal/flags"
	"github.com/homespun/homespun/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".homespun/config.yaml"
	debugEnv        = "HOMESPUN_DEBUG"
)

var version = "dev"

// rootOptions carries global flags and the loaded configuration to every
// subcommand.
type rootOptions struct {
	cfgFile   string
	storePath string
	format    string
	project   string
	debug     bool

	v        *viper.Viper
	cfg      config.Config
	flags    *flags.Registry
	cleanups []func()
}

// newRootCmd builds the command tree. Each call gets its own viper instance.
func newRootCmd() (*cobra.Command, *rootOptions) {
	o := &rootOptions{v: viper.New()}

	root := &cobra.Command{
		Use:   "homespun",
		Short: "Session and container status for the Homespun dashboard",
		Long: `Homespun summarises agent sessions and their containers: how many are
working, which need an answer, which have a plan ready, and which failed.

Data lives in a local SQLite store, filled with 'homespun import'.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.cfgFile, "config", "c", "", "config file (default: .homespun/config.yaml or ~/.config/homespun/config.yaml)")
	pf.StringVar(&o.storePath, "store", "", "path to the SQLite store")
	pf.StringVarP(&o.format, "format", "o", "", "output format: table, json or yaml")
	pf.StringVarP(&o.project, "project", "p", "", "only show this project id")
	pf.BoolVar(&o.debug, "debug", false, "write a debug log next to the store (also "+debugEnv+"=1)")

	_ = o.v.BindPFlag("store_path", pf.Lookup("store"))
	_ = o.v.BindPFlag("output.format", pf.Lookup("format"))

	root.AddCommand(
		newSummaryCmd(o),
		newGroupsCmd(o),
		newContainersCmd(o),
		newImportCmd(o),
		newWatchCmd(o),
		newConfigCmd(o),
	)
	return root, o
}

// setup loads configuration and starts logging for cmd.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if err := o.loadConfig(); err != nil {
		return err
	}
	if err := config.Validate(o.cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	o.flags = flags.New(o.cfg.Flags)
	return o.initLogging(cmd.Name() == "watch")
}

func (o *rootOptions) loadConfig() error {
	v := o.v
	defaults := config.Defaults()
	v.SetDefault("store_path", defaults.StorePath)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.color", defaults.Output.Color)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.ttl", defaults.Cache.TTL)
	v.SetDefault("cache.cleanup_interval", defaults.Cache.CleanupInterval)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	v.SetDefault("flags", defaults.Flags)

	v.SetEnvPrefix("HOMESPUN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := o.cfgFile
	switch {
	case configPath != "":
		v.SetConfigFile(configPath)
	case fileExists(localConfigPath):
		configPath = localConfigPath
		v.SetConfigFile(configPath)
	default:
		// Config lookup order:
		// 1. .homespun/config.yaml (current directory)
		// 2. ~/.config/homespun/config.yaml (user config)
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "homespun"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading config: %w", err)
		}
		// No config file found - create the default one
		if configPath == "" {
			configPath = localConfigPath
		}
		if writeErr := config.WriteDefaultConfig(configPath); writeErr == nil {
			v.SetConfigFile(configPath)
			_ = v.ReadInConfig()
		}
		// If write fails, just continue with defaults (no config file)
	}

	if err := v.Unmarshal(&o.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if o.cfg.Tracing.FilePath == "" {
		o.cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}
	log.Debug(log.CatConfig, "Loaded config", "file", v.ConfigFileUsed(), "store", o.cfg.StorePath)
	return nil
}

// configFileUsed is where config writes go.
func (o *rootOptions) configFileUsed() string {
	if used := o.v.ConfigFileUsed(); used != "" {
		return used
	}
	if o.cfgFile != "" {
		return o.cfgFile
	}
	return localConfigPath
}

func (o *rootOptions) initLogging(tui bool) error {
	if !o.debug && os.Getenv(debugEnv) == "" {
		return nil
	}

	path := filepath.Join(filepath.Dir(o.cfg.StorePath), "debug.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	var (
		cleanup func()
		err     error
	)
	if tui {
		cleanup, err = log.InitWithTeaLog(path, "homespun")
	} else {
		cleanup, err = log.Init(path)
	}
	if err != nil {
		return fmt.Errorf("starting debug log: %w", err)
	}
	o.onClose(cleanup)
	log.Info(log.CatConfig, "Debug logging enabled", "version", version, "path", path)
	return nil
}

// onClose registers fn to run once the command finishes, latest first.
func (o *rootOptions) onClose(fn func()) {
	o.cleanups = append(o.cleanups, fn)
}

func (o *rootOptions) close() {
	for i := len(o.cleanups) - 1; i >= 0; i-- {
		o.cleanups[i]()
	}
	o.cleanups = nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Execute runs the root command
func Execute() error {
	root, o := newRootCmd()
	defer o.close()

	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}
