package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/keytrain/internal/buffer"
	"github.com/zjrosen/keytrain/internal/clipboard"
	"github.com/zjrosen/keytrain/internal/config"
	"github.com/zjrosen/keytrain/internal/interp"
	"github.com/zjrosen/keytrain/internal/log"
	"github.com/zjrosen/keytrain/internal/session"
	"github.com/zjrosen/keytrain/internal/stats"
	"github.com/zjrosen/keytrain/internal/tracing"
	"github.com/zjrosen/keytrain/internal/ui/playground"
	"github.com/zjrosen/keytrain/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// defaultSample is the practice text loaded when no --file is given.
const defaultSample = `The quick brown fox jumps over the lazy dog.
Practice makes permanent, not perfect.
word Word WORD punctuation, brackets (and) more!
find the x in this line, then find it again
delete change yank paste repeat`

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "keytrain",
	Short:   "A terminal trainer for modal editing keystrokes",
	Long:    `A terminal playground for practicing modal editing: counts, operators, motions, text objects, and find commands against a scratch buffer.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/keytrain/config.yaml)")
	rootCmd.Flags().StringP("file", "f", "",
		"practice text file to load into the buffer")
	rootCmd.Flags().Bool("debug", false,
		"write debug logs to keytrain-debug.log")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable automatic config reload when the file changes")

	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("editor.repeat_find_fallback", defaults.Editor.RepeatFindFallback)
	viper.SetDefault("editor.around_word_leading_fallback", defaults.Editor.AroundWordLeadingFallback)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_key_echo", defaults.UI.ShowKeyEcho)
	viper.SetDefault("clipboard.backend", defaults.Clipboard.Backend)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("stats.enabled", defaults.Stats.Enabled)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .keytrain/config.yaml (current directory)
		// 2. ~/.config/keytrain/config.yaml (user config)
		if _, err := os.Stat(".keytrain/config.yaml"); err == nil {
			viper.SetConfigFile(".keytrain/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "keytrain"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a default user config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "keytrain", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// reloadConfig re-reads the config file in place for hot reload.
func reloadConfig() (config.Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return config.Config{}, fmt.Errorf("re-reading config: %w", err)
	}
	var fresh config.Config
	if err := viper.Unmarshal(&fresh); err != nil {
		return config.Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := config.Validate(fresh); err != nil {
		return config.Config{}, err
	}
	return fresh, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cleanup, err := log.InitWithTeaLog("keytrain-debug.log", "keytrain")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}

	sample := defaultSample
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading practice file: %w", err)
		}
		sample = string(data)
	}

	clip, err := newClipboard(cfg.Clipboard)
	if err != nil {
		return err
	}

	provider, err := newTracingProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		_ = provider.Shutdown(context.Background())
	}()

	var store *stats.Store
	if cfg.Stats.Enabled {
		dbPath := cfg.Stats.DBPath
		if dbPath == "" {
			dbPath = config.DefaultStatsDBPath()
		}
		if dbPath != "" {
			store, err = stats.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("opening stats store: %w", err)
			}
			defer store.Close()
		}
	}

	buf := buffer.New(sample)
	policy := cfg.Editor.Policy()
	sess := session.New(session.Config{
		Buffer:    buf,
		Clipboard: clip,
		Policy:    &policy,
		Tracing:   provider,
		Store:     store,
	})

	// Handle --no-auto-reload flag (negated logic)
	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.AutoReload = false
	}

	var w *watcher.Watcher
	if cfg.AutoReload && viper.ConfigFileUsed() != "" {
		if watchHandle, werr := watcher.New(watcher.DefaultConfig(viper.ConfigFileUsed())); werr == nil {
			if werr := watchHandle.Start(); werr == nil {
				w = watchHandle
			} else {
				_ = watchHandle.Stop()
			}
		}
		// Silently ignore watcher init errors - app works fine without hot reload
	}

	model := playground.New(playground.Config{
		Session: sess,
		Buffer:  buf,
		Sample:  sample,
		UI:      cfg.UI,
		Reload:  reloadConfig,
		Watcher: w,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()

	if pm, ok := finalModel.(playground.Model); ok {
		if closeErr := pm.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	if w != nil {
		if stopErr := w.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// newClipboard builds the clipboard backend selected by config.
func newClipboard(c config.ClipboardConfig) (interp.Clipboard, error) {
	if err := config.ValidateClipboard(c); err != nil {
		return nil, err
	}
	if c.Backend == "system" {
		return clipboard.NewSystem(), nil
	}
	return clipboard.NewRegister(), nil
}

// newTracingProvider builds the tracing provider from config, filling in
// the default trace file path when none is set.
func newTracingProvider(tc config.TracingConfig) (*tracing.Provider, error) {
	filePath := tc.FilePath
	if filePath == "" {
		filePath = config.DefaultTracesFilePath()
	}
	return tracing.NewProvider(tracing.Config{
		Enabled:    tc.Enabled,
		Exporter:   tc.Exporter,
		FilePath:   filePath,
		SampleRate: tc.SampleRate,
	})
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
