// Package cli implements the svgstack command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgstack/pkg/buildinfo"
	"github.com/matzehuels/svgstack/pkg/cache"
	"github.com/matzehuels/svgstack/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "svgstack"

	// Environment variables that provide defaults for "serve".
	envMongoURI  = "SVGSTACK_MONGO_URI"
	envRedisAddr = "SVGSTACK_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "svgstack composes, rescales and rasterizes SVG plots",
		Long:         `svgstack stacks SVG figures into one document, rescales them, converts them to embeddable PNG image tags, and wraps rendered plots in compressed records for storage.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.stackCommand())
	root.AddCommand(c.rescaleCommand())
	root.AddCommand(c.pngCommand())
	root.AddCommand(c.recordCommand())
	root.AddCommand(c.decompressCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags are shared by every command that runs the pipeline.
type cacheFlags struct {
	noCache bool
	refresh bool
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(f cacheFlags) (*pipeline.Runner, error) {
	backend, err := newCache(f.noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(backend, nil, c.Logger)
	r.Refresh = f.refresh
	return r, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/svgstack/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// I/O Helpers
// =============================================================================

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// writeOutput writes data to path, or to stdout when path is "" or "-".
// It reports whether a file was written.
func writeOutput(cmd *cobra.Command, path string, data []byte) (bool, error) {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return false, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, err
		}
	}
	return true, os.WriteFile(path, data, 0644)
}
