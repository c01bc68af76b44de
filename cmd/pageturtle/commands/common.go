package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/pageturtle/pageturtle/internal/config"
)

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (defaults to <directory>/blog.toml)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Build the blog into a static site"`
	Dev   DevCmd   `cmd:"" help:"Serve the blog locally, rebuilding and reloading on changes"`
	Init  InitCmd  `cmd:"" help:"Initialize a new blog directory"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// ConfigPath resolves the configuration file for a blog directory. The
// global --config flag wins over the conventional location.
func (c *CLI) ConfigPath(blogDir string) string {
	if c.Config != "" {
		return c.Config
	}
	return filepath.Join(blogDir, config.DefaultFilename)
}

// ContentDir is where posts live inside a blog directory.
func ContentDir(blogDir string) string {
	return filepath.Join(blogDir, "posts")
}

// LoadConfig reads the blog configuration for a directory.
func LoadConfig(root *CLI, blogDir string) (*config.Config, error) {
	return config.Load(root.ConfigPath(blogDir))
}
