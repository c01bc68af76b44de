package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/pageturtle/pageturtle/internal/devserver"
)

// DevCmd implements the 'dev' command.
type DevCmd struct {
	Directory string `short:"d" default:"." help:"Blog directory containing blog.toml and posts/"`
	Output    string `short:"o" default:"./dist" help:"Output directory for the generated site"`
	Port      int    `short:"p" default:"8080" help:"Port for the development server"`
}

func (d *DevCmd) Run(_ *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := LoadConfig(root, d.Directory)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Printf("Serving %s on http://localhost:%d\n", d.Directory, d.Port)
	server := devserver.New(cfg, ContentDir(d.Directory), d.Output, d.Port)
	return server.Run(sigctx)
}
