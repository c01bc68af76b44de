package commands

import (
	"fmt"

	"github.com/pageturtle/pageturtle/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Directory string `short:"d" default:"." help:"Blog directory containing blog.toml and posts/"`
	Output    string `short:"o" default:"./dist" help:"Output directory for the generated site"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root, b.Directory)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	builder := site.NewBuilder(ContentDir(b.Directory), b.Output, cfg)
	report, err := builder.Build()
	if err != nil {
		return err
	}

	fmt.Printf("Published %d post(s) to %s\n", len(report.Published), b.Output)
	for _, f := range report.Failures {
		fmt.Printf("Skipped %s: %v\n", f.Path, f.Err)
	}
	if len(report.Failures) > 0 {
		return fmt.Errorf("%d post(s) failed to compile", len(report.Failures))
	}
	return nil
}
