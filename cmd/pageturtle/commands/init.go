package commands

import (
	"fmt"
	"time"

	"github.com/pageturtle/pageturtle/internal/config"
	"github.com/pageturtle/pageturtle/internal/frontmatter"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Directory string `short:"d" default:"." help:"Directory to initialize the blog in"`
	Force     bool   `help:"Scaffold even if the directory is not empty"`
}

func (i *InitCmd) Run(_ *Global, _ *CLI) error {
	fmt.Printf("Initializing blog in %s\n", i.Directory)
	starterDate := time.Now().Format(frontmatter.DateFormat)
	if err := config.Scaffold(i.Directory, starterDate, i.Force); err != nil {
		return err
	}
	fmt.Println("Blog initialized. Edit blog.toml, then run 'pageturtle dev'.")
	return nil
}
