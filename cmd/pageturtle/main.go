package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/pageturtle/pageturtle/cmd/pageturtle/commands"
)

var version = "dev"

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("pageturtle"),
		kong.Description("A static site generator for markdown blogs."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli)
	ctx.FatalIfErrorf(err)
}
