package main

import (
	"github.com/alecthomas/kong"

	"brewfinder.dev/BrewFinder/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("BrewFinder"), kong.Description("BrewFinder keeps a favorites list of breweries from the public directory."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
