package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.openly.dev/pointy"
	"go.uber.org/zap"

	"brewfinder.dev/BrewFinder/configs"
	"brewfinder.dev/BrewFinder/pkg/browser"
	"brewfinder.dev/BrewFinder/pkg/client"
	"brewfinder.dev/BrewFinder/pkg/integrations"
	"brewfinder.dev/BrewFinder/pkg/integrations/openbrewerydb"
)

type BrowseCmd struct {
	ConfigFile string `default:".BrewFinder.toml" help:"Path to config file" short:"c"`
}

// Run drives the browser state container from a line-based prompt. Search
// results and favorites are the two views of the original page.
func (b *BrowseCmd) Run(_ *Context) error {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.DisableStacktrace = true

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(b.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	api := client.New(conf.Client)
	directory := integrations.GetDirectory(openbrewerydb.DirectoryName, conf, logger)

	app := browser.New(api, directory, func(message string) {
		fmt.Println("! " + message)
	}, logger)

	ctx := context.Background()
	app.Start(ctx)

	fmt.Println("BrewFinder. Type 'help' for commands.")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("[%s p%d/%d] > ", app.City(), app.Page(), app.PerPage())

		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "search":
			app.Search(ctx, strings.Join(fields[1:], " "))
			printSearch(app)
		case "next":
			app.NextPage(ctx)
			printSearch(app)
		case "prev":
			app.PrevPage(ctx)
			printSearch(app)
		case "per":
			if len(fields) != 2 {
				fmt.Println("usage: per 10|20|50")

				continue
			}

			size, _ := strconv.Atoi(fields[1])
			app.SetPerPage(ctx, size)
			printSearch(app)
		case "save":
			if len(fields) < 2 {
				fmt.Println("usage: save <result #> [note]")

				continue
			}

			index, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("usage: save <result #> [note]")

				continue
			}

			var note *string
			if len(fields) > 2 {
				note = pointy.String(strings.Join(fields[2:], " "))
			}

			app.Save(ctx, index-1, note)
		case "favs":
			printFavorites(app)
		case "note":
			if len(fields) < 2 {
				fmt.Println("usage: note <breweryId> [text]")

				continue
			}

			var note *string
			if len(fields) > 2 {
				note = pointy.String(strings.Join(fields[2:], " "))
			}

			app.EditNote(ctx, fields[1], note)
		case "del":
			if len(fields) != 2 {
				fmt.Println("usage: del <breweryId>")

				continue
			}

			fmt.Printf("delete %s? [y/N] ", fields[1])

			if !scanner.Scan() {
				return scanner.Err()
			}

			if strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				app.Delete(ctx, fields[1])
			}
		case "help":
			fmt.Println("commands: search <city> | next | prev | per <n> | save <result #> [note] | favs | note <breweryId> [text] | del <breweryId> | quit")
		case "quit", "exit":
			return nil
		default:
			fmt.Printf("unknown command %q, try 'help'\n", fields[0])
		}
	}
}

func printSearch(app *browser.Browser) {
	if app.SearchError() != "" {
		fmt.Println("search error: " + app.SearchError())

		return
	}

	for i, brewery := range app.Results() {
		saved := ""
		if app.IsSaved(brewery.ID) {
			saved = " (saved)"
		}

		fmt.Printf("%2d. %s%s%s\n", i+1, brewery.Name, describe(brewery.BreweryType, brewery.City, brewery.State), saved)
	}

	if len(app.Results()) == 0 {
		fmt.Println("no results")
	} else if app.MaybeLastPage() {
		fmt.Println("(last page)")
	}
}

func printFavorites(app *browser.Browser) {
	for _, favorite := range app.Favorites() {
		note := ""
		if favorite.Note != nil {
			note = "  (" + *favorite.Note + ")"
		}

		fmt.Printf("%s  %s%s\n", favorite.BreweryID, favorite.Name, note)
	}

	if len(app.Favorites()) == 0 {
		fmt.Println("no favorites yet")
	}
}

func describe(parts ...*string) string {
	var present []string

	for _, part := range parts {
		if part != nil && *part != "" {
			present = append(present, *part)
		}
	}

	if len(present) == 0 {
		return ""
	}

	return " (" + strings.Join(present, ", ") + ")"
}
