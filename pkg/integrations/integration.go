package integrations

import (
	"context"

	"go.uber.org/zap"

	"brewfinder.dev/BrewFinder/configs"
	"brewfinder.dev/BrewFinder/pkg/integrations/openbrewerydb"
	"brewfinder.dev/BrewFinder/pkg/model"
)

// Directory is a read-only brewery search source.
type Directory interface {
	SearchBreweries(ctx context.Context, city string, page int, perPage int) ([]model.Brewery, error)
}

func GetDirectory(name string, conf *configs.Config, logger *zap.Logger) Directory {
	if name == openbrewerydb.DirectoryName {
		return openbrewerydb.NewClient(conf.Upstream, logger)
	}

	return nil
}
