package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/cli/config"
	"github.com/secmon-lab/fieldswitch/pkg/usecase"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdImport() *cli.Command {
	var configPath string
	var prune bool
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Property definition TOML file (local path or gs://bucket/object)",
			Required:    true,
			Sources:     cli.EnvVars("FIELDSWITCH_CONFIG"),
			Destination: &configPath,
		},
		&cli.BoolFlag{
			Name:        "prune",
			Usage:       "Delete stored properties that are not in the config",
			Destination: &prune,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "import",
		Aliases: []string{"i"},
		Usage:   "Store property definitions in the repository",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			props, err := config.LoadProperties(ctx, configPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load property config")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer closeRepository(repo)

			uc := usecase.New(repo)
			result, err := uc.Property.Import(ctx, props, prune)
			if err != nil {
				return goerr.Wrap(err, "failed to import properties")
			}

			logging.Default().Info("Import completed",
				"backend", repoCfg.Backend(),
				"saved", result.Saved,
				"removed", result.Removed,
			)
			return nil
		},
	}
}
