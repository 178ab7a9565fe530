package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/cli/config"
	httpctrl "github.com/secmon-lab/fieldswitch/pkg/controller/http"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/usecase"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
	"github.com/secmon-lab/fieldswitch/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdRender() *cli.Command {
	var q model.SearchQuery
	var choices []string
	var title string
	var output string
	var publicOnly bool
	var wasm bool
	var propCfg config.Properties
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "property",
			Aliases:     []string{"p"},
			Usage:       "Selected property short name",
			Destination: &q.Property,
		},
		&cli.StringFlag{
			Name:        "search",
			Usage:       "Value of the free text search field",
			Destination: &q.Search,
		},
		&cli.StringFlag{
			Name:        "archive",
			Usage:       "Archive filter (active, archived, all)",
			Destination: &q.Archive,
		},
		&cli.StringSliceFlag{
			Name:        "choice",
			Usage:       "Selected option of a choice property as name=value (repeatable)",
			Destination: &choices,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Title of the search page",
			Value:       "Location search",
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file (default: stdout)",
			Destination: &output,
		},
		&cli.BoolFlag{
			Name:        "public-only",
			Usage:       "Only offer public properties in the search form",
			Destination: &publicOnly,
		},
		&cli.BoolFlag{
			Name:        "wasm",
			Usage:       "Load the client side switcher from /assets",
			Destination: &wasm,
		},
	}

	flags = append(flags, propCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "render",
		Aliases: []string{"r"},
		Usage:   "Render the search form as static HTML",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			parsed, err := parseChoices(choices)
			if err != nil {
				return err
			}
			q.Choices = parsed

			uc, repo, err := setupUseCases(ctx, &propCfg, &repoCfg, usecase.WithPublicOnly(publicOnly))
			if err != nil {
				return err
			}
			defer closeRepository(repo)

			// Render fully before touching the output file
			var buf bytes.Buffer
			state, err := httpctrl.RenderSearchPage(ctx, &buf, uc.Search, q, httpctrl.Page{Title: title, WASM: wasm})
			if err != nil {
				return goerr.Wrap(err, "failed to render search page")
			}

			var w io.Writer = os.Stdout
			if output != "" {
				// #nosec G304 - path is expected to be provided by CLI argument
				f, err := os.Create(output)
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
				}
				defer safe.Close(ctx, f)
				w = f
			}
			safe.Copy(ctx, w, &buf)

			logging.Default().Info("Search form rendered",
				"property", q.Property,
				"active_field", state.Active(),
				"fallback", state.UsedFallback(),
			)
			return nil
		},
	}
}

func parseChoices(values []string) (map[string]string, error) {
	choices := make(map[string]string, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		if !ok || name == "" {
			return nil, goerr.New("choice must be given as name=value", goerr.V("choice", v))
		}
		choices[name] = value
	}
	return choices, nil
}
