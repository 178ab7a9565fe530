package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/cli/config"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/repository/memory"
	"github.com/secmon-lab/fieldswitch/pkg/usecase"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ErrFieldMismatch is returned when a property would not show its own search field
var ErrFieldMismatch = goerr.New("property does not switch to its search field")

func cmdValidate() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate property definitions and show which field each property switches to",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Property definition TOML file (local path or gs://bucket/object)",
				Required:    true,
				Sources:     cli.EnvVars("FIELDSWITCH_CONFIG"),
				Destination: &configPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			// Step 1: Load and validate the definitions
			props, err := config.LoadProperties(ctx, configPath)
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logging.Default().Info("Configuration validation passed",
				"path", configPath,
				"property_count", len(props),
			)

			// Step 2: Run every property through the field switcher
			return checkFieldSwitching(ctx, color.Output, props)
		},
	}
}

// checkFieldSwitching verifies that choice properties switch to their own
// select element and all other properties to the free text field
func checkFieldSwitching(ctx context.Context, w io.Writer, props []*model.Property) error {
	repo := memory.New()
	uc := usecase.New(repo)
	if _, err := uc.Property.Import(ctx, props, false); err != nil {
		return goerr.Wrap(err, "failed to load properties")
	}

	ok := color.New(color.FgGreen).SprintFunc()
	ng := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var mismatches int
	for _, p := range props {
		state, err := uc.Search.Preview(ctx, p.ShortName.String())
		if err != nil {
			return goerr.Wrap(err, "failed to preview property", goerr.V(model.ShortNameKey, p.ShortName))
		}

		mark := ok("OK")
		if state.Active() != p.FieldID() {
			mark = ng("NG")
			mismatches++
		}

		visibility := "restricted"
		if p.Public {
			visibility = "public"
		}
		fmt.Fprintf(w, "%s %-10s %-6s -> %-14s %s\n", mark, p.ShortName, p.Type, state.Active(), dim(visibility))
	}

	reg, err := uc.Search.Registry(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to build field registry")
	}
	fmt.Fprintf(w, "%s %d properties, %d choice fields, fallback %s\n",
		dim("summary:"), len(props), reg.Len(), model.FallbackFieldID)

	if mismatches > 0 {
		return goerr.Wrap(ErrFieldMismatch, "field switching check failed", goerr.V("mismatches", mismatches))
	}
	return nil
}
