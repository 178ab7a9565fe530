package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/cli/config"
	"github.com/secmon-lab/fieldswitch/pkg/domain/interfaces"
	"github.com/secmon-lab/fieldswitch/pkg/usecase"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
)

// setupUseCases opens the repository and builds the use cases. Property
// definitions from --config seed the in-memory backend; persistent backends
// are filled with the import command instead.
// The caller must close the returned repository.
func setupUseCases(ctx context.Context, propCfg *config.Properties, repoCfg *config.Repository, opts ...usecase.Option) (*usecase.UseCases, interfaces.Repository, error) {
	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}

	props, err := propCfg.Configure(ctx)
	if err != nil {
		closeRepository(repo)
		return nil, nil, goerr.Wrap(err, "failed to load property config")
	}

	uc := usecase.New(repo, opts...)

	switch {
	case props == nil:
	case repoCfg.Backend() == config.BackendMemory:
		if _, err := uc.Property.Import(ctx, props, false); err != nil {
			closeRepository(repo)
			return nil, nil, goerr.Wrap(err, "failed to seed in-memory repository")
		}
	default:
		logging.Default().Warn("Property config is only loaded into the memory backend, run import to update the repository",
			"backend", repoCfg.Backend(),
			"config", propCfg.Path(),
		)
	}

	return uc, repo, nil
}

func closeRepository(repo interfaces.Repository) {
	if err := repo.Close(); err != nil {
		logging.Default().Error("failed to close repository", "error", err.Error())
	}
}
