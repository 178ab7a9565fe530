package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/domain/interfaces"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
)

type PropertyUseCase struct {
	repo  interfaces.Repository
	cache *PropertyCache
}

func NewPropertyUseCase(repo interfaces.Repository, cache *PropertyCache) *PropertyUseCase {
	return &PropertyUseCase{
		repo:  repo,
		cache: cache,
	}
}

// ImportResult summarizes an import
type ImportResult struct {
	Saved   []types.ShortName
	Removed []types.ShortName
}

// Import stores property definitions. All definitions are validated before
// anything is written. With prune, stored properties that are not in props
// are deleted.
func (uc *PropertyUseCase) Import(ctx context.Context, props []*model.Property, prune bool) (*ImportResult, error) {
	if err := model.ValidateProperties(props); err != nil {
		return nil, goerr.Wrap(err, "invalid property definitions")
	}

	result := &ImportResult{}
	keep := make(map[types.ShortName]bool, len(props))
	for _, p := range props {
		if err := uc.repo.Property().Put(ctx, p); err != nil {
			return nil, goerr.Wrap(err, "failed to save property", goerr.V(model.ShortNameKey, p.ShortName))
		}
		keep[p.ShortName] = true
		result.Saved = append(result.Saved, p.ShortName)
	}

	if prune {
		existing, err := uc.repo.Property().List(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list properties for pruning")
		}
		for _, p := range existing {
			if keep[p.ShortName] {
				continue
			}
			if err := uc.repo.Property().Delete(ctx, p.ShortName); err != nil {
				return nil, goerr.Wrap(err, "failed to delete property", goerr.V(model.ShortNameKey, p.ShortName))
			}
			result.Removed = append(result.Removed, p.ShortName)
		}
	}

	if uc.cache != nil {
		if err := uc.cache.Refresh(ctx); err != nil {
			return nil, goerr.Wrap(err, "properties saved but cache refresh failed")
		}
	}

	logging.From(ctx).Info("properties imported",
		"saved", len(result.Saved),
		"removed", len(result.Removed))
	return result, nil
}

// List returns the stored properties in display order
func (uc *PropertyUseCase) List(ctx context.Context) ([]*model.Property, error) {
	props, err := uc.repo.Property().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list properties")
	}
	return props, nil
}
