package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/switcher"
)

type SearchUseCase struct {
	cache      *PropertyCache
	publicOnly bool
}

func NewSearchUseCase(cache *PropertyCache, publicOnly bool) *SearchUseCase {
	return &SearchUseCase{
		cache:      cache,
		publicOnly: publicOnly,
	}
}

func (uc *SearchUseCase) properties(ctx context.Context) ([]*model.Property, error) {
	props, err := uc.cache.Snapshot(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get property snapshot")
	}
	if uc.publicOnly {
		return model.PublicProperties(props), nil
	}
	return props, nil
}

// Form builds the search form model for a request
func (uc *SearchUseCase) Form(ctx context.Context, q model.SearchQuery) (*model.SearchForm, error) {
	props, err := uc.properties(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewSearchForm(props, q), nil
}

// Registry returns the field registry of the search form
func (uc *SearchUseCase) Registry(ctx context.Context) (*switcher.Registry, error) {
	props, err := uc.properties(ctx)
	if err != nil {
		return nil, err
	}
	return switcher.NewRegistry(model.SearchFieldIDs(props)...), nil
}

// Preview computes which field a page would show for a selected property
// without rendering it. Every registered field is assumed to be present.
func (uc *SearchUseCase) Preview(ctx context.Context, selected string) (*switcher.FieldState, error) {
	reg, err := uc.Registry(ctx)
	if err != nil {
		return nil, err
	}
	return switcher.Compute(reg, model.FallbackFieldID, selected, nil), nil
}
