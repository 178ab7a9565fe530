package usecase

import (
	"github.com/secmon-lab/fieldswitch/pkg/domain/interfaces"
)

type UseCases struct {
	repo       interfaces.Repository
	publicOnly bool
	cache      *PropertyCache
	Property   *PropertyUseCase
	Search     *SearchUseCase
}

type Option func(*UseCases)

// WithPublicOnly restricts the search form to public properties
func WithPublicOnly(publicOnly bool) Option {
	return func(uc *UseCases) {
		uc.publicOnly = publicOnly
	}
}

// WithPropertyCache shares a cache, e.g. one kept fresh by a refresh worker
func WithPropertyCache(cache *PropertyCache) Option {
	return func(uc *UseCases) {
		uc.cache = cache
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.cache == nil {
		uc.cache = NewPropertyCache(repo)
	}

	uc.Property = NewPropertyUseCase(repo, uc.cache)
	uc.Search = NewSearchUseCase(uc.cache, uc.publicOnly)

	return uc
}

// Cache returns the property cache used by the search form
func (uc *UseCases) Cache() *PropertyCache {
	return uc.cache
}
