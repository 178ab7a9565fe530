package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
)

type propertyRepository struct {
	mu         sync.RWMutex
	properties map[types.ShortName]*model.Property
}

func newPropertyRepository() *propertyRepository {
	return &propertyRepository{
		properties: make(map[types.ShortName]*model.Property),
	}
}

// copyProperty creates a deep copy so callers cannot mutate stored data
func copyProperty(p *model.Property) *model.Property {
	copied := *p
	copied.Options = slices.Clone(p.Options)
	return &copied
}

func (r *propertyRepository) List(ctx context.Context) ([]*model.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	props := make([]*model.Property, 0, len(r.properties))
	for _, p := range r.properties {
		props = append(props, copyProperty(p))
	}
	return model.SortProperties(props), nil
}

func (r *propertyRepository) Get(ctx context.Context, name types.ShortName) (*model.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.properties[name]
	if !ok {
		return nil, goerr.Wrap(model.ErrPropertyNotFound, "property not found", goerr.V(model.ShortNameKey, name))
	}
	return copyProperty(p), nil
}

func (r *propertyRepository) Put(ctx context.Context, prop *model.Property) error {
	if err := prop.Validate(); err != nil {
		return goerr.Wrap(err, "refusing to store invalid property")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.properties[prop.ShortName] = copyProperty(prop)
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, name types.ShortName) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.properties[name]; !ok {
		return goerr.Wrap(model.ErrPropertyNotFound, "property not found", goerr.V(model.ShortNameKey, name))
	}
	delete(r.properties, name)
	return nil
}
