package interfaces

import (
	"context"

	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
)

// PropertyRepository stores location property definitions
type PropertyRepository interface {
	// List returns all properties sorted with model.SortProperties
	List(ctx context.Context) ([]*model.Property, error)

	// Get returns model.ErrPropertyNotFound when the short name is unknown
	Get(ctx context.Context, name types.ShortName) (*model.Property, error)

	// Put creates or replaces a property
	Put(ctx context.Context, prop *model.Property) error

	// Delete removes a property; returns model.ErrPropertyNotFound when it does not exist
	Delete(ctx context.Context, name types.ShortName) error
}
