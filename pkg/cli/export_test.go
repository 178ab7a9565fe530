package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/fireconf"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
)

// GetIndexConfig exposes getIndexConfig for testing
func GetIndexConfig(collectionPrefix string) *fireconf.Config {
	return getIndexConfig(collectionPrefix)
}

// CollectionNames exposes collectionNames for testing
func CollectionNames(cfg *fireconf.Config) []string {
	return collectionNames(cfg)
}

// CheckFieldSwitching exposes checkFieldSwitching for testing
func CheckFieldSwitching(ctx context.Context, w io.Writer, props []*model.Property) error {
	return checkFieldSwitching(ctx, w, props)
}

// ParseChoices exposes parseChoices for testing
func ParseChoices(values []string) (map[string]string, error) {
	return parseChoices(values)
}
