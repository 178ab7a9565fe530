package config

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
	"github.com/secmon-lab/fieldswitch/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

const gcsScheme = "gs://"

// PropertyFile is the TOML representation of the property definitions
type PropertyFile struct {
	Properties []PropertyEntry `toml:"property"`
}

// PropertyEntry is one [[property]] table
type PropertyEntry struct {
	ShortName string   `toml:"short_name"`
	Label     string   `toml:"label"`
	Type      string   `toml:"type"`
	Options   []string `toml:"options"`
	Public    bool     `toml:"public"`
	Order     int      `toml:"order"`
}

// ToModel converts the entry to a domain property. The type is case insensitive.
func (e *PropertyEntry) ToModel() *model.Property {
	return &model.Property{
		ShortName: types.ShortName(e.ShortName),
		Label:     e.Label,
		Type:      types.PropertyType(strings.ToUpper(e.Type)),
		Options:   e.Options,
		Public:    e.Public,
		Order:     e.Order,
	}
}

// ParseProperties decodes and validates property definitions from TOML
func ParseProperties(data []byte) ([]*model.Property, error) {
	var file PropertyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config", goerr.V("parse_error", err.Error()))
	}

	props := make([]*model.Property, len(file.Properties))
	for i := range file.Properties {
		props[i] = file.Properties[i].ToModel()
	}

	if err := model.ValidateProperties(props); err != nil {
		return nil, goerr.Wrap(err, "property config validation failed")
	}

	return model.SortProperties(props), nil
}

// LoadProperties reads property definitions from a local file or a
// gs://bucket/object URL
func LoadProperties(ctx context.Context, path string) ([]*model.Property, error) {
	data, err := readConfig(ctx, path)
	if err != nil {
		return nil, err
	}

	props, err := ParseProperties(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load property config", goerr.V(ConfigPathKey, path))
	}
	return props, nil
}

func readConfig(ctx context.Context, path string) ([]byte, error) {
	if bucket, object, ok := parseGCSURL(path); ok {
		return readGCSObject(ctx, bucket, object)
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}
	return data, nil
}

// parseGCSURL splits gs://bucket/path/to/object
func parseGCSURL(path string) (bucket, object string, ok bool) {
	rest, found := strings.CutPrefix(path, gcsScheme)
	if !found {
		return "", "", false
	}
	bucket, object, found = strings.Cut(rest, "/")
	if !found || bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}

func readGCSObject(ctx context.Context, bucket, object string) ([]byte, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}
	defer safe.Close(ctx, client)

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config object does not exist",
				goerr.V("bucket", bucket), goerr.V("object", object))
		}
		return nil, goerr.Wrap(err, "failed to open config object",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}
	defer safe.Close(ctx, r)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config object",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}

	logging.From(ctx).Debug("config loaded from cloud storage",
		"bucket", bucket, "object", object, "size", len(data))
	return data, nil
}

// Properties holds the CLI flag pointing at the property definitions
type Properties struct {
	path string
}

// Flags returns CLI flags for the property config
func (p *Properties) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Property definition TOML file (local path or gs://bucket/object)",
			Sources:     cli.EnvVars("FIELDSWITCH_CONFIG"),
			Destination: &p.path,
		},
	}
}

// Path returns the configured location; empty when unset
func (p *Properties) Path() string {
	return p.path
}

// Configure loads the property definitions. Without a path it returns nil.
func (p *Properties) Configure(ctx context.Context) ([]*model.Property, error) {
	if p.path == "" {
		return nil, nil
	}

	props, err := LoadProperties(ctx, p.path)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("property config loaded",
		"path", p.path,
		"properties", len(props),
	)
	return props, nil
}
