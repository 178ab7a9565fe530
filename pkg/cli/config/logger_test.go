package config_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fieldswitch/pkg/cli/config"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr error
	}{
		{name: "console info", level: "info", format: "console"},
		{name: "json debug", level: "debug", format: "json"},
		{name: "level is case insensitive", level: "WARN", format: "json"},
		{name: "unknown level", level: "verbose", format: "json", wantErr: config.ErrInvalidLogLevel},
		{name: "unknown format", level: "info", format: "xml", wantErr: config.ErrInvalidLogFormat},
	}

	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "app.log")
			closer, err := config.NewLoggerForTest(tt.level, tt.format, output).Configure()
			defer closer()

			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err)
		})
	}
}

func TestRepository_Configure(t *testing.T) {
	ctx := context.Background()

	repo, err := config.NewRepositoryForTest(config.BackendMemory, "").Configure(ctx)
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.Close())

	_, err = config.NewRepositoryForTest(config.BackendFirestore, "").Configure(ctx)
	gt.Error(t, err).Is(config.ErrMissingProjectID)

	_, err = config.NewRepositoryForTest("postgres", "").Configure(ctx)
	gt.Error(t, err).Is(config.ErrInvalidBackend)
}
