package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fieldswitch/pkg/adapter/htmltree"
	"github.com/secmon-lab/fieldswitch/pkg/cli"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
)

func renderPage(t *testing.T, args ...string) *htmltree.Document {
	t.Helper()
	configPath := writeConfig(t, testConfig)
	output := filepath.Join(t.TempDir(), "search.html")

	argv := append([]string{"fieldswitch", "render",
		"--config", configPath,
		"--repository-backend", "memory",
		"--output", output,
	}, args...)
	gt.NoError(t, cli.Run(context.Background(), argv, "test")).Required()

	data, err := os.ReadFile(output)
	gt.NoError(t, err).Required()
	doc, err := htmltree.Parse(bytes.NewReader(data))
	gt.NoError(t, err).Required()
	return doc
}

func visibleFields(t *testing.T, doc *htmltree.Document) []types.FieldID {
	t.Helper()
	var visible []types.FieldID
	for _, id := range []types.FieldID{"id_city", "id_owner", "id_search"} {
		h, ok := doc.Resolve(id)
		if !ok {
			continue
		}
		f := h.(*htmltree.Field)
		if f.Visible() && f.Enabled() {
			visible = append(visible, id)
		}
	}
	return visible
}

func TestRun_RenderCommand(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want []types.FieldID
	}{
		{name: "choice property", args: []string{"--property", "owner", "--choice", "owner=Private"}, want: []types.FieldID{"id_owner"}},
		{name: "free text property", args: []string{"--property", "street", "--search", "Main"}, want: []types.FieldID{"id_search"}},
		{name: "no property", args: nil, want: []types.FieldID{"id_search"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := renderPage(t, tc.args...)
			gt.Value(t, visibleFields(t, doc)).Equal(tc.want)
		})
	}
}

func TestRun_RenderCommand_PublicOnly(t *testing.T) {
	doc := renderPage(t, "--public-only", "--property", "owner")

	_, ok := doc.Resolve("id_owner")
	gt.Bool(t, ok).False()
	gt.Value(t, visibleFields(t, doc)).Equal([]types.FieldID{"id_search"})
}

func TestRun_RenderCommand_InvalidChoice(t *testing.T) {
	configPath := writeConfig(t, testConfig)
	err := cli.Run(context.Background(), []string{"fieldswitch", "render",
		"--config", configPath,
		"--choice", "owner",
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestParseChoices(t *testing.T) {
	choices, err := cli.ParseChoices([]string{"city=Utrecht", "owner=", "note=a=b"})
	gt.NoError(t, err).Required()
	gt.Value(t, choices).Equal(map[string]string{"city": "Utrecht", "owner": "", "note": "a=b"})

	_, err = cli.ParseChoices([]string{"=x"})
	gt.Value(t, err).NotNil()
}
