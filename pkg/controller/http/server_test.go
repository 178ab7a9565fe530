package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fieldswitch/pkg/adapter/htmltree"
	httpctrl "github.com/secmon-lab/fieldswitch/pkg/controller/http"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
	"github.com/secmon-lab/fieldswitch/pkg/repository/memory"
	"github.com/secmon-lab/fieldswitch/pkg/usecase"
)

func setupUseCase(t *testing.T) *usecase.UseCases {
	t.Helper()
	repo := memory.New()
	ctx := context.Background()
	for _, p := range []*model.Property{
		{ShortName: "city", Label: "City", Type: types.PropertyTypeChoice, Options: []string{"Amsterdam", "Utrecht"}, Order: 1},
		{ShortName: "owner", Label: "Owner", Type: types.PropertyTypeChoice, Options: []string{"Municipality", "Private"}, Order: 2},
		{ShortName: "street", Label: "Street", Type: types.PropertyTypeString, Order: 3},
	} {
		gt.NoError(t, repo.Property().Put(ctx, p)).Required()
	}
	return usecase.New(repo)
}

func getPage(t *testing.T, srv http.Handler, query string) (*httptest.ResponseRecorder, *htmltree.Document) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	doc, err := htmltree.Parse(bytes.NewReader(w.Body.Bytes()))
	gt.NoError(t, err).Required()
	return w, doc
}

func fieldOf(t *testing.T, doc *htmltree.Document, id types.FieldID) *htmltree.Field {
	t.Helper()
	h, ok := doc.Resolve(id)
	gt.Bool(t, ok).True()
	f, ok := h.(*htmltree.Field)
	gt.Bool(t, ok).True()
	return f
}

func TestSearchPage(t *testing.T) {
	testCases := []struct {
		name    string
		query   string
		visible types.FieldID
	}{
		{name: "choice property shows its select", query: "property=city", visible: "id_city"},
		{name: "second choice property", query: "property=owner&owner=Private", visible: "id_owner"},
		{name: "free text property uses fallback", query: "property=street", visible: "id_search"},
		{name: "unknown property uses fallback", query: "property=nonexistent", visible: "id_search"},
		{name: "no selection uses fallback", query: "", visible: "id_search"},
	}

	srv := httpctrl.New(setupUseCase(t).Search)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, doc := getPage(t, srv, tc.query)

			for _, id := range []types.FieldID{"id_city", "id_owner", "id_search"} {
				f := fieldOf(t, doc, id)
				want := id == tc.visible
				gt.Value(t, f.Visible()).Equal(want)
				gt.Value(t, f.Enabled()).Equal(want)
			}

			// controls outside the registry are untouched
			gt.Bool(t, fieldOf(t, doc, model.PropertySelectorID).Visible()).True()
			gt.Bool(t, fieldOf(t, doc, model.ArchiveSelectorID).Enabled()).True()
		})
	}
}

func TestSearchPage_KeepsQueryValues(t *testing.T) {
	srv := httpctrl.New(setupUseCase(t).Search)
	_, doc := getPage(t, srv, "property=owner&owner=Private&archive=archived&search=dam")

	gt.Value(t, doc.Selector(model.PropertySelectorID).Value()).Equal("owner")
	gt.Value(t, doc.Selector("id_owner").Value()).Equal("Private")
	gt.Value(t, doc.Selector(model.ArchiveSelectorID).Value()).Equal("archived")

	reg, err := doc.Registry(httpctrl.PropertyListID)
	gt.NoError(t, err).Required()
	gt.Value(t, reg.IDs()).Equal([]types.FieldID{"id_city", "id_owner"})
}

func TestSearchPage_ContentSecurityPolicy(t *testing.T) {
	srv := httpctrl.New(setupUseCase(t).Search)
	w, _ := getPage(t, srv, "")

	csp := w.Header().Get("Content-Security-Policy")
	_, rest, found := strings.Cut(csp, "'nonce-")
	gt.Bool(t, found).True()
	nonce, _, found := strings.Cut(rest, "'")
	gt.Bool(t, found).True()
	gt.String(t, w.Body.String()).Contains(`nonce="` + nonce + `"`)

	// no bundle is loaded without an assets dir
	gt.Bool(t, strings.Contains(w.Body.String(), "fieldswitch.wasm")).False()
}

func TestPropertyList(t *testing.T) {
	srv := httpctrl.New(setupUseCase(t).Search)

	req := httptest.NewRequest(http.MethodGet, "/api/property-list", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, w.Header().Get("Content-Type")).Equal("application/json")

	var ids []string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &ids)).Required()
	gt.Value(t, ids).Equal([]string{"id_city", "id_owner"})
}

func TestAssets(t *testing.T) {
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "wasm_exec.js"), []byte("// runtime"), 0o644)).Required()

	srv := httpctrl.New(setupUseCase(t).Search, httpctrl.WithAssetsDir(dir), httpctrl.WithTitle("Assets"))

	req := httptest.NewRequest(http.MethodGet, "/assets/wasm_exec.js", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, w.Body.String()).Equal("// runtime")

	page, _ := getPage(t, srv, "")
	gt.String(t, page.Body.String()).Contains("/assets/fieldswitch.wasm")
	gt.String(t, page.Body.String()).Contains("<title>Assets</title>")
}

func TestHealthz(t *testing.T) {
	srv := httpctrl.New(setupUseCase(t).Search)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, w.Body.String()).Equal("ok")
}

func TestParseSearchQuery(t *testing.T) {
	q := httpctrl.ParseSearchQuery(url.Values{
		"property": {"city"},
		"search":   {"dam"},
		"archive":  {"all"},
		"city":     {"Utrecht"},
	})

	gt.Value(t, q.Property).Equal("city")
	gt.Value(t, q.Search).Equal("dam")
	gt.Value(t, q.Archive).Equal("all")
	gt.Value(t, q.Choices).Equal(map[string]string{"city": "Utrecht"})
}
