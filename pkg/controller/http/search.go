package http

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/adapter/htmltree"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/switcher"
	"github.com/secmon-lab/fieldswitch/pkg/utils/errutil"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
	"github.com/secmon-lab/fieldswitch/pkg/utils/safe"
)

// PropertyListID is the id of the script element carrying the field registry
const PropertyListID = "property-list"

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var searchTemplate = template.Must(template.ParseFS(templateFS, "templates/search.html.tmpl"))

// SearchUseCase provides the data of the search page
type SearchUseCase interface {
	Form(ctx context.Context, q model.SearchQuery) (*model.SearchForm, error)
	Registry(ctx context.Context) (*switcher.Registry, error)
}

// Page holds the page level settings of a rendered search form
type Page struct {
	Title string
	Nonce string
	WASM  bool // load the client side switcher from /assets
}

type searchPageData struct {
	Page
	Form *model.SearchForm
}

// RenderSearchPage renders the search form for q and applies the field switcher
// to the result, so the written page already shows only the active field.
func RenderSearchPage(ctx context.Context, w io.Writer, uc SearchUseCase, q model.SearchQuery, page Page) (*switcher.FieldState, error) {
	form, err := uc.Form(ctx, q)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build search form")
	}

	var buf bytes.Buffer
	if err := searchTemplate.Execute(&buf, searchPageData{Page: page, Form: form}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute search template")
	}

	doc, err := htmltree.Parse(&buf)
	if err != nil {
		return nil, err
	}

	reg, err := doc.Registry(PropertyListID)
	if err != nil {
		return nil, err
	}

	sw, err := switcher.New(reg, model.FallbackFieldID, doc, doc.Selector(model.PropertySelectorID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create field switcher")
	}
	state := sw.Init()

	logging.From(ctx).Debug("search form rendered",
		"selected", form.Selected,
		"active", state.Active(),
		"fallback", state.UsedFallback(),
	)

	if err := doc.Render(w); err != nil {
		return nil, err
	}
	return state, nil
}

// ParseSearchQuery reads the search form state from URL query values.
// Every value besides the fixed fields is kept as a candidate choice.
func ParseSearchQuery(values url.Values) model.SearchQuery {
	q := model.SearchQuery{
		Property: values.Get(model.FieldName(model.PropertySelectorID)),
		Search:   values.Get(model.FieldName(model.FallbackFieldID)),
		Archive:  values.Get(model.FieldName(model.ArchiveSelectorID)),
		Choices:  make(map[string]string),
	}

	for key := range values {
		switch key {
		case model.FieldName(model.PropertySelectorID),
			model.FieldName(model.FallbackFieldID),
			model.FieldName(model.ArchiveSelectorID):
			continue
		}
		q.Choices[key] = values.Get(key)
	}
	return q
}

func contentSecurityPolicy(nonce string) string {
	return "default-src 'self'; " +
		"script-src 'self' 'nonce-" + nonce + "' 'wasm-unsafe-eval'; " +
		"style-src 'self' 'nonce-" + nonce + "'"
}

func searchPageHandler(uc SearchUseCase, title string, wasm bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		nonce := uuid.NewString()

		var buf bytes.Buffer
		page := Page{Title: title, Nonce: nonce, WASM: wasm}
		if _, err := RenderSearchPage(ctx, &buf, uc, ParseSearchQuery(r.URL.Query()), page); err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Security-Policy", contentSecurityPolicy(nonce))
		safe.Write(ctx, w, buf.Bytes())
	}
}

// propertyListHandler serves the field registry as a JSON array
func propertyListHandler(uc SearchUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reg, err := uc.Registry(ctx)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to get field registry"), http.StatusInternalServerError)
			return
		}

		data, err := json.Marshal(reg)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal field registry"), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		safe.Write(ctx, w, data)
	}
}
