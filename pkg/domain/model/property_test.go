package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
)

func TestDeriveFieldID(t *testing.T) {
	gt.Value(t, model.DeriveFieldID("city")).Equal(types.FieldID("id_city"))
	gt.Value(t, model.DeriveFieldID("")).Equal(types.FieldID("id_"))
	gt.Value(t, model.DeriveFieldID(" City")).Equal(types.FieldID("id_ City"))
}

func TestFieldName(t *testing.T) {
	gt.Value(t, model.FieldName("id_city")).Equal("city")
	gt.Value(t, model.FieldName(model.FallbackFieldID)).Equal("search")
	gt.Value(t, model.FieldName("city")).Equal("city")
	gt.Value(t, model.FieldName(model.DeriveFieldID("zip_code"))).Equal("zip_code")
}

func TestProperty_Validate(t *testing.T) {
	tests := []struct {
		name    string
		prop    model.Property
		wantErr error
	}{
		{
			name: "valid choice",
			prop: model.Property{ShortName: "city", Label: "City", Type: types.PropertyTypeChoice, Options: []string{"Amsterdam", "Utrecht"}},
		},
		{
			name: "valid text",
			prop: model.Property{ShortName: "street", Label: "Street", Type: types.PropertyTypeString},
		},
		{
			name:    "missing label",
			prop:    model.Property{ShortName: "city", Type: types.PropertyTypeString},
			wantErr: model.ErrMissingLabel,
		},
		{
			name:    "invalid type",
			prop:    model.Property{ShortName: "city", Label: "City", Type: "LIST"},
			wantErr: model.ErrInvalidPropertyType,
		},
		{
			name:    "negative order",
			prop:    model.Property{ShortName: "city", Label: "City", Type: types.PropertyTypeString, Order: -1},
			wantErr: model.ErrInvalidOrder,
		},
		{
			name:    "choice without options",
			prop:    model.Property{ShortName: "city", Label: "City", Type: types.PropertyTypeChoice},
			wantErr: model.ErrMissingOptions,
		},
		{
			name:    "options on text property",
			prop:    model.Property{ShortName: "city", Label: "City", Type: types.PropertyTypeString, Options: []string{"a"}},
			wantErr: model.ErrUnexpectedOptions,
		},
		{
			name:    "duplicate option",
			prop:    model.Property{ShortName: "city", Label: "City", Type: types.PropertyTypeChoice, Options: []string{"a", "a"}},
			wantErr: model.ErrDuplicateOption,
		},
		{
			name:    "empty option",
			prop:    model.Property{ShortName: "city", Label: "City", Type: types.PropertyTypeChoice, Options: []string{""}},
			wantErr: model.ErrEmptyOption,
		},
		{
			name:    "choice named like the free text field",
			prop:    model.Property{ShortName: "search", Label: "Search", Type: types.PropertyTypeChoice, Options: []string{"a"}},
			wantErr: model.ErrReservedFieldID,
		},
		{
			name: "text property may reuse a reserved name",
			prop: model.Property{ShortName: "archive", Label: "Archive", Type: types.PropertyTypeString},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prop.Validate()
			if tt.wantErr == nil {
				gt.NoError(t, err)
				return
			}
			gt.Error(t, err).Is(tt.wantErr)
		})
	}

	t.Run("invalid short name", func(t *testing.T) {
		p := model.Property{ShortName: "City", Label: "City", Type: types.PropertyTypeString}
		gt.Error(t, p.Validate()).Is(types.ErrInvalidShortName)
	})
}

func TestProperty_FieldID(t *testing.T) {
	choice := &model.Property{ShortName: "city", Type: types.PropertyTypeChoice}
	text := &model.Property{ShortName: "street", Type: types.PropertyTypeString}

	gt.Value(t, choice.FieldID()).Equal(types.FieldID("id_city"))
	gt.Value(t, text.FieldID()).Equal(model.FallbackFieldID)
}

func TestSortProperties(t *testing.T) {
	props := []*model.Property{
		{ShortName: "zz", Label: "Zeta"},
		{ShortName: "bb", Label: "Beta", Order: 2},
		{ShortName: "aa", Label: "Alpha"},
		{ShortName: "cc", Label: "Gamma", Order: 1},
		{ShortName: "dd", Label: "Delta", Order: 2},
	}

	sorted := model.SortProperties(props)

	var names []types.ShortName
	for _, p := range sorted {
		names = append(names, p.ShortName)
	}
	gt.Value(t, names).Equal([]types.ShortName{"cc", "bb", "dd", "aa", "zz"})
}

func TestPublicProperties(t *testing.T) {
	props := []*model.Property{
		{ShortName: "city", Public: true},
		{ShortName: "owner", Public: false},
		{ShortName: "zip", Public: true},
	}

	public := model.PublicProperties(props)
	gt.Array(t, public).Length(2)
	gt.Value(t, public[0].ShortName).Equal(types.ShortName("city"))
	gt.Value(t, public[1].ShortName).Equal(types.ShortName("zip"))
}

func TestSearchFieldIDs(t *testing.T) {
	props := []*model.Property{
		{ShortName: "city", Type: types.PropertyTypeChoice, Options: []string{"a"}},
		{ShortName: "street", Type: types.PropertyTypeString},
		{ShortName: "zip", Type: types.PropertyTypeChoice, Options: []string{"b"}},
	}

	gt.Value(t, model.SearchFieldIDs(props)).Equal([]types.FieldID{"id_city", "id_zip"})
	gt.Array(t, model.SearchFieldIDs(nil)).Length(0)
}

func TestValidateProperties(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		props := []*model.Property{
			{ShortName: "city", Label: "City", Type: types.PropertyTypeChoice, Options: []string{"a"}},
			{ShortName: "street", Label: "Street", Type: types.PropertyTypeString},
		}
		gt.NoError(t, model.ValidateProperties(props))
	})

	t.Run("duplicate short name", func(t *testing.T) {
		props := []*model.Property{
			{ShortName: "city", Label: "City", Type: types.PropertyTypeString},
			{ShortName: "city", Label: "Town", Type: types.PropertyTypeString},
		}
		gt.Error(t, model.ValidateProperties(props)).Is(model.ErrDuplicateShortName)
	})
}

func TestParseArchiveFilter(t *testing.T) {
	gt.Value(t, model.ParseArchiveFilter("active")).Equal(model.ArchiveActive)
	gt.Value(t, model.ParseArchiveFilter("archived")).Equal(model.ArchiveArchived)
	gt.Value(t, model.ParseArchiveFilter("all")).Equal(model.ArchiveAll)
	gt.Value(t, model.ParseArchiveFilter("")).Equal(model.ArchiveActive)
	gt.Value(t, model.ParseArchiveFilter("deleted")).Equal(model.ArchiveActive)
}

func TestNewSearchForm(t *testing.T) {
	props := []*model.Property{
		{ShortName: "city", Label: "City", Type: types.PropertyTypeChoice, Options: []string{"Amsterdam", "Utrecht"}},
		{ShortName: "street", Label: "Street", Type: types.PropertyTypeString},
	}

	form := model.NewSearchForm(props, model.SearchQuery{
		Property: "city",
		Archive:  "bogus",
		Choices:  map[string]string{"city": "Utrecht"},
	})

	gt.Value(t, form.Selected).Equal("city")
	gt.Value(t, form.Archive).Equal(model.ArchiveActive)
	gt.Value(t, form.FieldIDs).Equal([]types.FieldID{"id_city"})
	gt.Array(t, form.Choices).Length(1)
	gt.Value(t, form.Choices[0].ID).Equal(types.FieldID("id_city"))
	gt.Value(t, form.Choices[0].Name).Equal("city")
	gt.Value(t, form.Choices[0].Selected).Equal("Utrecht")
	gt.Array(t, form.ArchiveOptions()).Length(3)
}
