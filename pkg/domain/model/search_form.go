package model

import "github.com/secmon-lab/fieldswitch/pkg/domain/types"

// SearchQuery is the raw state of the search form as found in the request URL
type SearchQuery struct {
	Property string            // raw value of the property selector
	Search   string            // value of the free text field
	Archive  string            // raw archive filter value
	Choices  map[string]string // selected option per CHOICE property short name
}

// SearchForm is everything the page template needs to render the location search form
type SearchForm struct {
	Properties []*Property // selectable properties in display order
	Selected   string      // raw selector value, kept even if it matches no property
	Search     string
	Archive    ArchiveFilter
	Choices    []ChoiceField
	FieldIDs   []types.FieldID // registry payload embedded in the page
}

// ChoiceField is the select element of one CHOICE property
type ChoiceField struct {
	ID       types.FieldID
	Name     string
	Label    string
	Options  []string
	Selected string
}

// ArchiveOptions exposes the archive selector entries to templates
func (f *SearchForm) ArchiveOptions() []ArchiveFilterOption {
	return ArchiveFilterOptions()
}

// NewSearchForm builds the form model for the given properties and query.
// Properties must already be filtered and sorted.
func NewSearchForm(props []*Property, q SearchQuery) *SearchForm {
	form := &SearchForm{
		Properties: props,
		Selected:   q.Property,
		Search:     q.Search,
		Archive:    ParseArchiveFilter(q.Archive),
		FieldIDs:   SearchFieldIDs(props),
	}

	for _, p := range props {
		if !p.Type.HasOptions() {
			continue
		}
		name := p.ShortName.String()
		choice := ChoiceField{
			ID:      p.FieldID(),
			Name:    name,
			Label:   p.Label,
			Options: p.Options,
		}
		if v, ok := q.Choices[name]; ok {
			choice.Selected = v
		}
		form.Choices = append(form.Choices, choice)
	}

	return form
}
