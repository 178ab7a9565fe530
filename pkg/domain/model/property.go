package model

import (
	"cmp"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
)

// Property is a location property that can be searched on
type Property struct {
	ShortName types.ShortName
	Label     string
	Type      types.PropertyType
	Options   []string // Only used for CHOICE properties
	Public    bool     // Visible to visitors that are not logged in
	Order     int      // 0 means unordered, sorted after ordered properties
}

// Validate checks if the property definition is consistent
func (p *Property) Validate() error {
	if err := p.ShortName.Validate(); err != nil {
		return goerr.Wrap(err, "invalid short name")
	}
	if p.Label == "" {
		return goerr.Wrap(ErrMissingLabel, "property label is required",
			goerr.V(ShortNameKey, p.ShortName))
	}
	if !p.Type.IsValid() {
		return goerr.Wrap(ErrInvalidPropertyType, "unknown property type",
			goerr.V(ShortNameKey, p.ShortName),
			goerr.V(PropertyTypeKey, p.Type))
	}
	if p.Order < 0 {
		return goerr.Wrap(ErrInvalidOrder, "order must not be negative",
			goerr.V(ShortNameKey, p.ShortName))
	}

	if !p.Type.HasOptions() {
		if len(p.Options) > 0 {
			return goerr.Wrap(ErrUnexpectedOptions, "only CHOICE properties can have options",
				goerr.V(ShortNameKey, p.ShortName),
				goerr.V(PropertyTypeKey, p.Type))
		}
		return nil
	}

	if id := p.FieldID(); IsReservedFieldID(id) {
		return goerr.Wrap(ErrReservedFieldID, "CHOICE property would replace a fixed form field",
			goerr.V(ShortNameKey, p.ShortName),
			goerr.V("field_id", id))
	}

	if len(p.Options) == 0 {
		return goerr.Wrap(ErrMissingOptions, "CHOICE property requires at least one option",
			goerr.V(ShortNameKey, p.ShortName))
	}
	seen := make(map[string]bool, len(p.Options))
	for _, opt := range p.Options {
		if opt == "" {
			return goerr.Wrap(ErrEmptyOption, "option cannot be empty",
				goerr.V(ShortNameKey, p.ShortName))
		}
		if seen[opt] {
			return goerr.Wrap(ErrDuplicateOption, "duplicate option",
				goerr.V(ShortNameKey, p.ShortName),
				goerr.V(OptionKey, opt))
		}
		seen[opt] = true
	}
	return nil
}

// FieldID returns the ID of the input element used to search this property.
// CHOICE properties get their own select element, all other types share the
// free text fallback field.
func (p *Property) FieldID() types.FieldID {
	if p.Type.HasOptions() {
		return DeriveFieldID(p.ShortName.String())
	}
	return FallbackFieldID
}

// SortProperties orders properties by Order (unset last), then by Label.
// The input slice is sorted in place and returned.
func SortProperties(props []*Property) []*Property {
	slices.SortStableFunc(props, func(a, b *Property) int {
		switch {
		case a.Order == b.Order:
			return cmp.Compare(a.Label, b.Label)
		case a.Order == 0:
			return 1
		case b.Order == 0:
			return -1
		default:
			return cmp.Compare(a.Order, b.Order)
		}
	})
	return props
}

// PublicProperties returns the properties that anonymous visitors may see
func PublicProperties(props []*Property) []*Property {
	result := make([]*Property, 0, len(props))
	for _, p := range props {
		if p.Public {
			result = append(result, p)
		}
	}
	return result
}

// SearchFieldIDs returns the field IDs of all properties that have their own
// input element, in property order. The fallback field is not included.
func SearchFieldIDs(props []*Property) []types.FieldID {
	ids := make([]types.FieldID, 0, len(props))
	for _, p := range props {
		if p.Type.HasOptions() {
			ids = append(ids, p.FieldID())
		}
	}
	return ids
}

// ValidateProperties validates every property and rejects duplicate short names
func ValidateProperties(props []*Property) error {
	seen := make(map[types.ShortName]bool, len(props))
	for i, p := range props {
		if err := p.Validate(); err != nil {
			return goerr.Wrap(err, "invalid property", goerr.V(PropertyIndexKey, i))
		}
		if seen[p.ShortName] {
			return goerr.Wrap(ErrDuplicateShortName, "duplicate short name",
				goerr.V(ShortNameKey, p.ShortName))
		}
		seen[p.ShortName] = true
	}
	return nil
}
