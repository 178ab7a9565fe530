package model

import "github.com/secmon-lab/fieldswitch/pkg/domain/types"

// FieldIDPrefix is prepended to a selector value to build the ID of the
// input element for that property. The form generator and the field
// switcher must both go through DeriveFieldID.
const FieldIDPrefix = "id_"

const (
	// PropertySelectorID is the select element that chooses the property to search by
	PropertySelectorID types.FieldID = FieldIDPrefix + "property"
	// FallbackFieldID is the free text input used for properties without a choice list
	FallbackFieldID types.FieldID = FieldIDPrefix + "search"
	// ArchiveSelectorID is the select element for the archive filter
	ArchiveSelectorID types.FieldID = FieldIDPrefix + "archive"
)

// DeriveFieldID returns the input element ID for a raw property selector value.
// The value is used as is: no trimming, no case folding.
func DeriveFieldID(selected string) types.FieldID {
	return types.FieldID(FieldIDPrefix + selected)
}

// FieldName returns the form field name for a derived ID, the inverse of DeriveFieldID.
// IDs without the prefix are returned unchanged.
func FieldName(id types.FieldID) string {
	s := string(id)
	if len(s) >= len(FieldIDPrefix) && s[:len(FieldIDPrefix)] == FieldIDPrefix {
		return s[len(FieldIDPrefix):]
	}
	return s
}

// IsReservedFieldID reports whether id belongs to one of the fixed form fields
func IsReservedFieldID(id types.FieldID) bool {
	switch id {
	case PropertySelectorID, FallbackFieldID, ArchiveSelectorID:
		return true
	}
	return false
}
