package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// FieldID is the identifier of one input element of the search form
type FieldID string

// String returns the string representation of the field ID
func (id FieldID) String() string {
	return string(id)
}

// PropertyType represents the data type of a location property
type PropertyType string

const (
	PropertyTypeBool     PropertyType = "BOOL"
	PropertyTypeDate     PropertyType = "DATE"
	PropertyTypeEmail    PropertyType = "EMAIL"
	PropertyTypeGeo      PropertyType = "GEO"
	PropertyTypeNumber   PropertyType = "NUM"
	PropertyTypeMemo     PropertyType = "MEMO"
	PropertyTypePostcode PropertyType = "POST"
	PropertyTypeString   PropertyType = "STR"
	PropertyTypeURL      PropertyType = "URL"
	// PropertyTypeChoice has a fixed list of options and gets its own select field
	PropertyTypeChoice PropertyType = "CHOICE"
)

// AllPropertyTypes returns all valid property types
func AllPropertyTypes() []PropertyType {
	return []PropertyType{
		PropertyTypeBool,
		PropertyTypeDate,
		PropertyTypeEmail,
		PropertyTypeGeo,
		PropertyTypeNumber,
		PropertyTypeMemo,
		PropertyTypePostcode,
		PropertyTypeString,
		PropertyTypeURL,
		PropertyTypeChoice,
	}
}

// IsValid checks if the property type is valid
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeBool,
		PropertyTypeDate,
		PropertyTypeEmail,
		PropertyTypeGeo,
		PropertyTypeNumber,
		PropertyTypeMemo,
		PropertyTypePostcode,
		PropertyTypeString,
		PropertyTypeURL,
		PropertyTypeChoice:
		return true
	default:
		return false
	}
}

// HasOptions reports whether values of this type are picked from a list
func (t PropertyType) HasOptions() bool {
	return t == PropertyTypeChoice
}

// String returns the string representation of the property type
func (t PropertyType) String() string {
	return string(t)
}

// ShortName is the key of a location property. It is the value sent by the
// property selector and the suffix of the property's field ID.
type ShortName string

// ErrInvalidShortName is returned for short names that break the naming rules
var ErrInvalidShortName = goerr.New("invalid short name")

var shortNamePattern = regexp.MustCompile(`^[a-z]+[0-9a-z_]+$`)

// maxShortNameLength matches the column width of the property table
const maxShortNameLength = 10

// Validate checks if the ShortName is valid
func (s ShortName) Validate() error {
	if s == "" {
		return goerr.Wrap(ErrInvalidShortName, "short name cannot be empty")
	}
	if len(s) > maxShortNameLength {
		return goerr.Wrap(ErrInvalidShortName, "short name is too long", goerr.V("short_name", s), goerr.V("max", maxShortNameLength))
	}
	if !shortNamePattern.MatchString(string(s)) {
		return goerr.Wrap(ErrInvalidShortName, "short name must start with a lowercase letter followed by lowercase letters, digits or underscores", goerr.V("short_name", s))
	}
	return nil
}

// String returns the string representation of ShortName
func (s ShortName) String() string {
	return string(s)
}
