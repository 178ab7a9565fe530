package model

import "github.com/m-mizutani/goerr/v2"

// Property validation errors
var (
	ErrMissingLabel        = goerr.New("property label is required")
	ErrInvalidPropertyType = goerr.New("invalid property type")
	ErrInvalidOrder        = goerr.New("invalid property order")
	ErrMissingOptions      = goerr.New("CHOICE property requires at least one option")
	ErrUnexpectedOptions   = goerr.New("options are only allowed for CHOICE properties")
	ErrEmptyOption         = goerr.New("empty option")
	ErrDuplicateOption     = goerr.New("duplicate option")
	ErrDuplicateShortName  = goerr.New("duplicate short name")
	ErrReservedFieldID     = goerr.New("field ID is reserved by the search form")

	ErrPropertyNotFound = goerr.New("property not found")
)

// Context keys for error values
const (
	ShortNameKey     = "short_name"
	PropertyTypeKey  = "property_type"
	OptionKey        = "option"
	PropertyIndexKey = "property_index"
)
