package model

// ArchiveFilter selects locations by their archive status
type ArchiveFilter string

const (
	ArchiveActive   ArchiveFilter = "active"
	ArchiveArchived ArchiveFilter = "archived"
	ArchiveAll      ArchiveFilter = "all"
)

// ArchiveFilterOption is one entry of the archive selector
type ArchiveFilterOption struct {
	Value ArchiveFilter
	Label string
}

// ArchiveFilterOptions returns the archive selector entries in display order
func ArchiveFilterOptions() []ArchiveFilterOption {
	return []ArchiveFilterOption{
		{Value: ArchiveActive, Label: "Active"},
		{Value: ArchiveArchived, Label: "Archived"},
		{Value: ArchiveAll, Label: "All"},
	}
}

// ParseArchiveFilter maps a raw query value to a filter; unknown values mean active
func ParseArchiveFilter(s string) ArchiveFilter {
	switch ArchiveFilter(s) {
	case ArchiveActive, ArchiveArchived, ArchiveAll:
		return ArchiveFilter(s)
	default:
		return ArchiveActive
	}
}
