package switcher

import "github.com/secmon-lab/fieldswitch/pkg/domain/types"

// Visibility is the derived status of one field
type Visibility struct {
	Visible bool
	Enabled bool
}

var (
	shown  = Visibility{Visible: true, Enabled: true}
	hidden = Visibility{}
)

// FieldState is the visibility of every registry field and the fallback field
// after one switch. Exactly one field is visible and enabled.
type FieldState struct {
	order    []types.FieldID
	fields   map[types.FieldID]Visibility
	active   types.FieldID
	fallback types.FieldID
}

// Active returns the single visible and enabled field
func (s *FieldState) Active() types.FieldID {
	return s.active
}

// Fallback returns the fallback field ID the state was computed with
func (s *FieldState) Fallback() types.FieldID {
	return s.fallback
}

// UsedFallback reports whether the selected property had no field of its own
func (s *FieldState) UsedFallback() bool {
	return s.active == s.fallback
}

// Get returns the visibility of a field. Unknown fields are hidden.
func (s *FieldState) Get(id types.FieldID) (Visibility, bool) {
	v, ok := s.fields[id]
	return v, ok
}

// IDs returns all fields covered by the state: registry order, fallback last
func (s *FieldState) IDs() []types.FieldID {
	ids := make([]types.FieldID, len(s.order))
	copy(ids, s.order)
	return ids
}

// Equal reports whether two states assign the same visibility to the same fields
func (s *FieldState) Equal(other *FieldState) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.active != other.active || s.fallback != other.fallback || len(s.fields) != len(other.fields) {
		return false
	}
	for id, v := range s.fields {
		if ov, ok := other.fields[id]; !ok || ov != v {
			return false
		}
	}
	return true
}
