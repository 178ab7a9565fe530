package switcher

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
)

// Registry is the ordered, immutable list of field IDs the switcher manages.
// It is built once per page and never changes afterwards.
type Registry struct {
	ids   []types.FieldID
	index map[types.FieldID]struct{}
}

// NewRegistry creates a registry from field IDs. Duplicates are dropped,
// keeping the first occurrence. An empty registry is valid.
func NewRegistry(ids ...types.FieldID) *Registry {
	r := &Registry{
		ids:   make([]types.FieldID, 0, len(ids)),
		index: make(map[types.FieldID]struct{}, len(ids)),
	}
	for _, id := range ids {
		if _, ok := r.index[id]; ok {
			continue
		}
		r.index[id] = struct{}{}
		r.ids = append(r.ids, id)
	}
	return r
}

// ParseRegistry decodes the JSON payload embedded in the page: an array of strings
func ParseRegistry(data []byte) (*Registry, error) {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(ErrInvalidPayload, "failed to decode field registry",
			goerr.V("cause", err.Error()))
	}

	ids := make([]types.FieldID, len(raw))
	for i, s := range raw {
		ids[i] = types.FieldID(s)
	}
	return NewRegistry(ids...), nil
}

// Contains reports exact membership
func (r *Registry) Contains(id types.FieldID) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[id]
	return ok
}

// IDs returns a copy of the field IDs in registry order
func (r *Registry) IDs() []types.FieldID {
	if r == nil {
		return nil
	}
	ids := make([]types.FieldID, len(r.ids))
	copy(ids, r.ids)
	return ids
}

// Len returns the number of field IDs
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ids)
}

// MarshalJSON encodes the registry in the page payload format
func (r *Registry) MarshalJSON() ([]byte, error) {
	raw := make([]string, 0, r.Len())
	if r != nil {
		for _, id := range r.ids {
			raw = append(raw, string(id))
		}
	}
	return json.Marshal(raw)
}
