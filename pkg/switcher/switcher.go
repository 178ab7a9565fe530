package switcher

import (
	"slices"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
)

// FieldHandle is a live input element
type FieldHandle interface {
	SetVisible(visible bool)
	SetEnabled(enabled bool)
}

// Resolver looks up live input elements by ID. A missing element is reported
// with ok == false and is not an error.
type Resolver interface {
	Resolve(id types.FieldID) (FieldHandle, bool)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(id types.FieldID) (FieldHandle, bool)

// Resolve implements Resolver
func (f ResolverFunc) Resolve(id types.FieldID) (FieldHandle, bool) {
	return f(id)
}

// Selector reads the current value of the property selector
type Selector interface {
	Value() string
}

// SelectorFunc adapts a function to Selector
type SelectorFunc func() string

// Value implements Selector
func (f SelectorFunc) Value() string {
	return f()
}

// Compute derives the field state for a selected property.
// exists reports whether a field is present in the live page; a nil exists
// treats every field as present. The active field is the derived ID of
// selected when that ID is in the registry and present, the fallback otherwise.
func Compute(registry *Registry, fallback types.FieldID, selected string, exists func(types.FieldID) bool) *FieldState {
	state := &FieldState{
		order:    make([]types.FieldID, 0, registry.Len()+1),
		fields:   make(map[types.FieldID]Visibility, registry.Len()+1),
		fallback: fallback,
	}

	for _, id := range registry.IDs() {
		if id == fallback {
			continue
		}
		state.order = append(state.order, id)
		state.fields[id] = hidden
	}
	state.order = append(state.order, fallback)
	state.fields[fallback] = hidden

	winner := fallback
	activeID := model.DeriveFieldID(selected)
	if registry.Contains(activeID) && (exists == nil || exists(activeID)) {
		winner = activeID
	}

	state.fields[winner] = shown
	state.active = winner
	return state
}

// ApplyReport lists what happened while applying a state to a live page
type ApplyReport struct {
	Applied []types.FieldID // fields found and updated
	Missing []types.FieldID // fields without a live element, skipped
}

// Apply pushes a state to live elements. Every field is hidden and disabled
// first, then the active one is shown and enabled, so no stale visible field
// survives.
func Apply(state *FieldState, resolver Resolver) *ApplyReport {
	report := &ApplyReport{}
	handles := make(map[types.FieldID]FieldHandle, len(state.order))

	for _, id := range state.order {
		h, ok := resolver.Resolve(id)
		if !ok || h == nil {
			report.Missing = append(report.Missing, id)
			continue
		}
		handles[id] = h
		h.SetVisible(false)
		h.SetEnabled(false)
		report.Applied = append(report.Applied, id)
	}

	if h, ok := handles[state.active]; ok {
		h.SetVisible(true)
		h.SetEnabled(true)
	}

	return report
}

// Phase is the lifecycle state of a Switcher
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseApplying
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseApplying:
		return "applying"
	default:
		return "unknown"
	}
}

// Switcher keeps the property specific search fields of one page in sync
// with the property selector. It runs on page load (Init) and on every
// selector change (Changed). Invocations run to completion one at a time.
type Switcher struct {
	registry *Registry
	fallback types.FieldID
	resolver Resolver
	selector Selector

	mu         sync.Mutex
	phase      Phase
	last       *FieldState
	lastReport *ApplyReport
}

// New creates a Switcher. A nil resolver or selector, or an empty fallback,
// is a programming error.
func New(registry *Registry, fallback types.FieldID, resolver Resolver, selector Selector) (*Switcher, error) {
	if resolver == nil {
		return nil, goerr.Wrap(ErrNilResolver, "cannot create switcher")
	}
	if selector == nil {
		return nil, goerr.Wrap(ErrNilSelector, "cannot create switcher")
	}
	if fallback == "" {
		return nil, goerr.Wrap(ErrEmptyFallback, "cannot create switcher")
	}
	if registry == nil {
		registry = NewRegistry()
	}

	return &Switcher{
		registry: registry,
		fallback: fallback,
		resolver: resolver,
		selector: selector,
	}, nil
}

// Init applies the state for the current selector value. Call it once when
// the page is ready.
func (s *Switcher) Init() *FieldState {
	return s.Changed()
}

// Changed re-reads the selector and applies the matching state
func (s *Switcher) Changed() *FieldState {
	return s.Switch(s.selector.Value())
}

// Switch applies the state for an explicit selector value
func (s *Switcher) Switch(selected string) *FieldState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = PhaseApplying
	defer func() { s.phase = PhaseIdle }()

	state := Compute(s.registry, s.fallback, selected, s.exists)
	report := Apply(state, s.resolver)
	s.last = state
	s.lastReport = report

	if len(report.Missing) > 0 {
		logger := logging.Default()
		if slices.Contains(report.Missing, state.Active()) {
			logger.Warn("active search field is not in the page",
				"selected", selected,
				"active", state.Active(),
				"missing", report.Missing)
		} else {
			logger.Debug("search fields not in the page were skipped",
				"selected", selected,
				"missing", report.Missing)
		}
	}
	return state
}

// Phase returns the current lifecycle state
func (s *Switcher) Phase() Phase {
	if !s.mu.TryLock() {
		return PhaseApplying
	}
	defer s.mu.Unlock()
	return s.phase
}

// Last returns the most recently applied state, nil before the first switch
func (s *Switcher) Last() *FieldState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// LastReport returns what the most recent switch found in the page, nil
// before the first switch
func (s *Switcher) LastReport() *ApplyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport
}

// Registry returns the field registry
func (s *Switcher) Registry() *Registry {
	return s.registry
}

func (s *Switcher) exists(id types.FieldID) bool {
	h, ok := s.resolver.Resolve(id)
	return ok && h != nil
}
