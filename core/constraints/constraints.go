// Package constraints provides a typed, read-only view of dog profiles and
// declared relations. It is built once per planning invocation from a
// snapshot and never mutated afterwards.
package constraints

import (
	"github.com/kennelops/kennelplan/core/logger"
	"github.com/kennelops/kennelplan/core/model"
)

type pairKey struct{ a, b string }

// Model answers role, age, kennel-pair and conflict queries for the planner.
type Model struct {
	profiles  map[string]model.DogProfile
	order     []string
	pairs     map[string]string
	conflicts map[pairKey]struct{}
}

// New builds a Model from profiles and relations. Pair declarations form a
// directed name-to-mate map; if a dog appears on the left side of more than
// one pair row the last declaration wins and a warning is logged. Conflicts
// are stored once and checked in both orderings.
func New(profiles []model.DogProfile, relations []model.Relation, log logger.Logger) *Model {
	log = logger.OrNop(log)
	m := &Model{
		profiles:  make(map[string]model.DogProfile, len(profiles)),
		pairs:     make(map[string]string),
		conflicts: make(map[pairKey]struct{}),
	}
	for _, p := range profiles {
		if _, ok := m.profiles[p.Name]; !ok {
			m.order = append(m.order, p.Name)
		}
		m.profiles[p.Name] = p
	}
	for _, r := range relations {
		switch r.Kind {
		case model.RelationPair:
			if prev, ok := m.pairs[r.A]; ok && prev != r.B {
				log.Warnf("duplicate pair declaration for %s: %s overrides %s", r.A, r.B, prev)
			}
			m.pairs[r.A] = r.B
		case model.RelationConflict:
			m.conflicts[pairKey{r.A, r.B}] = struct{}{}
		}
	}
	return m
}

// Profile returns the profile for the named dog.
func (m *Model) Profile(name string) (model.DogProfile, bool) {
	p, ok := m.profiles[name]
	return p, ok
}

// Profiles returns all profiles in their declaration order.
func (m *Model) Profiles() []model.DogProfile {
	out := make([]model.DogProfile, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.profiles[name])
	}
	return out
}

// Age returns the dog's age in years, or zero for an unknown dog.
func (m *Model) Age(name string) int {
	return m.profiles[name].AgeYears
}

// PairMate returns the declared preferred mate for the dog, if any.
func (m *Model) PairMate(name string) (string, bool) {
	mate, ok := m.pairs[name]
	return mate, ok
}

// InConflict reports whether the two dogs are declared incompatible,
// checking both orderings.
func (m *Model) InConflict(a, b string) bool {
	if _, ok := m.conflicts[pairKey{a, b}]; ok {
		return true
	}
	_, ok := m.conflicts[pairKey{b, a}]
	return ok
}
