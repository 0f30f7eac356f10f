package model

import "fmt"

// RelationKind defines the type of a declared relation between two dogs.
type RelationKind int

const (
	// RelationPair declares a preferred kennel mate. Interpreted as a
	// directed preference: A prefers to run with B.
	RelationPair RelationKind = iota
	// RelationConflict declares two dogs that must not share a team.
	// Membership is symmetric.
	RelationConflict
)

// String returns a human-readable representation of the relation kind.
func (k RelationKind) String() string {
	switch k {
	case RelationPair:
		return "pair"
	case RelationConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// ParseRelationKind converts a stored relation label back to its kind.
func ParseRelationKind(s string) (RelationKind, error) {
	switch s {
	case "pair":
		return RelationPair, nil
	case "conflict":
		return RelationConflict, nil
	default:
		return 0, fmt.Errorf("unknown relation kind %q", s)
	}
}

// Relation links two dogs by name.
type Relation struct {
	A    string
	B    string
	Kind RelationKind
}
