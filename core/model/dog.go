package model

// Role identifies a sled-team position a dog can be hitched to.
type Role int

const (
	RoleLead Role = iota
	RoleTeam
	RoleWheel
)

// String returns a human-readable representation of the role.
func (r Role) String() string {
	switch r {
	case RoleLead:
		return "lead"
	case RoleTeam:
		return "team"
	case RoleWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// DogProfile describes a dog and the positions it can run.
type DogProfile struct {
	Name     string
	AgeYears int
	CanLead  bool
	CanTeam  bool
	CanWheel bool
}

// CanRun returns true if the dog is capable of the given role.
func (p DogProfile) CanRun(r Role) bool {
	switch r {
	case RoleLead:
		return p.CanLead
	case RoleTeam:
		return p.CanTeam
	case RoleWheel:
		return p.CanWheel
	default:
		return false
	}
}

// Roles lists the roles the dog is capable of, in lead/team/wheel order.
func (p DogProfile) Roles() []string {
	var out []string
	if p.CanLead {
		out = append(out, RoleLead.String())
	}
	if p.CanTeam {
		out = append(out, RoleTeam.String())
	}
	if p.CanWheel {
		out = append(out, RoleWheel.String())
	}
	return out
}
