package model

// TeamPlan is one valid slot layout for a team size. Slot counts always sum
// to Size.
type TeamPlan struct {
	Size       int
	Layout     string
	LeadSlots  int
	TeamSlots  int
	WheelSlots int
}

// Slots returns the slot count for the given role.
func (p TeamPlan) Slots(r Role) int {
	switch r {
	case RoleLead:
		return p.LeadSlots
	case RoleTeam:
		return p.TeamSlots
	case RoleWheel:
		return p.WheelSlots
	default:
		return 0
	}
}

// PoolStats summarises a filtered candidate pool: how many dogs are
// available in total and per capability.
type PoolStats struct {
	Total    int
	Lead     int
	Team     int
	Wheel    int
	Age8Plus int
}
