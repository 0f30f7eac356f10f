package planner

import (
	"errors"
	"fmt"

	"github.com/kennelops/kennelplan/core/model"
)

// ErrUnsupportedSize is returned for team sizes outside the catalog.
var ErrUnsupportedSize = errors.New("unsupported team size")

// PlansForSize returns the valid layouts for a team size, in preference
// order. A size of 5 admits two layouts; larger hitches run the classic two
// leaders, two wheels shape with the rest in the middle.
func PlansForSize(size int) ([]model.TeamPlan, error) {
	switch size {
	case 5:
		return []model.TeamPlan{
			{Size: 5, Layout: "1-2-2", LeadSlots: 1, TeamSlots: 2, WheelSlots: 2},
			{Size: 5, Layout: "2-1-2", LeadSlots: 2, TeamSlots: 1, WheelSlots: 2},
		}, nil
	case 6:
		return []model.TeamPlan{
			{Size: 6, Layout: "2-2-2", LeadSlots: 2, TeamSlots: 2, WheelSlots: 2},
		}, nil
	case 8:
		return []model.TeamPlan{
			{Size: 8, Layout: "2-2-2-2", LeadSlots: 2, TeamSlots: 4, WheelSlots: 2},
		}, nil
	case 10:
		return []model.TeamPlan{
			{Size: 10, Layout: "2-2-2-2-2", LeadSlots: 2, TeamSlots: 6, WheelSlots: 2},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d (supported sizes are 5, 6, 8 and 10)", ErrUnsupportedSize, size)
	}
}
