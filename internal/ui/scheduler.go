package ui

const sortDeferralLimit = 5

// scheduler is the two-knob redraw state machine: a full-redraw flag
// consumed once per update pass, and a deferral counter that holds off
// re-sorting while the user is actively navigating.
type scheduler struct {
	needsFullRedraw bool
	sortDeferral    int
}

func (s *scheduler) KeyPressed() {
	s.sortDeferral = sortDeferralLimit
}

// ShouldSortNow reports whether a merge may re-sort immediately. Tree
// view never defers: collapse/expand depends on live adjacency.
func (s *scheduler) ShouldSortNow(treeView bool) bool {
	return treeView || s.sortDeferral == 0
}

// TickIdle burns one poll cycle off the deferral window. Callers check
// ShouldSortNow first: five idle cycles defer, the sixth applies.
func (s *scheduler) TickIdle() {
	if s.sortDeferral > 0 {
		s.sortDeferral--
	}
}

func (s *scheduler) MarkRedraw() {
	s.needsFullRedraw = true
}

// ConsumeRedraw reports and clears the full-redraw flag.
func (s *scheduler) ConsumeRedraw() bool {
	v := s.needsFullRedraw
	s.needsFullRedraw = false
	return v
}
