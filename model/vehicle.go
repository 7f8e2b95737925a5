package model

// Vehicle is a routing unit patrolling a closed tour of stations (first and
// last stop equal). The planner never simulates vehicle motion; it only
// cares whether a link is covered by at least one tour.
type Vehicle struct {
	ID   int
	Tour []int
}

// Covers reports whether the vehicle's tour traverses the link between a and
// b in either direction.
func (v Vehicle) Covers(a, b int) bool {
	for i := 0; i+1 < len(v.Tour); i++ {
		u, w := v.Tour[i], v.Tour[i+1]
		if (u == a && w == b) || (u == b && w == a) {
			return true
		}
	}
	return false
}
