package model

// StationType tags what a station offers. Type 0 is a landing pad where
// passengers arrive; every positive value identifies a distinct destination
// capability passengers may request.
type StationType int

// TypeLandingPad marks a passenger source station.
const TypeLandingPad StationType = 0

// Station is a node on the board. Stations persist for the lifetime of the
// process; only the waiting-passenger map of a landing pad is refreshed when
// new turn input mentions the station again.
type Station struct {
	ID   int
	Type StationType
	Pos  Point

	// Waiting maps a requested capability type to how many passengers are
	// currently waiting for it. Populated only for landing pads.
	Waiting map[StationType]int
}

// IsLandingPad reports whether the station is a passenger source.
func (s *Station) IsLandingPad() bool {
	return s.Type == TypeLandingPad
}

// TotalWaiting returns the total number of passengers waiting at the
// station, across all requested types.
func (s *Station) TotalWaiting() int {
	total := 0
	for _, n := range s.Waiting {
		total += n
	}
	return total
}
