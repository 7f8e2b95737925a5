package model

// PairKey is the canonical identity of an undirected station pair: the
// smaller id always comes first. All link lookups go through it.
type PairKey struct {
	A, B int
}

// NewPairKey builds the canonical key for two station ids.
func NewPairKey(a, b int) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// Link is an undirected connection between two stations. A physical tube has
// Capacity >= 1; a long-range link (teleporter) is marked by Teleport and
// traversed at zero cost, unconstrained by geometry.
type Link struct {
	A, B     int
	Capacity int
	Teleport bool
}

// Key returns the canonical pair key for the link's endpoints.
func (l Link) Key() PairKey {
	return NewPairKey(l.A, l.B)
}

// Other returns the opposite endpoint given one endpoint id, or -1 when id
// is not an endpoint of the link.
func (l Link) Other(id int) int {
	switch id {
	case l.A:
		return l.B
	case l.B:
		return l.A
	default:
		return -1
	}
}
