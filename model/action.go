package model

// ActionKind enumerates the commands the planner may emit.
type ActionKind int

const (
	// ActionTube builds a physical tube between two stations.
	ActionTube ActionKind = iota
	// ActionTeleport builds a long-range link between two stations.
	ActionTeleport
	// ActionPod creates a vehicle with a closed patrol tour.
	ActionPod
	// ActionUpgrade raises the capacity of an existing tube by one.
	ActionUpgrade
)

// String returns the wire token for the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionTube:
		return "TUBE"
	case ActionTeleport:
		return "TELEPORT"
	case ActionPod:
		return "POD"
	case ActionUpgrade:
		return "UPGRADE"
	default:
		return "UNKNOWN"
	}
}

// Action is one committed planner decision. A and B are set for link-shaped
// actions (tube, teleport, upgrade); VehicleID and Tour for pod creation.
type Action struct {
	Kind      ActionKind
	A, B      int
	VehicleID int
	Tour      []int
}
