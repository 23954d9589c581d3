package carousel

// State is the render state of the archive carousel.
type State int

const (
	// Loading is the initial state until the archive fetch settles.
	Loading State = iota
	// Empty means the fetch settled with no days, or failed.
	Empty
	// Populated means at least one day is available.
	Populated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	default:
		return "unknown"
	}
}
