package component

// GolfState is the turn state the minimap frames: which hole is in play, who
// is up and how far their next shot is expected to travel.
type GolfState struct {
	HoleIndex      int
	ActivePlayerID int
	PlayerCount    int
	// AimAtPin is set once the active player plays straight at the pin.
	AimAtPin bool
	// EstimatedShotDistance is the expected carry of the selected club and
	// power, in world units.
	EstimatedShotDistance float64
	Club                  int
	Power                 float64
	// ShotInProgress is set between a swing and every ball coming to rest.
	ShotInProgress bool
}

var GolfStateComponent = NewComponent[GolfState]("golf_state")
