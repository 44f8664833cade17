package component

// HoleChangeRequest is a one-shot request for the game loop to load another
// hole. The game loop owns the rebuild of the overview texture.
type HoleChangeRequest struct {
	Index int
}

var HoleChangeRequestComponent = NewComponent[HoleChangeRequest]("hole_change_request")
