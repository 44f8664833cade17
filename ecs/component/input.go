package component

// Input stores per-frame input state. It lives on the golf state entity.
type Input struct {
	Swing bool
	// ClubDelta is -1/+1 on the frame a club change is pressed.
	ClubDelta int
	// PowerDelta is the signed power change held this frame, per second.
	PowerDelta float64
	ResetView  bool
	NextHole   bool
}

var InputComponent = NewComponent[Input]("input")
