package component

// MotionState is the ball's discrete movement phase.
type MotionState int

const (
	BallIdle MotionState = iota
	BallFlight
	BallRoll
	BallPutt
)

func (s MotionState) String() string {
	switch s {
	case BallFlight:
		return "flight"
	case BallRoll:
		return "roll"
	case BallPutt:
		return "putt"
	default:
		return "idle"
	}
}

// Moving reports whether the ball is in flight, rolling or being putted.
func (s MotionState) Moving() bool {
	return s != BallIdle
}

// Ball is a player's golf ball. VY is the vertical velocity used by the
// height integrator; horizontal motion lives on the physics body.
type Ball struct {
	PlayerID int
	State    MotionState
	VY       float64
	// Strokes counts shots taken on the current hole.
	Strokes int
	// Holed is set once the ball drops into the cup.
	Holed bool
}

var BallComponent = NewComponent[Ball]("ball")
