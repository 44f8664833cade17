package component

// Flag marks the pin's flag entity.
type Flag struct{}

var FlagComponent = NewComponent[Flag]("flag")

// StrokeIndicator marks the entity showing where the active player's shot is
// expected to land.
type StrokeIndicator struct {
	PlayerID int
}

var StrokeIndicatorComponent = NewComponent[StrokeIndicator]("stroke_indicator")
