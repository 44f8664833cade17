package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/fairway/prefabs"
)

// ShotEstimate is what the shot script predicts for a club and power.
type ShotEstimate struct {
	Club     string
	Distance float64
	// Loft is the launch angle in radians. Zero means the ball is rolled.
	Loft float64
}

// shotEstimator runs prefabs/scripts/shot.tengo.
type shotEstimator struct {
	scriptPath string
	compiled   *tengo.Compiled
}

func newShotEstimator(scriptPath string) (*shotEstimator, error) {
	scriptBytes, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("shot script: load %s: %w", scriptPath, err)
	}

	script := tengo.NewScript(scriptBytes)
	_ = script.Add("club", 0)
	_ = script.Add("power", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("shot script: compile %s: %w", scriptPath, err)
	}
	return &shotEstimator{scriptPath: scriptPath, compiled: compiled}, nil
}

func (se *shotEstimator) Estimate(club int, power float64) (ShotEstimate, error) {
	if se == nil || se.compiled == nil {
		return ShotEstimate{}, fmt.Errorf("shot script: not loaded")
	}
	if err := se.compiled.Set("club", club); err != nil {
		return ShotEstimate{}, err
	}
	if err := se.compiled.Set("power", power); err != nil {
		return ShotEstimate{}, err
	}
	if err := se.compiled.Run(); err != nil {
		return ShotEstimate{}, fmt.Errorf("shot script: run: %w", err)
	}

	for _, name := range []string{"name", "distance", "loft"} {
		if !se.compiled.IsDefined(name) {
			return ShotEstimate{}, fmt.Errorf("shot script: %q not defined", name)
		}
	}
	return ShotEstimate{
		Club:     se.compiled.Get("name").String(),
		Distance: se.compiled.Get("distance").Float(),
		Loft:     se.compiled.Get("loft").Float(),
	}, nil
}
