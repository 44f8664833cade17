package minimap

import "github.com/tanema/gween/ease"

// The easing curves map progress in [0,1] to an interpolation weight. Ends
// are pinned so a finished transition lands exactly on its target.

func EaseOutExpo(t float64) float64 {
	return eased(ease.OutExpo, t)
}

func EaseInOutBack(t float64) float64 {
	return eased(ease.InOutBack, t)
}

func EaseOutBack(t float64) float64 {
	return eased(ease.OutBack, t)
}

func eased(fn ease.TweenFunc, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return float64(fn(float32(t), 0, 1, 1))
}
