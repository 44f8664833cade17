package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/minimap"
	"github.com/milk9111/fairway/prefabs"
)

// HoleIndex wraps i onto the course's holes.
func HoleIndex(course *prefabs.CourseSpec, i int) int {
	n := len(course.Holes)
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// MapScale is the world-to-texture scale for a course baked into a texture
// of the given size.
func MapScale(course *prefabs.CourseSpec, textureW, textureH int) mgl64.Vec2 {
	return mgl64.Vec2{
		float64(textureW) / course.WorldWidth,
		float64(textureH) / course.WorldDepth,
	}
}

// HoleBounds is the box around every piece of a hole's geometry, the green
// included.
func HoleBounds(spec prefabs.HoleSpec) minimap.Bounds {
	var b minimap.Bounds
	empty := true
	add := func(p mgl64.Vec3) {
		b = b.Include(p, empty)
		empty = false
	}

	add(spec.Tee.Vec3())
	add(spec.Target.Vec3())
	if spec.SubTarget != nil {
		add(spec.SubTarget.Vec3())
	}

	pin := spec.Pin.Vec3()
	r := spec.GreenRadius
	add(pin.Add(mgl64.Vec3{-r, 0, -r}))
	add(pin.Add(mgl64.Vec3{r, 0, r}))

	for _, p := range spec.Fairway {
		add(mgl64.Vec3{p.X, 0, p.Z})
	}
	return b
}

// NewHole creates the entity describing hole index of course.
func NewHole(w *ecs.World, course *prefabs.CourseSpec, index int) (ecs.Entity, error) {
	if course == nil || len(course.Holes) == 0 {
		return 0, fmt.Errorf("hole: course has no holes")
	}
	index = HoleIndex(course, index)
	spec := course.Holes[index]

	hole := &component.Hole{
		Index:       index,
		Name:        spec.Name,
		Par:         spec.Par,
		Tee:         spec.Tee.Vec3(),
		Pin:         spec.Pin.Vec3(),
		Target:      spec.Target.Vec3(),
		GreenRadius: spec.GreenRadius,
		Bounds:      HoleBounds(spec),
	}
	if spec.SubTarget != nil {
		hole.SubTarget = spec.SubTarget.Vec3()
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.HoleComponent.Kind(), hole); err != nil {
		return 0, fmt.Errorf("hole: add hole component: %w", err)
	}
	return e, nil
}
