package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const (
	CourseFile  = "course.yaml"
	MinimapFile = "minimap.yaml"
	BallFile    = "ball.yaml"
	ShotScript  = "shot.tengo"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Vec3Spec is a world-space point. Holes run toward negative Z.
type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// PointSpec is a point on the course plane.
type PointSpec struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

type CourseSpec struct {
	Name string `yaml:"name"`
	// WorldWidth/WorldDepth is the area of the course baked into the
	// overview texture, starting at the origin and running to +X / -Z.
	WorldWidth float64    `yaml:"world_width"`
	WorldDepth float64    `yaml:"world_depth"`
	Holes      []HoleSpec `yaml:"holes"`
}

type HoleSpec struct {
	Name        string      `yaml:"name"`
	Par         int         `yaml:"par"`
	Tee         Vec3Spec    `yaml:"tee"`
	Pin         Vec3Spec    `yaml:"pin"`
	Target      Vec3Spec    `yaml:"target"`
	SubTarget   *Vec3Spec   `yaml:"sub_target"`
	GreenRadius float64     `yaml:"green_radius"`
	Fairway     []PointSpec `yaml:"fairway"`
}

func LoadCourseSpec() (*CourseSpec, error) {
	spec, err := LoadSpec[CourseSpec](CourseFile)
	if err != nil {
		return nil, err
	}
	if len(spec.Holes) == 0 {
		return nil, fmt.Errorf("prefabs: %s: no holes", CourseFile)
	}
	if spec.WorldWidth <= 0 || spec.WorldDepth <= 0 {
		return nil, fmt.Errorf("prefabs: %s: world size must be positive", CourseFile)
	}
	return &spec, nil
}

type MinimapSpec struct {
	TextureWidth  int               `yaml:"texture_width"`
	TextureHeight int               `yaml:"texture_height"`
	DisplayRatio  float64           `yaml:"display_ratio"`
	ScreenX       float64           `yaml:"screen_x"`
	ScreenY       float64           `yaml:"screen_y"`
	MarkerSize    float64           `yaml:"marker_size"`
	Markers       MarkerSpec        `yaml:"markers"`
	Colours       MinimapColourSpec `yaml:"colours"`
}

type MarkerSpec struct {
	// PopScale is the marker scale at the start of the stroke-complete pop.
	PopScale float64 `yaml:"pop_scale"`
	// PopSpeed is how fast the pop decays, per second.
	PopSpeed float64 `yaml:"pop_speed"`
	// HeightScale is the height at which a marker is drawn twice as big.
	HeightScale   float64 `yaml:"height_scale"`
	FadeSpeed     float64 `yaml:"fade_speed"`
	InactiveAlpha float64 `yaml:"inactive_alpha"`
}

type MinimapColourSpec struct {
	Rough   YAMLColor   `yaml:"rough"`
	Fairway YAMLColor   `yaml:"fairway"`
	Green   YAMLColor   `yaml:"green"`
	Tee     YAMLColor   `yaml:"tee"`
	Trail   YAMLColor   `yaml:"trail"`
	Players []YAMLColor `yaml:"players"`
}

func LoadMinimapSpec() (*MinimapSpec, error) {
	spec, err := LoadSpec[MinimapSpec](MinimapFile)
	if err != nil {
		return nil, err
	}
	if spec.TextureWidth <= 0 || spec.TextureHeight <= 0 {
		return nil, fmt.Errorf("prefabs: %s: texture size must be positive", MinimapFile)
	}
	return &spec, nil
}

type BallSpec struct {
	Radius float64 `yaml:"radius"`
	// Damping is the fraction of velocity kept per second while rolling.
	Damping      float64 `yaml:"damping"`
	GreenDamping float64 `yaml:"green_damping"`
	Gravity      float64 `yaml:"gravity"`
	// Bounce is the fraction of vertical speed kept on landing.
	Bounce    float64 `yaml:"bounce"`
	StopSpeed float64 `yaml:"stop_speed"`
	CupRadius float64 `yaml:"cup_radius"`
}

func LoadBallSpec() (*BallSpec, error) {
	spec, err := LoadSpec[BallSpec](BallFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// RGBAOr returns the colour premultiplied, or fallback when unset.
func (c YAMLColor) RGBAOr(fallback color.RGBA) color.RGBA {
	if c.Color == nil {
		return fallback
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
