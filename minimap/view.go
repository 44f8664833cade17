// Package minimap holds the view model of the course radar: a pan/tilt/zoom
// window onto a pre-rendered overview texture, the controller that retargets
// it, and the helpers used to place markers on it.
//
// Coordinates come in three flavours. World space is the 3D course (X east,
// Y up, Z south). Texture space is pixels of the overview texture, where a
// world point lands at MapScale * (x, -z). Map space is pixels of the
// displayed minimap, which has the same size as the texture but is cropped,
// rotated and zoomed by the view.
package minimap

import (
	"github.com/go-gl/mathgl/mgl64"
)

// UniformSink receives the forward view matrix every time it is rebuilt. The
// renderer implements it to feed its shader uniform.
type UniformSink interface {
	SetCoordMatrix(m mgl64.Mat4)
}

// Frame is the animatable subset of a ViewState.
type Frame struct {
	Pan  mgl64.Vec2
	Tilt float64
	Zoom float64
}

// ViewState is the minimap camera. Pan is the texture-space position shown at
// the centre of the map, Tilt the rotation in radians and Zoom the
// magnification (larger is closer).
type ViewState struct {
	Pan  mgl64.Vec2
	Tilt float64
	Zoom float64

	// MapScale converts world units to texture pixels per axis. It is fixed
	// when the overview texture for a hole is built.
	MapScale mgl64.Vec2
	// TextureSize is the overview texture size in pixels.
	TextureSize mgl64.Vec2
	// DisplayRatio scales the visible window relative to the texture.
	DisplayRatio float64

	transform mgl64.Mat4
	inverse   mgl64.Mat4
	built     bool
}

// NewViewState returns an unzoomed view with no texture configured.
func NewViewState() *ViewState {
	return &ViewState{
		Zoom:         1,
		DisplayRatio: 1,
		transform:    mgl64.Ident4(),
		inverse:      mgl64.Ident4(),
	}
}

// Frame returns the current pan, tilt and zoom.
func (v *ViewState) Frame() Frame {
	return Frame{Pan: v.Pan, Tilt: v.Tilt, Zoom: v.Zoom}
}

// SetFrame overwrites pan, tilt and zoom. The cached matrices are stale until
// the next UpdateShader.
func (v *ViewState) SetFrame(f Frame) {
	v.Pan = f.Pan
	v.Tilt = f.Tilt
	v.Zoom = f.Zoom
}

// Configured reports whether the texture size and map scale are set.
func (v *ViewState) Configured() bool {
	return v.TextureSize.X() != 0 && v.TextureSize.Y() != 0 &&
		v.MapScale.X() != 0 && v.MapScale.Y() != 0
}

// Built reports whether UpdateShader has produced a matrix since the texture
// was configured.
func (v *ViewState) Built() bool {
	return v.built
}

// Configure sets the texture size and world-to-texture scale for a new hole
// and invalidates the cached matrices.
func (v *ViewState) Configure(textureSize, mapScale mgl64.Vec2) {
	v.TextureSize = textureSize
	v.MapScale = mapScale
	v.built = false
}

// UpdateShader rebuilds the view matrix from pan, tilt and zoom, caches its
// inverse and pushes the forward matrix to sink (which may be nil).
//
// The matrix maps display UVs to texture UVs:
//
//	T(pan/size) S(1/aspect,1) R(-tilt) S(aspect,1) S(1/zoom) S(ratio) T(-0.5,-0.5)
func (v *ViewState) UpdateShader(sink UniformSink) {
	size := v.TextureSize
	if size.X() == 0 || size.Y() == 0 {
		precondition("UpdateShader", "texture size is not set")
		return
	}
	if v.MapScale.X() == 0 || v.MapScale.Y() == 0 {
		precondition("UpdateShader", "map scale is not set")
		return
	}
	if v.Zoom <= 0 {
		precondition("UpdateShader", "zoom must be positive")
		return
	}

	aspect := size.X() / size.Y()
	ratio := v.DisplayRatio
	if ratio == 0 {
		ratio = 1
	}

	m := mgl64.Translate3D(v.Pan.X()/size.X(), v.Pan.Y()/size.Y(), 0)
	m = m.Mul4(mgl64.Scale3D(1/aspect, 1, 1))
	m = m.Mul4(mgl64.HomogRotate3DZ(-v.Tilt))
	m = m.Mul4(mgl64.Scale3D(aspect, 1, 1))
	m = m.Mul4(mgl64.Scale3D(1/v.Zoom, 1/v.Zoom, 1))
	m = m.Mul4(mgl64.Scale3D(ratio, ratio, 1))
	m = m.Mul4(mgl64.Translate3D(-0.5, -0.5, 0))

	v.transform = m
	v.inverse = m.Inv()
	v.built = true

	if sink != nil {
		sink.SetCoordMatrix(m)
	}
}

// Matrix returns the last forward matrix built by UpdateShader.
func (v *ViewState) Matrix() mgl64.Mat4 {
	return v.transform
}

// Inverse returns the cached inverse of Matrix.
func (v *ViewState) Inverse() mgl64.Mat4 {
	return v.inverse
}

// WorldToTexture converts a world position to texture pixels. Height is
// discarded.
func (v *ViewState) WorldToTexture(world mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{world.X() * v.MapScale.X(), -world.Z() * v.MapScale.Y()}
}

// ToMapCoords converts a world position to minimap pixels using the inverse
// of the most recent UpdateShader matrix.
func (v *ViewState) ToMapCoords(world mgl64.Vec3) mgl64.Vec2 {
	if !v.Configured() {
		precondition("ToMapCoords", "texture size or map scale is not set")
		return mgl64.Vec2{}
	}
	if !v.built {
		precondition("ToMapCoords", "called before UpdateShader")
		return mgl64.Vec2{}
	}
	return v.apply(v.inverse, v.WorldToTexture(world))
}

// MapToTexture is the forward mapping: minimap pixels to texture pixels.
func (v *ViewState) MapToTexture(mapPos mgl64.Vec2) mgl64.Vec2 {
	if !v.built {
		precondition("MapToTexture", "called before UpdateShader")
		return mgl64.Vec2{}
	}
	return v.apply(v.transform, mapPos)
}

func (v *ViewState) apply(m mgl64.Mat4, px mgl64.Vec2) mgl64.Vec2 {
	size := v.TextureSize
	uv := mgl64.Vec4{px.X() / size.X(), px.Y() / size.Y(), 0, 1}
	out := m.Mul4x1(uv)
	return mgl64.Vec2{out.X() * size.X(), out.Y() * size.Y()}
}
