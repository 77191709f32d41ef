// Package video models per-video-target playback state and the
// target-keyed play queue that advances it each tick.
package video

// Effects holds the four per-target video effects.
// Unknown effect names are ignored by SetEffect/ChangeEffectBy.
type Effects struct {
	Color      float64
	Whirl      float64
	Brightness float64
	Ghost      float64
}

// Target is a single video timeline object's playback and display state.
type Target struct {
	ID    string
	FPS   float64
	Frames int

	TrimStart float64
	TrimEnd   float64

	CurrentFrame float64
	PlaybackRate float64 // percent, clamped [-1000, 1000]

	Effects Effects
	Tapped  bool

	Markers []float64 // ordered frame indices, for the whenReached hat and markers menu

	Visible   bool
	X, Y      float64
	Direction float64
	Size      float64
}

// NewTarget creates a video target with sane defaults: full trim range,
// frame 0, playback rate 100%, visible, default size/direction.
func NewTarget(id string, fps float64, frames int) *Target {
	t := &Target{
		ID:           id,
		FPS:          fps,
		Frames:       frames,
		TrimStart:    0,
		TrimEnd:      float64(frames - 1),
		CurrentFrame: 0,
		PlaybackRate: 100,
		Visible:      true,
		Direction:    90,
		Size:         100,
	}
	return t
}

// TargetID implements registry.Target.
func (t *Target) TargetID() string { return t.ID }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetCurrentFrame clamps f into [0, frames-1] and requests a redraw.
func (t *Target) SetCurrentFrame(f float64, requestRedraw func()) {
	t.CurrentFrame = clamp(f, 0, float64(t.Frames-1))
	if requestRedraw != nil {
		requestRedraw()
	}
}

// SetRate clamps the playback rate to [-1000, 1000] percent.
func (t *Target) SetRate(r float64) {
	t.PlaybackRate = clamp(r, -1000, 1000)
}

// SetTrim clamps and stores the trim range, keeping trimStart <= trimEnd.
func (t *Target) SetTrim(start, end float64) {
	start = clamp(start, 0, float64(t.Frames-1))
	end = clamp(end, 0, float64(t.Frames-1))
	if start > end {
		start, end = end, start
	}
	t.TrimStart = start
	t.TrimEnd = end
}

// SetEffect sets an effect to an absolute value. Unknown names are a no-op.
func (t *Target) SetEffect(name string, value float64) {
	switch name {
	case "color":
		t.Effects.Color = value
	case "whirl":
		t.Effects.Whirl = value
	case "brightness":
		t.Effects.Brightness = value
	case "ghost":
		t.Effects.Ghost = value
	}
}

// ChangeEffectBy adjusts an effect relative to its current value. Unknown names are a no-op.
func (t *Target) ChangeEffectBy(name string, delta float64) {
	switch name {
	case "color":
		t.Effects.Color += delta
	case "whirl":
		t.Effects.Whirl += delta
	case "brightness":
		t.Effects.Brightness += delta
	case "ghost":
		t.Effects.Ghost += delta
	}
}

// GetEffect reads an effect's current value. Unknown names read as 0.
func (t *Target) GetEffect(name string) float64 {
	switch name {
	case "color":
		return t.Effects.Color
	case "whirl":
		return t.Effects.Whirl
	case "brightness":
		return t.Effects.Brightness
	case "ghost":
		return t.Effects.Ghost
	default:
		return 0
	}
}

// ClearEffects resets all effects to zero.
func (t *Target) ClearEffects() {
	t.Effects = Effects{}
}

// SetSize clamps size to [1, 500].
func (t *Target) SetSize(size float64) {
	t.Size = clamp(size, 1, 500)
}

// SetDirection wrap-clamps direction into (-180, 180].
func (t *Target) SetDirection(direction float64) {
	d := direction
	for d <= -180 {
		d += 360
	}
	for d > 180 {
		d -= 360
	}
	if d < -179 {
		d = -179
	}
	t.Direction = d
}
