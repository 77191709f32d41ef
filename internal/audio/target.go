// Package audio models per-audio-target clip state and the
// id-keyed play queue that advances sample playheads each tick.
package audio

// MaxNonblocking is the per-target cap on concurrent non-blocking
// sound plays.
const MaxNonblocking = 25

// DefaultSampleRate is used when a target doesn't specify one.
const DefaultSampleRate = 48000

// Target is a single audio clip's playback state.
type Target struct {
	ID           string
	TotalSamples float64
	SampleRate   float64

	TrimStart float64
	TrimEnd   float64

	PlaybackRate float64 // percent, clamped [0, 1000]
	Volume       float64 // clamped [0, 500]

	Markers []float64 // ordered sample indices

	NonblockingSoundsAvailable int
}

// NewTarget creates an audio target with a full trim range, default
// sample rate, unity rate/volume, and a full non-blocking slot budget.
func NewTarget(id string, totalSamples float64) *Target {
	return &Target{
		ID:                         id,
		TotalSamples:               totalSamples,
		SampleRate:                 DefaultSampleRate,
		TrimStart:                  0,
		TrimEnd:                    totalSamples - 1,
		PlaybackRate:               100,
		Volume:                     100,
		NonblockingSoundsAvailable: MaxNonblocking,
	}
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

// SetVolume clamps volume to [0, 500].
func (t *Target) SetVolume(v float64) {
	t.Volume = clamp(v, 0, 500)
}

// ChangeVolumeBy adjusts volume relative to its current value, clamped.
func (t *Target) ChangeVolumeBy(delta float64) {
	t.SetVolume(t.Volume + delta)
}

// SetRate clamps the playback rate to [0, 1000] percent. Unlike video,
// negative audio rates are not permitted — video has reverse playback,
// audio does not.
func (t *Target) SetRate(r float64) {
	t.PlaybackRate = clamp(r, 0, 1000)
}

// ChangeRateBy adjusts playback rate relative to its current value, clamped.
func (t *Target) ChangeRateBy(delta float64) {
	t.SetRate(t.PlaybackRate + delta)
}

// SetTrim clamps and stores the trim range, keeping trimStart <= trimEnd.
func (t *Target) SetTrim(start, end float64) {
	start = clamp(start, 0, t.TotalSamples-1)
	end = clamp(end, 0, t.TotalSamples-1)
	if start > end {
		start, end = end, start
	}
	t.TrimStart = start
	t.TrimEnd = end
}

// Duplicate deep-copies markers and state under newID.
func (t *Target) Duplicate(newID string) *Target {
	markers := make([]float64, len(t.Markers))
	copy(markers, t.Markers)
	dup := *t
	dup.ID = newID
	dup.Markers = markers
	return &dup
}
