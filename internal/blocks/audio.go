package blocks

import (
	"steinacore/internal/audio"
	"steinacore/internal/thread"
)

// AudioHost is everything the audio primitives need from the runtime.
type AudioHost interface {
	AudioTarget(id string) (*audio.Target, bool)
	AudioState() *audio.State
	NewPlayID() string
}

// AudioUtil bundles the per-call context audio primitives need.
type AudioUtil struct {
	Target *audio.Target
	Thread *thread.Thread
	Host   AudioHost
}

// beginBlockingSound implements the two-call blocking convention for
// audio: first entry inserts a blocking play and parks the thread;
// subsequent entries detect removal by playingId.
func beginBlockingSound(u AudioUtil, start, end float64) {
	frame := u.Thread.Top()
	if frame == nil {
		return
	}

	if frame.PlayingID == "" {
		id := u.Host.NewPlayID()
		u.Host.AudioState().Insert(id, &audio.Play{
			AudioTargetID: u.Target.ID,
			SampleRate:    u.Target.SampleRate,
			Start:         start, End: end,
			PlaybackRate: u.Target.PlaybackRate,
			PrevPlayhead: start, Playhead: start,
			Blocking: true,
		})
		frame.PlayingID = id
		u.Thread.Status = thread.StatusYieldTick
		return
	}

	if _, ok := u.Host.AudioState().Get(frame.PlayingID); !ok {
		// Stale play reference: treat as successful completion.
		frame.PlayingID = ""
		return
	}
	u.Thread.Status = thread.StatusYieldTick
}

// PlaySound blocks until the full trimmed clip has played.
func PlaySound(u AudioUtil) {
	beginBlockingSound(u, u.Target.TrimStart, u.Target.TrimEnd)
}

// PlaySoundFromAToB blocks until playback reaches b, starting from a.
func PlaySoundFromAToB(u AudioUtil, a, b float64) {
	beginBlockingSound(u, a, b)
}

// startNonblockingSound queues a non-blocking sound if the target has
// a free slot, decrementing its counter; otherwise it silently drops
// the call.
func startNonblockingSound(u AudioUtil, start, end float64) {
	if u.Target.NonblockingSoundsAvailable <= 0 {
		return
	}
	u.Target.NonblockingSoundsAvailable--
	id := u.Host.NewPlayID()
	u.Host.AudioState().Insert(id, &audio.Play{
		AudioTargetID: u.Target.ID,
		SampleRate:    u.Target.SampleRate,
		Start:         start, End: end,
		PlaybackRate: u.Target.PlaybackRate,
		PrevPlayhead: start, Playhead: start,
		Blocking: false,
	})
}

// StartSound queues a non-blocking play of the full trimmed clip.
func StartSound(u AudioUtil) {
	startNonblockingSound(u, u.Target.TrimStart, u.Target.TrimEnd)
}

// StartSoundFromAToB queues a non-blocking play from a to b.
func StartSoundFromAToB(u AudioUtil, a, b float64) {
	startNonblockingSound(u, a, b)
}

// SetPlayRate / ChangePlayRateBy / SetVolumeTo / ChangeVolumeBy /
// GetVolume / GetPlayRate delegate to the target; clamping lives there.
func SetPlayRate(u AudioUtil, rate float64)     { u.Target.SetRate(rate) }
func ChangePlayRateBy(u AudioUtil, delta float64) { u.Target.ChangeRateBy(delta) }
func SetVolumeTo(u AudioUtil, volume float64)   { u.Target.SetVolume(volume) }
func ChangeVolumeBy(u AudioUtil, delta float64) { u.Target.ChangeVolumeBy(delta) }
func GetVolume(u AudioUtil) float64             { return u.Target.Volume }
func GetPlayRate(u AudioUtil) float64           { return u.Target.PlaybackRate }
