// Package blocks implements the script-visible media-block primitive
// set: the commands, hats, and reporters that start, stop, seek, and
// query video/audio playback and read motion inputs. Blocking
// primitives follow a two-call convention: the first entry queues a
// play and parks the thread; later entries look the play up by id and
// either re-park or complete.
package blocks

import (
	"steinacore/internal/motion"
	"steinacore/internal/thread"
	"steinacore/internal/video"
)

// VideoHost is everything the video primitives need from the runtime.
type VideoHost interface {
	VideoTarget(id string) (*video.Target, bool)
	VideoState() *video.State
	NewPlayID() string
}

// VideoUtil bundles the per-call context a primitive needs: the
// target it acts on, the invoking thread, and the host runtime.
type VideoUtil struct {
	Target *video.Target
	Thread *thread.Thread
	Host   VideoHost
}

// beginBlockingPlay implements the two-call blocking convention's
// first-entry and subsequent-entry branches for video plays. insert is
// called only on first entry to compute the play's bounds; it returns
// (start, end). forceDirection pins travel toward end regardless of
// the rate's sign.
func beginBlockingPlay(u VideoUtil, forceDirection bool, insert func() (start, end float64)) {
	frame := u.Thread.Top()
	if frame == nil {
		return
	}

	if frame.PlayingID == "" {
		start, end := insert()
		id := u.Host.NewPlayID()
		u.Host.VideoState().Insert(u.Target.ID, &video.Play{
			ID: id, Start: start, End: end,
			ThreadTopBlock: u.Thread.TopBlock, Blocking: true,
			ForceDirection: forceDirection,
		})
		frame.PlayingID = id
		u.Thread.Status = thread.StatusYieldTick
		return
	}

	play, ok := u.Host.VideoState().Get(u.Target.ID)
	if !ok || play.ID != frame.PlayingID {
		// Stale play reference: treat as successful completion.
		frame.PlayingID = ""
		return
	}
	u.Thread.Status = thread.StatusYieldTick
}

// PlayEntireVideoUntilDone seeks to trimStart and blocks until trimEnd.
func PlayEntireVideoUntilDone(u VideoUtil) {
	beginBlockingPlay(u, true, func() (float64, float64) {
		u.Target.SetCurrentFrame(u.Target.TrimStart, nil)
		return u.Target.TrimStart, u.Target.TrimEnd
	})
}

// PlayVideoFromAToB seeks to a and blocks toward b. The sign of b-a is
// combined with the sign of the target's rate: a positive rate travels
// to b and completes there, a negative rate walks the play back to a.
func PlayVideoFromAToB(u VideoUtil, a, b float64) {
	beginBlockingPlay(u, false, func() (float64, float64) {
		u.Target.SetCurrentFrame(a, nil)
		return a, b
	})
}

// PlayForwardUntilDone blocks from the current frame to trimEnd. The
// direction is forced: a negative rate still advances toward trimEnd.
func PlayForwardUntilDone(u VideoUtil) {
	beginBlockingPlay(u, true, func() (float64, float64) {
		return u.Target.CurrentFrame, u.Target.TrimEnd
	})
}

// PlayBackwardUntilDone blocks from the current frame to trimStart.
func PlayBackwardUntilDone(u VideoUtil) {
	beginBlockingPlay(u, true, func() (float64, float64) {
		return u.Target.CurrentFrame, u.Target.TrimStart
	})
}

// PlayForwardReverseUntilDone picks the forward or backward blocking
// play depending on dir ("forward" plays toward trimEnd, anything
// else toward trimStart).
func PlayForwardReverseUntilDone(u VideoUtil, dir string) {
	if dir == "forward" {
		PlayForwardUntilDone(u)
		return
	}
	PlayBackwardUntilDone(u)
}

// StartPlaying queues a non-blocking play from the current frame to
// trimEnd; the primitive does not yield.
func StartPlaying(u VideoUtil) {
	id := u.Host.NewPlayID()
	u.Host.VideoState().Insert(u.Target.ID, &video.Play{
		ID: id, Start: u.Target.CurrentFrame, End: u.Target.TrimEnd,
		ThreadTopBlock: u.Thread.TopBlock, Blocking: false,
		ForceDirection: true,
	})
}

// StartPlayingForwardReverse queues a non-blocking play in the given direction.
func StartPlayingForwardReverse(u VideoUtil, dir string) {
	end := u.Target.TrimEnd
	if dir != "forward" {
		end = u.Target.TrimStart
	}
	id := u.Host.NewPlayID()
	u.Host.VideoState().Insert(u.Target.ID, &video.Play{
		ID: id, Start: u.Target.CurrentFrame, End: end,
		ThreadTopBlock: u.Thread.TopBlock, Blocking: false,
		ForceDirection: true,
	})
}

// StopPlaying removes any active play for the target.
func StopPlaying(u VideoUtil) {
	u.Host.VideoState().Remove(u.Target.ID)
}

// PlayNFrames blocks for exactly n frames from the current position,
// clamped to the trim range. n=0 yields a zero-length play that
// completes on the same tick.
func PlayNFrames(u VideoUtil, n float64) {
	beginBlockingPlay(u, true, func() (float64, float64) {
		end := u.Target.CurrentFrame + n
		if end < u.Target.TrimStart {
			end = u.Target.TrimStart
		}
		if end > u.Target.TrimEnd {
			end = u.Target.TrimEnd
		}
		return u.Target.CurrentFrame, end
	})
}

// GoToFrame sets the current frame from a 1-indexed script-visible
// frame number relative to the trim start.
func GoToFrame(u VideoUtil, f float64) {
	u.Target.SetCurrentFrame(f+u.Target.TrimStart-1, nil)
}

// NextFrame advances the current frame by one.
func NextFrame(u VideoUtil) {
	u.Target.SetCurrentFrame(u.Target.CurrentFrame+1, nil)
}

// PreviousFrame steps the current frame back by one.
func PreviousFrame(u VideoUtil) {
	u.Target.SetCurrentFrame(u.Target.CurrentFrame-1, nil)
}

// ChangeEffectBy / SetEffectTo / ClearVideoEffects delegate straight
// to the target; unknown effect names are silently ignored there.
func ChangeEffectBy(u VideoUtil, effect string, delta float64) { u.Target.ChangeEffectBy(effect, delta) }
func SetEffectTo(u VideoUtil, effect string, value float64)    { u.Target.SetEffect(effect, value) }
func ClearVideoEffects(u VideoUtil)                            { u.Target.ClearEffects() }

// WhenPlayedToEnd / WhenPlayedToBeginning / WhenReached / WhenTapped
// are hat predicates, polled each tick by the host's hat-trigger loop.
func WhenPlayedToEnd(u VideoUtil) bool       { return u.Target.CurrentFrame == u.Target.TrimEnd }
func WhenPlayedToBeginning(u VideoUtil) bool { return u.Target.CurrentFrame == u.Target.TrimStart }
func WhenReached(u VideoUtil, marker float64) bool {
	return marker == u.Target.CurrentFrame
}

// WhenTapped consumes the tapped latch: true at most once per tap.
func WhenTapped(u VideoUtil) bool {
	if !u.Target.Tapped {
		return false
	}
	u.Target.Tapped = false
	return true
}

// GetCurrentFrame reports the 1-indexed current frame relative to trimStart.
func GetCurrentFrame(u VideoUtil) float64 { return (u.Target.CurrentFrame - u.Target.TrimStart) + 1 }

// GetTotalFrames reports the trimmed clip length.
func GetTotalFrames(u VideoUtil) float64 { return u.Target.TrimEnd - u.Target.TrimStart }

// GetVideoPlayRate reports the target's current playback rate.
func GetVideoPlayRate(u VideoUtil) float64 { return u.Target.PlaybackRate }

// IsTapped reports the tapped latch without consuming it.
func IsTapped(u VideoUtil) bool { return u.Target.Tapped }

// MotionUtil bundles the per-call context motion primitives need.
type MotionUtil struct {
	Provider motion.Provider
}

// GetTiltAngle / IsTilted / WhenTilted / GetCompassAngle / IsPointed
// delegate to internal/motion over the host's current snapshot.
func GetTiltAngle(u MotionUtil, dir motion.Direction) float64 {
	return motion.GetTiltAngle(u.Provider.Snapshot(), dir)
}

func IsTilted(u MotionUtil, dir motion.Direction) bool {
	return motion.IsTilted(u.Provider.Snapshot(), dir)
}

func WhenTilted(u MotionUtil, dir motion.Direction) bool { return IsTilted(u, dir) }

func GetCompassAngle(u MotionUtil) float64 { return u.Provider.Snapshot().Heading }

func IsPointed(u MotionUtil, dir motion.Direction) bool {
	return motion.IsPointed(u.Provider.Snapshot(), dir)
}
