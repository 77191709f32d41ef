package blocks

import (
	"testing"

	"steinacore/internal/thread"
	"steinacore/internal/video"
)

type fakeVideoHost struct {
	state   *video.State
	counter int
}

func newFakeVideoHost() *fakeVideoHost {
	return &fakeVideoHost{state: video.NewState()}
}

func (h *fakeVideoHost) VideoTarget(id string) (*video.Target, bool) { return nil, false }
func (h *fakeVideoHost) VideoState() *video.State                   { return h.state }
func (h *fakeVideoHost) NewPlayID() string {
	h.counter++
	return "play"
}

// TestBeginBlockingPlayFirstEntryInsertsAndParks covers the two-call
// blocking convention's first-entry branch.
func TestBeginBlockingPlayFirstEntryInsertsAndParks(t *testing.T) {
	host := newFakeVideoHost()
	target := video.NewTarget("v1", 30, 300)
	th := thread.New("t1", "v1", "b1")

	u := VideoUtil{Target: target, Thread: th, Host: host}
	PlayEntireVideoUntilDone(u)

	if th.Status != thread.StatusYieldTick {
		t.Errorf("expected first entry to park the thread at YIELD_TICK, got %s", th.Status)
	}
	if th.Top().PlayingID == "" {
		t.Error("expected first entry to record a playingId on the stack frame")
	}
	play, ok := host.VideoState().Get("v1")
	if !ok {
		t.Fatal("expected a play entry inserted for v1")
	}
	if play.Start != target.TrimStart || play.End != target.TrimEnd {
		t.Errorf("expected play bounds [trimStart, trimEnd], got [%f, %f]", play.Start, play.End)
	}
	if target.CurrentFrame != target.TrimStart {
		t.Errorf("expected currentFrame seeked to trimStart, got %f", target.CurrentFrame)
	}
}

// TestBeginBlockingPlaySubsequentEntryCompletesOnStalePlay: a stale
// play reference (overwritten by another insertion) is treated as
// successful completion.
func TestBeginBlockingPlaySubsequentEntryCompletesOnStalePlay(t *testing.T) {
	host := newFakeVideoHost()
	target := video.NewTarget("v1", 30, 300)
	th := thread.New("t1", "v1", "b1")

	u := VideoUtil{Target: target, Thread: th, Host: host}
	PlayEntireVideoUntilDone(u) // first entry
	staleID := th.Top().PlayingID

	// Another thread's play overwrites this one.
	host.VideoState().Insert("v1", &video.Play{ID: "other-play", Start: 0, End: 10})

	th.Status = thread.StatusRunning // simulate the next tick's re-entry
	PlayEntireVideoUntilDone(u)

	if th.Status == thread.StatusYieldTick {
		t.Error("expected the stale caller to complete rather than park again")
	}
	if th.Top().PlayingID != "" {
		t.Error("expected playingId cleared on stale-play completion")
	}
	if staleID == "" {
		t.Fatal("setup error: first entry did not record a playingId")
	}
}

// TestBeginBlockingPlaySubsequentEntryStillParksWhilePlaying covers the
// subsequent-entry branch while the play is still live.
func TestBeginBlockingPlaySubsequentEntryStillParksWhilePlaying(t *testing.T) {
	host := newFakeVideoHost()
	target := video.NewTarget("v1", 30, 300)
	th := thread.New("t1", "v1", "b1")

	u := VideoUtil{Target: target, Thread: th, Host: host}
	PlayEntireVideoUntilDone(u)

	th.Status = thread.StatusRunning
	PlayEntireVideoUntilDone(u)

	if th.Status != thread.StatusYieldTick {
		t.Errorf("expected the thread to remain parked while its play is live, got %s", th.Status)
	}
}

// TestPlayVideoFromAToBDoesNotForceDirection: the A-to-B play leaves
// direction to the rate's sign, unlike the direction-named primitives.
func TestPlayVideoFromAToBDoesNotForceDirection(t *testing.T) {
	host := newFakeVideoHost()
	target := video.NewTarget("v1", 30, 300)
	th := thread.New("t1", "v1", "b1")
	u := VideoUtil{Target: target, Thread: th, Host: host}

	PlayVideoFromAToB(u, 10, 50)
	play, ok := host.VideoState().Get("v1")
	if !ok {
		t.Fatal("expected a play entry inserted")
	}
	if play.ForceDirection {
		t.Error("expected playVideoFromAToB to steer by the rate's sign, not a forced direction")
	}
	if play.Start != 10 || play.End != 50 {
		t.Errorf("expected play bounds [10, 50], got [%f, %f]", play.Start, play.End)
	}
}

// TestDirectionNamedPrimitivesForceDirection: the forward/backward and
// non-blocking starters pin their travel regardless of the rate's sign.
func TestDirectionNamedPrimitivesForceDirection(t *testing.T) {
	host := newFakeVideoHost()
	target := video.NewTarget("v1", 30, 300)
	th := thread.New("t1", "v1", "b1")
	u := VideoUtil{Target: target, Thread: th, Host: host}

	PlayForwardUntilDone(u)
	if play, _ := host.VideoState().Get("v1"); play == nil || !play.ForceDirection {
		t.Error("expected playForwardUntilDone to force its direction")
	}

	host = newFakeVideoHost()
	u = VideoUtil{Target: target, Thread: thread.New("t2", "v1", "b1"), Host: host}
	StartPlaying(u)
	if play, _ := host.VideoState().Get("v1"); play == nil || !play.ForceDirection {
		t.Error("expected startPlaying to force its direction")
	}
}

func TestPlayNFramesZeroCompletesOnSameTick(t *testing.T) {
	host := newFakeVideoHost()
	target := video.NewTarget("v1", 30, 300)
	target.CurrentFrame = 50
	th := thread.New("t1", "v1", "b1")

	u := VideoUtil{Target: target, Thread: th, Host: host}
	PlayNFrames(u, 0)

	play, ok := host.VideoState().Get("v1")
	if !ok {
		t.Fatal("expected a play entry inserted")
	}
	if play.Start != play.End {
		t.Errorf("expected playNFrames(0) to produce a zero-length play, got [%f, %f]", play.Start, play.End)
	}
}

func TestGoToFrameConvertsFromOneIndexed(t *testing.T) {
	host := newFakeVideoHost()
	target := video.NewTarget("v1", 30, 300)
	target.TrimStart = 10
	th := thread.New("t1", "v1", "b1")
	u := VideoUtil{Target: target, Thread: th, Host: host}

	GoToFrame(u, 1)
	if target.CurrentFrame != 10 {
		t.Errorf("expected goToFrame(1) to land on trimStart (10), got %f", target.CurrentFrame)
	}
}

func TestWhenTappedConsumesLatch(t *testing.T) {
	host := newFakeVideoHost()
	target := video.NewTarget("v1", 30, 300)
	target.Tapped = true
	th := thread.New("t1", "v1", "b1")
	u := VideoUtil{Target: target, Thread: th, Host: host}

	if !WhenTapped(u) {
		t.Fatal("expected whenTapped to report true on a latched tap")
	}
	if target.Tapped {
		t.Error("expected whenTapped to consume the tapped latch")
	}
	if WhenTapped(u) {
		t.Error("expected a second call to report false after the latch was consumed")
	}
}

func TestIsTappedDoesNotConsumeLatch(t *testing.T) {
	host := newFakeVideoHost()
	target := video.NewTarget("v1", 30, 300)
	target.Tapped = true
	th := thread.New("t1", "v1", "b1")
	u := VideoUtil{Target: target, Thread: th, Host: host}

	IsTapped(u)
	if !target.Tapped {
		t.Error("expected isTapped (reporter) to leave the tapped latch untouched")
	}
}

func TestGetCurrentFrameIsOneIndexedRelativeToTrimStart(t *testing.T) {
	host := newFakeVideoHost()
	target := video.NewTarget("v1", 30, 300)
	target.TrimStart = 10
	target.CurrentFrame = 15
	th := thread.New("t1", "v1", "b1")
	u := VideoUtil{Target: target, Thread: th, Host: host}

	if got := GetCurrentFrame(u); got != 6 {
		t.Errorf("expected (15-10)+1=6, got %f", got)
	}
}

func TestStopPlayingRemovesTargetsEntry(t *testing.T) {
	host := newFakeVideoHost()
	host.VideoState().Insert("v1", &video.Play{ID: "p1", Start: 0, End: 10})
	target := video.NewTarget("v1", 30, 300)
	th := thread.New("t1", "v1", "b1")
	u := VideoUtil{Target: target, Thread: th, Host: host}

	StopPlaying(u)
	if _, ok := host.VideoState().Get("v1"); ok {
		t.Error("expected stopPlaying to remove the target's play entry")
	}
}

func TestStartPlayingDoesNotYieldTheCallingThread(t *testing.T) {
	host := newFakeVideoHost()
	target := video.NewTarget("v1", 30, 300)
	th := thread.New("t1", "v1", "b1")
	u := VideoUtil{Target: target, Thread: th, Host: host}

	StartPlaying(u)
	if th.Status != thread.StatusRunning {
		t.Errorf("expected startPlaying to be non-blocking, got status %s", th.Status)
	}
	play, ok := host.VideoState().Get("v1")
	if !ok || play.Blocking {
		t.Error("expected a non-blocking play inserted")
	}
}
