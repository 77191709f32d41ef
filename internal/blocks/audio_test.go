package blocks

import (
	"strconv"
	"testing"

	"steinacore/internal/audio"
	"steinacore/internal/thread"
)

type fakeAudioHost struct {
	state   *audio.State
	counter int
}

func newFakeAudioHost() *fakeAudioHost {
	return &fakeAudioHost{state: audio.NewState()}
}

func (h *fakeAudioHost) AudioTarget(id string) (*audio.Target, bool) { return nil, false }
func (h *fakeAudioHost) AudioState() *audio.State                   { return h.state }
func (h *fakeAudioHost) NewPlayID() string {
	h.counter++
	return "aplay-" + strconv.Itoa(h.counter)
}

// TestStartSoundDropsWhenSlotsExhausted: 30 startSound calls against a
// 25-slot budget leave exactly 25 queued and drop the rest silently.
func TestStartSoundDropsWhenSlotsExhausted(t *testing.T) {
	host := newFakeAudioHost()
	target := audio.NewTarget("a1", 48000)
	th := thread.New("t1", "a1", "b1")
	u := AudioUtil{Target: target, Thread: th, Host: host}

	for i := 0; i < 30; i++ {
		StartSound(u)
	}

	if got := host.AudioState().CountForTarget("a1"); got != audio.MaxNonblocking {
		t.Errorf("expected exactly %d queued plays, got %d", audio.MaxNonblocking, got)
	}
	if target.NonblockingSoundsAvailable != 0 {
		t.Errorf("expected slot counter exhausted to 0, got %d", target.NonblockingSoundsAvailable)
	}
}

func TestPlaySoundBlocksUntilRemoved(t *testing.T) {
	host := newFakeAudioHost()
	target := audio.NewTarget("a1", 48000)
	th := thread.New("t1", "a1", "b1")
	u := AudioUtil{Target: target, Thread: th, Host: host}

	PlaySound(u)
	if th.Status != thread.StatusYieldTick {
		t.Fatalf("expected first entry to park the thread, got %s", th.Status)
	}
	playingID := th.Top().PlayingID
	if playingID == "" {
		t.Fatal("expected a playingId recorded on first entry")
	}

	// Still playing: subsequent entry parks again.
	th.Status = thread.StatusRunning
	PlaySound(u)
	if th.Status != thread.StatusYieldTick {
		t.Errorf("expected the thread to remain parked while the sound plays, got %s", th.Status)
	}

	// The play completes and is removed from the queue.
	host.AudioState().Remove(playingID)
	th.Status = thread.StatusRunning
	PlaySound(u)
	if th.Status == thread.StatusYieldTick {
		t.Error("expected the thread to complete once its play is removed from the queue")
	}
}

func TestStartSoundFromAToBRespectsGivenBounds(t *testing.T) {
	host := newFakeAudioHost()
	target := audio.NewTarget("a1", 48000)
	th := thread.New("t1", "a1", "b1")
	u := AudioUtil{Target: target, Thread: th, Host: host}

	StartSoundFromAToB(u, 1000, 5000)

	var found *audio.Play
	for _, p := range host.AudioState().Playing {
		found = p
	}
	if found == nil {
		t.Fatal("expected a play to be queued")
	}
	if found.Start != 1000 || found.End != 5000 {
		t.Errorf("expected bounds [1000, 5000], got [%f, %f]", found.Start, found.End)
	}
}

func TestSetVolumeAndRateDelegateWithClamping(t *testing.T) {
	host := newFakeAudioHost()
	target := audio.NewTarget("a1", 48000)
	th := thread.New("t1", "a1", "b1")
	u := AudioUtil{Target: target, Thread: th, Host: host}

	SetVolumeTo(u, 9000)
	if GetVolume(u) != 500 {
		t.Errorf("expected volume clamped to 500, got %f", GetVolume(u))
	}

	SetPlayRate(u, -10)
	if GetPlayRate(u) != 0 {
		t.Errorf("expected audio rate clamped to 0 (no negative rates), got %f", GetPlayRate(u))
	}
}
