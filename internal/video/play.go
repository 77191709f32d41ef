package video

import "sync"

// Play is an active video playback entry, keyed by video target id in
// State.Playing. At most one play exists per target; new plays overwrite.
//
// ForceDirection pins travel from Start toward End using the rate's
// magnitude, so a negative rate cannot reverse a play whose primitive
// names its direction. When false, the rate's sign steers the play: a
// negative rate walks it back toward Start and completes there.
type Play struct {
	ID             string
	Start, End     float64
	ThreadTopBlock string
	Blocking       bool
	ForceDirection bool

	// insertedTick records the queue generation the play was inserted
	// on; Advance holds the play still until the generation moves on.
	insertedTick uint64
}

// State is the shared, process-wide video play-queue plus the global
// sprite draw-order sequence. It lives for the duration of a runtime;
// StopAll resets its contents, never the container.
type State struct {
	mu      sync.Mutex
	Playing map[string]*Play // keyed by videoTargetId
	Order   []string         // shared draw-order sequence

	// tick counts completed Advance passes; Insert stamps plays with it.
	tick uint64
}

// NewState creates an empty video play-queue state.
func NewState() *State {
	return &State{Playing: make(map[string]*Play)}
}

// Insert overwrites any existing play for videoTargetID. A later
// command supersedes an earlier one; any blocking caller detects the
// loss via its stored playingId on the next two-call-convention check.
func (s *State) Insert(videoTargetID string, p *Play) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.insertedTick = s.tick
	s.Playing[videoTargetID] = p
}

// Get returns the play entry for a video target, if any.
func (s *State) Get(videoTargetID string) (*Play, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Playing[videoTargetID]
	return p, ok
}

// Remove deletes the play entry for a video target.
func (s *State) Remove(videoTargetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Playing, videoTargetID)
}

// Reset clears all active plays (used by STOP_ALL). The draw-order
// sequence is left untouched — STOP_ALL resets playback, not z-order.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Playing = make(map[string]*Play)
}

// Count returns the number of active video plays.
func (s *State) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Playing)
}

// TargetLookup resolves a video target by id; registry.Registry[*Target]
// satisfies this when wrapped (see internal/registry).
type TargetLookup func(id string) (*Target, bool)

// Advance steps every active play by one tick's worth of wall-clock
// time. Completed plays are removed from state and their ids returned.
//
// A play queued during the current tick's thread phase holds still
// until the next tick; only zero-length plays (Start == End) complete
// on their insertion tick.
//
// A ForceDirection play progresses from Start toward End at the
// target's rate magnitude and completes at End. Otherwise the rate's
// sign is combined with the sign of (End - Start): a positive rate
// travels toward End and completes there, a negative rate travels back
// toward Start and completes there.
func Advance(state *State, lookup TargetLookup, stepTimeMs float64, requestRedraw func()) []string {
	state.mu.Lock()
	defer state.mu.Unlock()

	var completed []string
	for videoTargetID, play := range state.Playing {
		target, ok := lookup(videoTargetID)
		if !ok {
			delete(state.Playing, videoTargetID)
			continue
		}

		if play.Start == play.End {
			target.SetCurrentFrame(play.Start, requestRedraw)
			delete(state.Playing, videoTargetID)
			completed = append(completed, videoTargetID)
			continue
		}

		if play.insertedTick == state.tick {
			continue
		}

		dirToEnd := 1.0
		if play.End < play.Start {
			dirToEnd = -1.0
		}
		rate := target.PlaybackRate
		if play.ForceDirection && rate < 0 {
			rate = -rate
		}
		delta := (stepTimeMs / 1000.0) * (rate / 100.0) * target.FPS * dirToEnd
		if delta == 0 {
			continue
		}
		next := target.CurrentFrame + delta

		switch {
		case (dirToEnd > 0 && next >= play.End) || (dirToEnd < 0 && next <= play.End):
			target.SetCurrentFrame(play.End, requestRedraw)
			delete(state.Playing, videoTargetID)
			completed = append(completed, videoTargetID)
		case (dirToEnd > 0 && next <= play.Start) || (dirToEnd < 0 && next >= play.Start):
			target.SetCurrentFrame(play.Start, requestRedraw)
			delete(state.Playing, videoTargetID)
			completed = append(completed, videoTargetID)
		default:
			target.SetCurrentFrame(next, requestRedraw)
		}
	}
	state.tick++
	return completed
}

// GoToFront moves id to the end of order (frontmost). Reports false on
// a draw-order lookup miss, for the caller to log.
func (s *State) GoToFront(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.Order, id) < 0 {
		return false
	}
	s.Order = moveTo(s.Order, id, len(s.Order)-1)
	return true
}

// GoToBack moves id to the start of order (backmost).
func (s *State) GoToBack(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.Order, id) < 0 {
		return false
	}
	s.Order = moveTo(s.Order, id, 0)
	return true
}

// GoForwardLayers moves id n positions toward the front.
func (s *State) GoForwardLayers(id string, n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.Order, id)
	if idx < 0 {
		return false
	}
	s.Order = moveTo(s.Order, id, idx+n)
	return true
}

// GoBackwardLayers moves id n positions toward the back.
func (s *State) GoBackwardLayers(id string, n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.Order, id)
	if idx < 0 {
		return false
	}
	s.Order = moveTo(s.Order, id, idx-n)
	return true
}

// AddToOrder appends id to the draw-order sequence if not already present.
func (s *State) AddToOrder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.Order, id) < 0 {
		s.Order = append(s.Order, id)
	}
}

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}

// moveTo removes id from order and reinserts it at a clamped index.
// A miss (id not present) is left for the caller to log; moveTo
// itself is pure and silent.
func moveTo(order []string, id string, index int) []string {
	idx := indexOf(order, id)
	if idx < 0 {
		return order
	}
	trimmed := append(append([]string{}, order[:idx]...), order[idx+1:]...)
	if index < 0 {
		index = 0
	}
	if index > len(trimmed) {
		index = len(trimmed)
	}
	out := make([]string, 0, len(trimmed)+1)
	out = append(out, trimmed[:index]...)
	out = append(out, id)
	out = append(out, trimmed[index:]...)
	return out
}
