package audio

import "sync"

// Play is an active audio playback entry, keyed by an opaque play id
// in State.Playing. Many plays may be active per target at once.
type Play struct {
	AudioTargetID string
	SampleRate    float64
	Start, End    float64
	PlaybackRate  float64
	PrevPlayhead  float64
	Playhead      float64
	Blocking      bool

	// insertedTick records the queue generation the play was inserted
	// on; Advance holds the play still until the generation moves on.
	insertedTick uint64
}

// State is the shared, process-wide audio play-queue.
type State struct {
	mu      sync.Mutex
	Playing map[string]*Play // keyed by playId

	// tick counts completed Advance passes; Insert stamps plays with it.
	tick uint64
}

// NewState creates an empty audio play-queue state.
func NewState() *State {
	return &State{Playing: make(map[string]*Play)}
}

// Insert adds a new play under playID.
func (s *State) Insert(playID string, p *Play) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.insertedTick = s.tick
	s.Playing[playID] = p
}

// Get returns the play entry for playID, if any.
func (s *State) Get(playID string) (*Play, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Playing[playID]
	return p, ok
}

// Remove deletes a play entry by id.
func (s *State) Remove(playID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Playing, playID)
}

// Reset clears all active plays (used by STOP_ALL).
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Playing = make(map[string]*Play)
}

// Count returns the number of active audio plays.
func (s *State) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Playing)
}

// CountForTarget returns the number of active plays for a given audio target.
func (s *State) CountForTarget(audioTargetID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.Playing {
		if p.AudioTargetID == audioTargetID {
			n++
		}
	}
	return n
}

// TargetLookup resolves an audio target by id.
type TargetLookup func(id string) (*Target, bool)

// Advance steps every active play's sample playhead by one tick's
// worth of wall-clock time. A play that has already reached its end is
// removed and reported; if it was non-blocking, its owning target's
// slot counter is replenished. A play queued during the current tick's
// thread phase holds its playhead still until the next tick.
func Advance(state *State, lookup TargetLookup, stepTimeMs float64) (completedIDs []string, replenishedTargetIDs []string) {
	state.mu.Lock()
	defer state.mu.Unlock()

	for playID, p := range state.Playing {
		if p.Playhead == p.End {
			delete(state.Playing, playID)
			completedIDs = append(completedIDs, playID)
			if !p.Blocking {
				if target, ok := lookup(p.AudioTargetID); ok {
					if target.NonblockingSoundsAvailable < MaxNonblocking {
						target.NonblockingSoundsAvailable++
					}
					replenishedTargetIDs = append(replenishedTargetIDs, p.AudioTargetID)
				}
			}
			continue
		}

		if p.insertedTick == state.tick {
			continue
		}

		deltaSamples := (stepTimeMs / 1000.0) * p.SampleRate * (p.PlaybackRate / 100.0)
		next := p.Playhead + deltaSamples
		if next > p.End {
			next = p.End
		}
		p.PrevPlayhead = p.Playhead
		p.Playhead = next
	}
	state.tick++
	return completedIDs, replenishedTargetIDs
}
