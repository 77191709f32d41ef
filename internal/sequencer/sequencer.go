// Package sequencer implements the cooperative per-tick thread
// scheduler: a work-time-budgeted outer loop over the thread list, a
// warp-time-bounded inner burst per thread, and the tick-end
// media-queue advancement that steps every active video and audio play.
package sequencer

import (
	"time"

	"steinacore/internal/audio"
	"steinacore/internal/debug"
	"steinacore/internal/thread"
	"steinacore/internal/video"
)

// WorkFraction is the share of a tick's nominal step time allotted to
// thread stepping.
const WorkFraction = 0.33

// WarpTime bounds any single thread's uninterrupted warp-mode burst.
const WarpTime = 500 * time.Millisecond

// ProcedureDef is a resolved custom-block (procedure) definition.
type ProcedureDef struct {
	FirstBlockID string
	Warp         bool
}

// Host supplies everything the sequencer needs from the surrounding
// runtime but does not itself own: block storage, execution, targets,
// and the media play-queues.
type Host interface {
	// Execute runs one block on thread, mutating its stack/status.
	Execute(s *Sequencer, th *thread.Thread)

	// NextBlock returns the block that follows blockID in its parent
	// sequence, or ok=false if there is none (end of sequence).
	NextBlock(blockID string) (string, bool)

	// ResolveProcedure looks up a custom-block definition by its
	// mangled procedure code.
	ResolveProcedure(code string) (ProcedureDef, bool)

	// TargetExists reports whether a thread's target id still resolves;
	// a missing target retires its thread.
	TargetExists(targetID string) bool

	// VideoTarget / AudioTarget resolve targets for media advancement.
	VideoTarget(id string) (*video.Target, bool)
	AudioTarget(id string) (*audio.Target, bool)

	VideoState() *video.State
	AudioState() *audio.State

	RequestRedraw()
	TurboMode() bool
	RedrawRequested() bool

	Logger() *debug.Logger
}

// Sequencer is the per-tick scheduler over a host-owned thread list.
type Sequencer struct {
	host Host
}

// New creates a Sequencer bound to host.
func New(host Host) *Sequencer {
	return &Sequencer{host: host}
}

// StepThreads runs one tick: the outer work-budgeted loop over
// threads, then media-queue advancement. It returns the threads still
// pending (remaining) and the threads that finished (status DONE or
// empty stack) this tick, each in their original order, as new slices;
// the supplied slice itself is not modified.
func (s *Sequencer) StepThreads(threads []*thread.Thread, currentStepTime float64) (remaining []*thread.Thread, finished []*thread.Thread) {
	workBudget := time.Duration(WorkFraction * currentStepTime * float64(time.Millisecond))
	start := time.Now()

	done := make([]bool, len(threads))
	firstPass := true
	anyRanLastPass := true

	for len(threads) > 0 && anyRanLastPass && time.Since(start) < workBudget && (s.host.TurboMode() || !s.host.RedrawRequested()) {
		anyRanLastPass = false

		for i := 0; i < len(threads); i++ {
			th := threads[i]
			if done[i] {
				continue
			}
			if th.Status == thread.StatusYieldTick && firstPass {
				th.Status = thread.StatusRunning
			}
			if th.Status == thread.StatusRunning || th.Status == thread.StatusYield {
				s.stepThread(th)
				th.ClearWarpTimer()
			}
			// Mark done immediately after stepping rather than waiting for
			// the next pass's pre-check: a thread that finishes on what
			// turns out to be the tick's last pass must still end up in
			// the finished slot, not misclassified as remaining.
			if th.Empty() || th.Status == thread.StatusDone {
				done[i] = true
				continue
			}
			if th.Status == thread.StatusRunning {
				anyRanLastPass = true
			}
		}
		firstPass = false
	}

	remaining = make([]*thread.Thread, 0, len(threads))
	for i, th := range threads {
		if done[i] {
			finished = append(finished, th)
		} else {
			remaining = append(remaining, th)
		}
	}

	s.advanceMedia(currentStepTime)

	return remaining, finished
}

// stepThread runs th until it yields, blocks, or finishes, executing
// one block per iteration and following control-flow pops.
func (s *Sequencer) stepThread(th *thread.Thread) {
	for !th.Empty() {
		frame := th.Top()
		if frame.WarpMode && th.WarpElapsed() == 0 {
			th.StartWarpTimer()
		}

		if !s.host.TargetExists(th.TargetID) {
			th.Retire()
			return
		}

		beforeBlock := frame.BlockID
		s.host.Execute(s, th)

		switch th.Status {
		case thread.StatusYield:
			th.Status = thread.StatusRunning
			if frame.WarpMode && th.WarpElapsed() <= WarpTime {
				continue
			}
			return
		case thread.StatusPromiseWait:
			return
		case thread.StatusYieldTick:
			return
		}

		if th.Top() != nil && th.Top().BlockID == beforeBlock {
			s.goToNextBlock(th)
		}

		for !th.Empty() && th.Top().BlockID == "" {
			wasLoop, wasWaitingReporter, ok := th.Pop()
			if !ok {
				th.Status = thread.StatusDone
				return
			}
			if wasWaitingReporter {
				return
			}
			if wasLoop {
				top := th.Top()
				if top != nil && top.WarpMode && th.WarpElapsed() <= WarpTime {
					continue
				}
				return
			}
		}
	}
	th.Status = thread.StatusDone
}

// goToNextBlock advances the top frame to the block following its
// current one in sequence, or clears it (empty sentinel) at the end.
func (s *Sequencer) goToNextBlock(th *thread.Thread) {
	frame := th.Top()
	if frame == nil {
		return
	}
	next, ok := s.host.NextBlock(frame.BlockID)
	if !ok {
		frame.BlockID = ""
		return
	}
	frame.BlockID = next
}

// StepToBranch marks the current frame's loop flag and descends into
// a control-flow branch.
func (s *Sequencer) StepToBranch(th *thread.Thread, branchFirstBlockID string, isLoop bool) {
	th.StepToBranch(branchFirstBlockID, isLoop)
}

// StepToProcedure resolves and enters a custom-block call, detecting
// recursion and propagating warp mode.
func (s *Sequencer) StepToProcedure(th *thread.Thread, code string) {
	def, ok := s.host.ResolveProcedure(code)
	if !ok {
		s.goToNextBlock(th)
		return
	}

	recursive := th.IsRecursiveCall(code)
	frame := th.Top()

	if frame != nil && frame.WarpMode && th.WarpElapsed() > WarpTime {
		th.Status = thread.StatusYield
		return
	}

	th.PushProcedure(def.FirstBlockID, code, def.Warp)

	if recursive && !def.Warp {
		th.Status = thread.StatusYield
	}
}

// advanceMedia steps every active video and audio play by one tick's
// worth of wall-clock time. Plays queued during this tick's thread
// phase hold still until the next tick (the queues stamp insertions
// with their pass generation). It logs, but does not otherwise act on,
// completions — a blocked thread notices its play is gone on its next
// two-call-convention entry.
func (s *Sequencer) advanceMedia(currentStepTime float64) {
	vstate := s.host.VideoState()
	astate := s.host.AudioState()
	logger := s.host.Logger()

	videoCompleted := video.Advance(vstate, s.host.VideoTarget, currentStepTime, s.host.RequestRedraw)
	audioCompleted, replenished := audio.Advance(astate, s.host.AudioTarget, currentStepTime)

	if logger != nil {
		if len(videoCompleted) > 0 {
			logger.LogVideo(debug.LogLevelDebug, "video plays completed", map[string]interface{}{"count": len(videoCompleted)})
		}
		if len(audioCompleted) > 0 {
			logger.LogAudio(debug.LogLevelDebug, "audio plays completed", map[string]interface{}{"count": len(audioCompleted), "replenished": len(replenished)})
		}
	}
}

// StopAll implements the PROJECT_STOP_ALL broadcast: clear both play
// queues and reset every audio target's non-blocking budget.
func StopAll(videoState *video.State, audioState *audio.State, audioTargets []*audio.Target) {
	videoState.Reset()
	audioState.Reset()
	for _, t := range audioTargets {
		t.NonblockingSoundsAvailable = audio.MaxNonblocking
	}
}
