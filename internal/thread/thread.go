// Package thread models a script's resumable execution context: an
// ordered stack of block-ids with per-frame state, stepped one block
// at a time by the sequencer. A thread is a small state struct with
// explicit status transitions rather than a goroutine; its only
// suspension points are the status values below.
package thread

import "time"

// Status is the cooperative scheduling state of a Thread.
type Status int

const (
	// StatusRunning means the thread is eligible to execute its next block this tick.
	StatusRunning Status = iota
	// StatusYield means the thread gave up its turn; it resumes next inner pass.
	StatusYield
	// StatusYieldTick parks the thread until the first inner pass of the next tick.
	StatusYieldTick
	// StatusPromiseWait parks the thread until an external resolution resets it to StatusRunning.
	StatusPromiseWait
	// StatusDone means the thread has finished and should be retired.
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "RUNNING"
	case StatusYield:
		return "YIELD"
	case StatusYieldTick:
		return "YIELD_TICK"
	case StatusPromiseWait:
		return "PROMISE_WAIT"
	case StatusDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Frame is a single stack frame. BlockID is the block currently
// executing within this frame ("" marks an empty/exhausted frame, the
// sentinel the stepping loop pops). WarpMode, IsLoop, and
// WaitingReporter are control-flow bookkeeping; PlayingID, Playing,
// and TargetFrame are scratch slots owned by media-block primitives,
// which persist per-invocation state there across the two-call
// blocking convention.
type Frame struct {
	BlockID         string
	WarpMode        bool
	IsLoop          bool
	WaitingReporter bool
	ProcedureCode   string

	// Media-primitive scratch slots.
	PlayingID   string
	Playing     bool
	TargetFrame float64
}

// Thread is a resumable script execution context.
type Thread struct {
	ID       string
	TargetID string // strong id reference; target missing -> retire
	TopBlock string // root block id of this thread (the hat block)
	Status   Status

	stack []*Frame

	// warpStart is non-zero while a warp-mode burst is in progress.
	warpStart time.Time
}

// New creates a thread rooted at topBlock, running on behalf of targetID.
func New(id, targetID, topBlock string) *Thread {
	return &Thread{
		ID:       id,
		TargetID: targetID,
		TopBlock: topBlock,
		Status:   StatusRunning,
		stack:    []*Frame{{BlockID: topBlock}},
	}
}

// Empty reports whether the thread's stack has been fully unwound.
func (t *Thread) Empty() bool { return len(t.stack) == 0 }

// Top returns the current (innermost) stack frame, or nil if empty.
func (t *Thread) Top() *Frame {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// Push pushes a new frame for blockID, inheriting the current frame's
// warp mode (a nested call stays in warp once the outer call enters it).
func (t *Thread) Push(blockID string) {
	frame := &Frame{BlockID: blockID}
	if cur := t.Top(); cur != nil {
		frame.WarpMode = cur.WarpMode
	}
	t.stack = append(t.stack, frame)
}

// PushProcedure pushes a new frame for a procedure call, recording the
// procedure's code for recursion detection and optionally entering warp mode.
func (t *Thread) PushProcedure(firstBlockID, procedureCode string, warp bool) {
	t.Push(firstBlockID)
	frame := t.Top()
	frame.ProcedureCode = procedureCode
	if warp {
		frame.WarpMode = true
	}
}

// StepToBranch marks the current frame's loop-ness and pushes the
// branch's first block id. blockID may be "" for an empty branch,
// which the stepping loop treats as exhausted.
func (t *Thread) StepToBranch(blockID string, isLoop bool) {
	if top := t.Top(); top != nil {
		top.IsLoop = isLoop
	}
	t.Push(blockID)
}

// Pop removes the top frame and reports the loop and waiting-reporter
// flags of the frame it uncovers (the new top, i.e. the popped frame's
// parent); both influence what the sequencer does next. Both flags are
// false when the stack is now empty; ok is false if it was already empty.
func (t *Thread) Pop() (wasLoop, wasWaitingReporter, ok bool) {
	if len(t.stack) == 0 {
		return false, false, false
	}
	t.stack = t.stack[:len(t.stack)-1]
	parent := t.Top()
	if parent == nil {
		return false, false, true
	}
	return parent.IsLoop, parent.WaitingReporter, true
}

// IsRecursiveCall reports whether procedureCode already appears among
// this thread's active stack frames.
func (t *Thread) IsRecursiveCall(procedureCode string) bool {
	for _, f := range t.stack {
		if f.ProcedureCode == procedureCode {
			return true
		}
	}
	return false
}

// StartWarpTimer starts the warp-burst clock if one isn't already running.
func (t *Thread) StartWarpTimer() {
	if t.warpStart.IsZero() {
		t.warpStart = time.Now()
	}
}

// ClearWarpTimer clears the warp-burst clock (done once per outer stepThread call).
func (t *Thread) ClearWarpTimer() {
	t.warpStart = time.Time{}
}

// WarpElapsed returns how long the current warp burst has been running.
func (t *Thread) WarpElapsed() time.Duration {
	if t.warpStart.IsZero() {
		return 0
	}
	return time.Since(t.warpStart)
}

// Retire clears the thread's stack and marks it done — the fault path
// for a thread whose target no longer exists.
func (t *Thread) Retire() {
	t.stack = nil
	t.Status = StatusDone
}

// Depth returns the current stack depth, mostly useful for tests and debuggers.
func (t *Thread) Depth() int { return len(t.stack) }
