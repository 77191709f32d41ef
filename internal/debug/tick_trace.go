package debug

import (
	"fmt"
	"os"
	"sync"
)

// TickSnapshot captures one tick's worth of scheduler state for
// determinism testing.
type TickSnapshot struct {
	Tick            uint64
	ActiveThreads   int
	FinishedThreads int
	VideoPlays      int
	AudioPlays      int
	ElapsedMillis   float64
}

// TickTrace logs one TickSnapshot per tick to a file, bounded by an
// optional start offset and an optional max-entries cap, so a
// long-running fixture can be traced without unbounded memory or
// disk use.
type TickTrace struct {
	file       *os.File
	maxTicks   uint64
	startTick  uint64
	tracedTick uint64
	totalTicks uint64
	enabled    bool
	mu         sync.Mutex
}

// NewTickTrace creates a new tick trace writing to filename.
// maxTicks: maximum number of ticks to log (0 = unlimited).
// startTick: the 1-based tick at which logging begins (0 or 1 = immediately).
func NewTickTrace(filename string, maxTicks uint64, startTick uint64) (*TickTrace, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create tick trace file: %w", err)
	}

	trace := &TickTrace{
		file:      file,
		maxTicks:  maxTicks,
		startTick: startTick,
		enabled:   true,
	}

	fmt.Fprintf(file, "Tick-by-tick scheduler trace\n============================\n\n")
	if startTick > 0 {
		fmt.Fprintf(file, "Start tick offset: %d\n", startTick)
	}
	if maxTicks > 0 {
		fmt.Fprintf(file, "Max ticks to log: %d\n", maxTicks)
	}
	fmt.Fprintf(file, "\nFormat: Tick | Active | Finished | VideoPlays | AudioPlays | ElapsedMs\n\n")

	return trace, nil
}

// LogTick records a single tick's snapshot.
func (t *TickTrace) LogTick(snap TickSnapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.totalTicks++
	if !t.enabled {
		return
	}

	if t.totalTicks < t.startTick {
		return
	}
	if t.maxTicks > 0 && t.tracedTick >= t.maxTicks {
		t.enabled = false
		return
	}
	t.tracedTick++

	fmt.Fprintf(t.file, "Tick %6d | Active:%3d | Finished:%3d | VideoPlays:%3d | AudioPlays:%3d | %.3fms\n",
		snap.Tick, snap.ActiveThreads, snap.FinishedThreads, snap.VideoPlays, snap.AudioPlays, snap.ElapsedMillis)
}

// SetEnabled enables or disables tracing.
func (t *TickTrace) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

// Toggle toggles tracing on/off.
func (t *TickTrace) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = !t.enabled
}

// Close closes the trace file.
func (t *TickTrace) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = false
	if t.file != nil {
		fmt.Fprintf(t.file, "\n\nTrace complete. Total ticks logged: %d\n", t.tracedTick)
		err := t.file.Close()
		t.file = nil
		return err
	}
	return nil
}

// IsEnabled returns whether tracing is active.
func (t *TickTrace) IsEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled && (t.maxTicks == 0 || t.tracedTick < t.maxTicks)
}

// GetStatus returns the current tracing status.
func (t *TickTrace) GetStatus() (enabled bool, traced uint64, total uint64, max uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled, t.tracedTick, t.totalTicks, t.maxTicks
}
