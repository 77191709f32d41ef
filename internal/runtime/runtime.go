// Package runtime assembles the sequencer, the video/audio target
// registries, the play-queue states, and the motion snapshot into the
// single host object the rest of the core depends on, exposing one
// per-tick driving method plus StopAll.
package runtime

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"steinacore/internal/audio"
	"steinacore/internal/blocks"
	"steinacore/internal/debug"
	"steinacore/internal/motion"
	"steinacore/internal/registry"
	"steinacore/internal/sequencer"
	"steinacore/internal/thread"
	"steinacore/internal/video"
)

// BlockStore is the external collaborator that owns block parsing and
// storage. The runtime delegates Execute/NextBlock/ResolveProcedure
// to it.
type BlockStore interface {
	Execute(s *sequencer.Sequencer, th *thread.Thread)
	NextBlock(blockID string) (string, bool)
	ResolveProcedure(code string) (sequencer.ProcedureDef, bool)
}

// Target is the minimal identity every host-defined sprite-like
// object must provide, matching registry.Target.
type Target interface {
	TargetID() string
}

// Runtime is the concrete Host implementation: the process-wide
// shared mutable state (video/audio play queues, draw order) plus the
// target registries, thread list, and motion snapshot provider.
type Runtime struct {
	store BlockStore

	videoTargets *registry.Registry[*video.Target]
	audioTargets *registry.Registry[*audio.Target]
	otherTargets map[string]Target

	videoState *video.State
	audioState *audio.State

	threads []*thread.Thread

	motionProvider motion.Provider

	currentStepTime float64
	turboMode       bool
	redrawRequested bool

	logger *debug.Logger

	seq *sequencer.Sequencer

	playIDCounter uint64

	stopAllHandlers []func()
}

// New creates a Runtime. currentStepTime is the nominal tick period in
// milliseconds.
func New(store BlockStore, motionProvider motion.Provider, logger *debug.Logger, currentStepTime float64) *Runtime {
	rt := &Runtime{
		store:           store,
		videoTargets:    registry.New[*video.Target](),
		audioTargets:    registry.New[*audio.Target](),
		otherTargets:    make(map[string]Target),
		videoState:      video.NewState(),
		audioState:      audio.NewState(),
		motionProvider:  motionProvider,
		currentStepTime: currentStepTime,
		logger:          logger,
	}
	rt.seq = sequencer.New(rt)
	return rt
}

// --- target registration (the host collaborator owns target lifetime) ---

func (rt *Runtime) AddVideoTarget(t *video.Target) {
	rt.videoTargets.Add(t)
	rt.videoState.AddToOrder(t.ID)
}

func (rt *Runtime) AddAudioTarget(t *audio.Target) { rt.audioTargets.Add(t) }

func (rt *Runtime) AddOtherTarget(t Target) { rt.otherTargets[t.TargetID()] = t }

func (rt *Runtime) AddThread(th *thread.Thread) { rt.threads = append(rt.threads, th) }

func (rt *Runtime) Threads() []*thread.Thread { return rt.threads }

// --- sequencer.Host ---

func (rt *Runtime) Execute(s *sequencer.Sequencer, th *thread.Thread) { rt.store.Execute(s, th) }

func (rt *Runtime) NextBlock(blockID string) (string, bool) { return rt.store.NextBlock(blockID) }

func (rt *Runtime) ResolveProcedure(code string) (sequencer.ProcedureDef, bool) {
	return rt.store.ResolveProcedure(code)
}

func (rt *Runtime) TargetExists(targetID string) bool {
	if _, ok := rt.videoTargets.Get(targetID); ok {
		return true
	}
	if _, ok := rt.audioTargets.Get(targetID); ok {
		return true
	}
	_, ok := rt.otherTargets[targetID]
	return ok
}

func (rt *Runtime) VideoTarget(id string) (*video.Target, bool) { return rt.videoTargets.Get(id) }
func (rt *Runtime) AudioTarget(id string) (*audio.Target, bool) { return rt.audioTargets.Get(id) }

func (rt *Runtime) VideoState() *video.State { return rt.videoState }
func (rt *Runtime) AudioState() *audio.State { return rt.audioState }

func (rt *Runtime) RequestRedraw() { rt.redrawRequested = true }
func (rt *Runtime) TurboMode() bool { return rt.turboMode }
func (rt *Runtime) RedrawRequested() bool { return rt.redrawRequested }

func (rt *Runtime) Logger() *debug.Logger { return rt.logger }

// --- blocks.VideoHost / blocks.AudioHost ---

func (rt *Runtime) NewPlayID() string {
	n := atomic.AddUint64(&rt.playIDCounter, 1)
	return "play-" + strconv.FormatUint(n, 10)
}

// --- tick driving ---

// SetTurboMode toggles the turbo-mode flag consulted by the outer
// scheduling loop's continue condition.
func (rt *Runtime) SetTurboMode(on bool) { rt.turboMode = on }

// Tick runs one sequencer pass: steps every thread within budget, then
// advances the media queues.
func (rt *Runtime) Tick() (finished []*thread.Thread) {
	rt.redrawRequested = false
	remaining, finished := rt.seq.StepThreads(rt.threads, rt.currentStepTime)
	rt.threads = remaining
	return finished
}

// StopAll implements the PROJECT_STOP_ALL broadcast: clears both play
// queues, resets every audio target's non-blocking budget, and
// notifies any registered observers.
func (rt *Runtime) StopAll() {
	sequencer.StopAll(rt.videoState, rt.audioState, rt.audioTargets.All())
	for _, h := range rt.stopAllHandlers {
		h()
	}
	if rt.logger != nil {
		rt.logger.LogSystem(debug.LogLevelInfo, "PROJECT_STOP_ALL dispatched", nil)
	}
}

// OnStopAll registers a handler invoked when StopAll is dispatched.
func (rt *Runtime) OnStopAll(handler func()) {
	rt.stopAllHandlers = append(rt.stopAllHandlers, handler)
}

// --- draw-order layering ---

// GoToFront moves a video target to the front of the draw order. A
// lookup miss is logged at warn level and changes nothing.
func (rt *Runtime) GoToFront(videoTargetID string) {
	rt.layer(videoTargetID, "goToFront", rt.videoState.GoToFront(videoTargetID))
}

// GoToBack moves a video target to the back of the draw order.
func (rt *Runtime) GoToBack(videoTargetID string) {
	rt.layer(videoTargetID, "goToBack", rt.videoState.GoToBack(videoTargetID))
}

// GoForwardLayers moves a video target n layers toward the front.
func (rt *Runtime) GoForwardLayers(videoTargetID string, n int) {
	rt.layer(videoTargetID, "goForwardLayers", rt.videoState.GoForwardLayers(videoTargetID, n))
}

// GoBackwardLayers moves a video target n layers toward the back.
func (rt *Runtime) GoBackwardLayers(videoTargetID string, n int) {
	rt.layer(videoTargetID, "goBackwardLayers", rt.videoState.GoBackwardLayers(videoTargetID, n))
}

func (rt *Runtime) layer(videoTargetID, op string, ok bool) {
	if ok {
		rt.RequestRedraw()
		return
	}
	if rt.logger != nil {
		rt.logger.LogVideo(debug.LogLevelWarning, "draw-order lookup miss",
			map[string]interface{}{"op": op, "videoTargetId": videoTargetID})
	}
}

// Motion returns the current motion snapshot.
func (rt *Runtime) Motion() motion.Snapshot {
	if rt.motionProvider == nil {
		return motion.Snapshot{}
	}
	return rt.motionProvider.Snapshot()
}

// VideoBlockUtil builds the per-call context for a video primitive
// invocation on the named target, or an error if the target or thread
// don't resolve.
func (rt *Runtime) VideoBlockUtil(targetID string, th *thread.Thread) (blocks.VideoUtil, error) {
	target, ok := rt.VideoTarget(targetID)
	if !ok {
		return blocks.VideoUtil{}, fmt.Errorf("runtime: unknown video target %q", targetID)
	}
	return blocks.VideoUtil{Target: target, Thread: th, Host: rt}, nil
}

// AudioBlockUtil builds the per-call context for an audio primitive
// invocation on the named target.
func (rt *Runtime) AudioBlockUtil(targetID string, th *thread.Thread) (blocks.AudioUtil, error) {
	target, ok := rt.AudioTarget(targetID)
	if !ok {
		return blocks.AudioUtil{}, fmt.Errorf("runtime: unknown audio target %q", targetID)
	}
	return blocks.AudioUtil{Target: target, Thread: th, Host: rt}, nil
}

// MotionBlockUtil builds the per-call context for a motion primitive.
func (rt *Runtime) MotionBlockUtil() blocks.MotionUtil {
	return blocks.MotionUtil{Provider: motionProviderFunc(rt.Motion)}
}

type motionProviderFunc func() motion.Snapshot

func (f motionProviderFunc) Snapshot() motion.Snapshot { return f() }
