package thread

import "testing"

func TestNewThreadStartsRunningWithSingleFrame(t *testing.T) {
	th := New("t1", "target1", "block1")
	if th.Status != StatusRunning {
		t.Errorf("expected new thread to start RUNNING, got %s", th.Status)
	}
	if th.Depth() != 1 {
		t.Errorf("expected a single root frame, got depth %d", th.Depth())
	}
	if th.Top().BlockID != "block1" {
		t.Errorf("expected root frame at block1, got %q", th.Top().BlockID)
	}
}

func TestPushInheritsWarpModeFromParent(t *testing.T) {
	th := New("t1", "target1", "block1")
	th.Top().WarpMode = true
	th.Push("block2")
	if !th.Top().WarpMode {
		t.Error("expected pushed frame to inherit warp mode from its parent")
	}
}

func TestPushProcedurePropagatesWarpAndRecordsCode(t *testing.T) {
	th := New("t1", "target1", "block1")
	th.PushProcedure("procBlock", "proc_code_1", true)

	if !th.Top().WarpMode {
		t.Error("expected procedure call to enter warp mode when requested")
	}
	if th.Top().ProcedureCode != "proc_code_1" {
		t.Errorf("expected procedure code recorded, got %q", th.Top().ProcedureCode)
	}
}

func TestIsRecursiveCallDetectsActiveFrame(t *testing.T) {
	th := New("t1", "target1", "block1")
	th.PushProcedure("procBlock", "proc_code_1", false)

	if th.IsRecursiveCall("proc_code_2") {
		t.Error("did not expect an unrelated procedure code to register as recursive")
	}
	if !th.IsRecursiveCall("proc_code_1") {
		t.Error("expected an already-active procedure code to register as recursive")
	}
}

func TestStepToBranchMarksLoopAndPushesBranch(t *testing.T) {
	th := New("t1", "target1", "block1")
	th.StepToBranch("branchBlock", true)

	if th.Depth() != 2 {
		t.Fatalf("expected branch frame pushed, depth=%d", th.Depth())
	}
	if th.Top().BlockID != "branchBlock" {
		t.Errorf("expected top frame at branchBlock, got %q", th.Top().BlockID)
	}

	wasLoop, _, ok := th.Pop()
	if !ok || !wasLoop {
		t.Error("expected popped frame's parent to be marked isLoop")
	}
}

func TestPopReportsEmptyStack(t *testing.T) {
	th := New("t1", "target1", "block1")
	th.Pop()
	if _, _, ok := th.Pop(); ok {
		t.Error("expected Pop on an empty stack to report ok=false")
	}
}

func TestRetireClearsStackAndMarksDone(t *testing.T) {
	th := New("t1", "target1", "block1")
	th.Retire()

	if !th.Empty() {
		t.Error("expected Retire to empty the stack")
	}
	if th.Status != StatusDone {
		t.Errorf("expected Retire to mark the thread DONE, got %s", th.Status)
	}
}

func TestWarpTimerTracksElapsedAndClears(t *testing.T) {
	th := New("t1", "target1", "block1")
	if th.WarpElapsed() != 0 {
		t.Error("expected no elapsed warp time before StartWarpTimer")
	}
	th.StartWarpTimer()
	if th.WarpElapsed() < 0 {
		t.Error("expected non-negative warp elapsed time")
	}
	th.ClearWarpTimer()
	if th.WarpElapsed() != 0 {
		t.Error("expected ClearWarpTimer to reset elapsed time to 0")
	}
}

func TestStatusStrings(t *testing.T) {
	cases := map[Status]string{
		StatusRunning:      "RUNNING",
		StatusYield:        "YIELD",
		StatusYieldTick:    "YIELD_TICK",
		StatusPromiseWait:  "PROMISE_WAIT",
		StatusDone:         "DONE",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}
