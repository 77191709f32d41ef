package audio

import "testing"

func TestSetVolumeClamps(t *testing.T) {
	target := NewTarget("a1", 48000)
	target.SetVolume(-10)
	if target.Volume != 0 {
		t.Errorf("expected clamp to 0, got %f", target.Volume)
	}
	target.SetVolume(1000)
	if target.Volume != 500 {
		t.Errorf("expected clamp to 500, got %f", target.Volume)
	}
}

func TestSetRateRejectsNegative(t *testing.T) {
	target := NewTarget("a1", 48000)
	target.SetRate(-50)
	if target.PlaybackRate != 0 {
		t.Errorf("expected audio rate to clamp at 0, got %f", target.PlaybackRate)
	}
	target.SetRate(5000)
	if target.PlaybackRate != 1000 {
		t.Errorf("expected clamp to 1000, got %f", target.PlaybackRate)
	}
}

func TestChangeVolumeByClamps(t *testing.T) {
	target := NewTarget("a1", 48000)
	target.SetVolume(480)
	target.ChangeVolumeBy(100)
	if target.Volume != 500 {
		t.Errorf("expected clamp to 500, got %f", target.Volume)
	}
}

func TestSetTrimOrdersBounds(t *testing.T) {
	target := NewTarget("a1", 48000)
	target.SetTrim(40000, 10000)
	if target.TrimStart != 10000 || target.TrimEnd != 40000 {
		t.Errorf("expected trim reordered to [10000, 40000], got [%f, %f]", target.TrimStart, target.TrimEnd)
	}
}

func TestDuplicateDeepCopiesMarkersUnderFreshID(t *testing.T) {
	target := NewTarget("a1", 48000)
	target.Markers = []float64{100, 200, 300}

	dup := target.Duplicate("a2")
	if dup.ID != "a2" {
		t.Errorf("expected duplicate to carry the fresh id, got %q", dup.ID)
	}

	dup.Markers[0] = 999
	if target.Markers[0] == 999 {
		t.Error("expected Duplicate to deep-copy markers, not alias them")
	}
}

func TestNewTargetStartsWithFullNonblockingBudget(t *testing.T) {
	target := NewTarget("a1", 48000)
	if target.NonblockingSoundsAvailable != MaxNonblocking {
		t.Errorf("expected initial budget %d, got %d", MaxNonblocking, target.NonblockingSoundsAvailable)
	}
}
