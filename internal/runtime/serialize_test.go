package runtime

import (
	"testing"

	"steinacore/internal/audio"
	"steinacore/internal/video"
)

func TestVideoTargetJSONRoundTrip(t *testing.T) {
	original := video.NewTarget("v1", 24, 480)
	original.X, original.Y = 10, -20
	original.Size = 150
	original.Direction = 45
	original.Visible = false
	original.Effects.Whirl = 33
	original.CurrentFrame = 120
	original.PlaybackRate = -50

	data, err := MarshalVideoTarget(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored, err := UnmarshalVideoTarget(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.ID != original.ID || restored.X != original.X || restored.Y != original.Y ||
		restored.Size != original.Size || restored.Direction != original.Direction ||
		restored.Visible != original.Visible || restored.Effects != original.Effects ||
		restored.FPS != original.FPS || restored.Frames != original.Frames ||
		restored.CurrentFrame != original.CurrentFrame || restored.PlaybackRate != original.PlaybackRate {
		t.Errorf("round trip mismatch: got %+v, want %+v", restored, original)
	}
}

func TestAudioTargetJSONRoundTrip(t *testing.T) {
	original := audio.NewTarget("a1", 96000)
	original.Volume = 250
	original.SampleRate = 44100
	original.Markers = []float64{1000, 2000, 3000}
	original.SetTrim(500, 90000)
	original.PlaybackRate = 150

	data, err := MarshalAudioTarget(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored, err := UnmarshalAudioTarget(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.ID != original.ID || restored.Volume != original.Volume ||
		restored.TotalSamples != original.TotalSamples || restored.SampleRate != original.SampleRate ||
		restored.TrimStart != original.TrimStart || restored.TrimEnd != original.TrimEnd ||
		restored.PlaybackRate != original.PlaybackRate || len(restored.Markers) != len(original.Markers) {
		t.Errorf("round trip mismatch: got %+v, want %+v", restored, original)
	}
	for i := range original.Markers {
		if restored.Markers[i] != original.Markers[i] {
			t.Errorf("marker %d mismatch: got %f, want %f", i, restored.Markers[i], original.Markers[i])
		}
	}
}
