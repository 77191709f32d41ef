package motion

import "testing"

func TestGetTiltAngleMapsAxesWithSign(t *testing.T) {
	s := Snapshot{Pitch: 20, Roll: -5}

	cases := map[Direction]float64{
		DirForward:  20,
		DirBackward: -20,
		DirRight:    -5,
		DirLeft:     5,
	}
	for dir, want := range cases {
		if got := GetTiltAngle(s, dir); got != want {
			t.Errorf("GetTiltAngle(%s) = %f, want %f", dir, got, want)
		}
	}
}

func TestGetTiltAngleUnknownDirectionReadsZero(t *testing.T) {
	s := Snapshot{Pitch: 20, Roll: -5}
	if got := GetTiltAngle(s, DirNorth); got != 0 {
		t.Errorf("expected a non-tilt direction to read 0, got %f", got)
	}
}

func TestIsTiltedThreshold(t *testing.T) {
	if IsTilted(Snapshot{Pitch: TiltThreshold - 0.01}, DirForward) {
		t.Error("expected just-under-threshold to not count as tilted")
	}
	if !IsTilted(Snapshot{Pitch: TiltThreshold}, DirForward) {
		t.Error("expected exactly-at-threshold to count as tilted (inclusive bound)")
	}
}

func TestIsPointedNorthUsesHalfWidthWindow(t *testing.T) {
	// North's window is CompassThreshold/2 = 10 degrees.
	if !IsPointed(Snapshot{Heading: 9}, DirNorth) {
		t.Error("expected heading within the half-width window to report pointed north")
	}
	if IsPointed(Snapshot{Heading: 15}, DirNorth) {
		t.Error("expected heading beyond the half-width window to not report pointed north")
	}
}

func TestIsPointedSouthUsesFullWidthWindow(t *testing.T) {
	// South's window is the full CompassThreshold = 20 degrees.
	if !IsPointed(Snapshot{Heading: 195}, DirSouth) {
		t.Error("expected heading within the full-width window to report pointed south")
	}
	if IsPointed(Snapshot{Heading: 225}, DirSouth) {
		t.Error("expected heading beyond the full-width window to not report pointed south")
	}
}

func TestIsPointedNorthWrapsAroundZero(t *testing.T) {
	if !IsPointed(Snapshot{Heading: 355}, DirNorth) {
		t.Error("expected heading just under 360 to wrap and count as near-north")
	}
}

func TestIsPointedUnknownDirectionIsFalse(t *testing.T) {
	if IsPointed(Snapshot{Heading: 0}, Direction("up")) {
		t.Error("expected an unrecognized direction to report false")
	}
}
