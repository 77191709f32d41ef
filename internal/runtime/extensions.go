package runtime

import (
	"steinacore/internal/audio"
	"steinacore/internal/extension"
	"steinacore/internal/video"
)

// videoMarkerSource adapts *video.Target to extension.MarkerSource.
type videoMarkerSource struct{ t *video.Target }

func (s videoMarkerSource) TrimStart() float64      { return s.t.TrimStart }
func (s videoMarkerSource) TrimEnd() float64        { return s.t.TrimEnd }
func (s videoMarkerSource) MarkerValues() []float64 { return s.t.Markers }

// audioMarkerSource adapts *audio.Target to extension.MarkerSource.
type audioMarkerSource struct{ t *audio.Target }

func (s audioMarkerSource) TrimStart() float64      { return s.t.TrimStart }
func (s audioMarkerSource) TrimEnd() float64        { return s.t.TrimEnd }
func (s audioMarkerSource) MarkerValues() []float64 { return s.t.Markers }

// VideoMarkersMenu builds the dynamic "markers" menu over this
// runtime's registered video targets.
func (rt *Runtime) VideoMarkersMenu() func(targetID string) []extension.MenuEntry {
	return extension.MarkersMenu(func(targetID string) (extension.MarkerSource, bool) {
		t, ok := rt.VideoTarget(targetID)
		if !ok {
			return nil, false
		}
		return videoMarkerSource{t}, true
	})
}

// AudioMarkersMenu builds the dynamic "markers" menu over this
// runtime's registered audio targets.
func (rt *Runtime) AudioMarkersMenu() func(targetID string) []extension.MenuEntry {
	return extension.MarkersMenu(func(targetID string) (extension.MarkerSource, bool) {
		t, ok := rt.AudioTarget(targetID)
		if !ok {
			return nil, false
		}
		return audioMarkerSource{t}, true
	})
}

// VideoExtension returns the block metadata record for the video
// extension, with its markers menu wired to this runtime's video
// targets.
func (rt *Runtime) VideoExtension() extension.Extension {
	return extension.NewVideoExtension(rt.VideoMarkersMenu())
}

// AudioExtension returns the block metadata record for the audio
// extension, with its markers menu wired to this runtime's audio
// targets.
func (rt *Runtime) AudioExtension() extension.Extension {
	return extension.NewAudioExtension(rt.AudioMarkersMenu())
}
