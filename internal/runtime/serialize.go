package runtime

import (
	"encoding/json"
	"fmt"

	"steinacore/internal/audio"
	"steinacore/internal/video"
)

// VideoTargetJSON is the persisted shape of a video target. Blocks,
// Variables, and Lists are owned by the external project/block-storage
// collaborator and are carried here as opaque JSON so round-tripping a
// project doesn't require this package to understand their schema.
type VideoTargetJSON struct {
	ID           string          `json:"id"`
	X            float64         `json:"x"`
	Y            float64         `json:"y"`
	Size         float64         `json:"size"`
	Direction    float64         `json:"direction"`
	Visible      bool            `json:"visible"`
	Effects      video.Effects   `json:"effects"`
	Blocks       json.RawMessage `json:"blocks,omitempty"`
	Variables    json.RawMessage `json:"variables,omitempty"`
	Lists        json.RawMessage `json:"lists,omitempty"`
	FPS          float64         `json:"fps"`
	Frames       int             `json:"frames"`
	CurrentFrame float64         `json:"currentFrame"`
	PlaybackRate float64         `json:"playbackRate"`
}

// AudioTargetJSON is the persisted shape of an audio target.
type AudioTargetJSON struct {
	ID           string          `json:"id"`
	Volume       float64         `json:"volume"`
	TotalSamples float64         `json:"totalSamples"`
	SampleRate   float64         `json:"sampleRate"`
	Blocks       json.RawMessage `json:"blocks,omitempty"`
	Variables    json.RawMessage `json:"variables,omitempty"`
	Lists        json.RawMessage `json:"lists,omitempty"`
	Markers      []float64       `json:"markers"`
	TrimStart    float64         `json:"trimStart"`
	TrimEnd      float64         `json:"trimEnd"`
	PlaybackRate float64         `json:"playbackRate"`
}

// MarshalVideoTarget serializes a video target to its persisted JSON shape.
func MarshalVideoTarget(t *video.Target) ([]byte, error) {
	doc := VideoTargetJSON{
		ID: t.ID, X: t.X, Y: t.Y, Size: t.Size, Direction: t.Direction,
		Visible: t.Visible, Effects: t.Effects,
		FPS: t.FPS, Frames: t.Frames,
		CurrentFrame: t.CurrentFrame, PlaybackRate: t.PlaybackRate,
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("runtime: marshal video target %q: %w", t.ID, err)
	}
	return out, nil
}

// UnmarshalVideoTarget restores a video target from its persisted JSON
// shape, round-tripping every field MarshalVideoTarget wrote.
func UnmarshalVideoTarget(data []byte) (*video.Target, error) {
	var doc VideoTargetJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("runtime: unmarshal video target: %w", err)
	}
	t := video.NewTarget(doc.ID, doc.FPS, doc.Frames)
	t.X, t.Y = doc.X, doc.Y
	t.Size = doc.Size
	t.Direction = doc.Direction
	t.Visible = doc.Visible
	t.Effects = doc.Effects
	t.CurrentFrame = doc.CurrentFrame
	t.PlaybackRate = doc.PlaybackRate
	return t, nil
}

// MarshalAudioTarget serializes an audio target to its persisted JSON shape.
func MarshalAudioTarget(t *audio.Target) ([]byte, error) {
	doc := AudioTargetJSON{
		ID: t.ID, Volume: t.Volume, TotalSamples: t.TotalSamples,
		SampleRate: t.SampleRate, Markers: t.Markers,
		TrimStart: t.TrimStart, TrimEnd: t.TrimEnd, PlaybackRate: t.PlaybackRate,
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("runtime: marshal audio target %q: %w", t.ID, err)
	}
	return out, nil
}

// UnmarshalAudioTarget restores an audio target from its persisted
// JSON shape.
func UnmarshalAudioTarget(data []byte) (*audio.Target, error) {
	var doc AudioTargetJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("runtime: unmarshal audio target: %w", err)
	}
	t := audio.NewTarget(doc.ID, doc.TotalSamples)
	t.Volume = doc.Volume
	t.SampleRate = doc.SampleRate
	t.Markers = doc.Markers
	t.TrimStart = doc.TrimStart
	t.TrimEnd = doc.TrimEnd
	t.PlaybackRate = doc.PlaybackRate
	return t, nil
}
