package extension

import "testing"

func TestNewAudioExtensionExposesMarkersMenuAndOpcodes(t *testing.T) {
	ext := NewAudioExtension(func(targetID string) []MenuEntry {
		return []MenuEntry{{Text: "n/a", Value: "0"}}
	})

	if ext.ID != AudioExtensionID || ext.Name != AudioExtensionName {
		t.Fatalf("unexpected extension identity: %+v", ext)
	}

	opcodes := map[string]bool{}
	for _, b := range ext.Blocks {
		opcodes[b.Opcode] = true
	}
	for _, want := range []string{
		"playSound", "playSoundFromAToB", "startSound", "startSoundFromAToB",
		"setPlayRate", "getVolume", "getPlayRate",
	} {
		if !opcodes[want] {
			t.Errorf("expected audio extension to describe opcode %q", want)
		}
	}

	if _, ok := ext.Menus["markers"]; !ok {
		t.Fatalf("expected an audio markers menu")
	}
}
