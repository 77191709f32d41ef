package extension

// AudioExtensionID/AudioExtensionName identify the audio extension
// record returned by NewAudioExtension.
const (
	AudioExtensionID   = "steinaAudio"
	AudioExtensionName = "Audio"
)

// NewAudioExtension builds the block metadata record the editor would
// consult for the audio primitives in internal/blocks. markersMenu is
// the dynamic builder from MarkersMenu, wired by the host over its
// audio targets.
func NewAudioExtension(markersMenu func(targetID string) []MenuEntry) Extension {
	return Extension{
		ID:   AudioExtensionID,
		Name: AudioExtensionName,
		Blocks: []BlockDescriptor{
			{Opcode: "playSound", BlockType: BlockTypeCommand, Text: "play sound until done"},
			{Opcode: "playSoundFromAToB", BlockType: BlockTypeCommand, Text: "play sound from [A] to [B] until done",
				Arguments: map[string]ArgSpec{
					"A": {Type: ArgNumber, Menu: "markers", DefaultValue: "0"},
					"B": {Type: ArgNumber, Menu: "markers", DefaultValue: "0"},
				}},
			{Opcode: "startSound", BlockType: BlockTypeCommand, Text: "start sound"},
			{Opcode: "startSoundFromAToB", BlockType: BlockTypeCommand, Text: "start sound from [A] to [B]",
				Arguments: map[string]ArgSpec{
					"A": {Type: ArgNumber, Menu: "markers", DefaultValue: "0"},
					"B": {Type: ArgNumber, Menu: "markers", DefaultValue: "0"},
				}},
			{Opcode: "setPlayRate", BlockType: BlockTypeCommand, Text: "set play rate to [RATE] %",
				Arguments: map[string]ArgSpec{"RATE": {Type: ArgNumber, DefaultValue: "100"}}},
			{Opcode: "changePlayRateBy", BlockType: BlockTypeCommand, Text: "change play rate by [DELTA]",
				Arguments: map[string]ArgSpec{"DELTA": {Type: ArgNumber, DefaultValue: "10"}}},
			{Opcode: "setVolumeTo", BlockType: BlockTypeCommand, Text: "set volume to [VOLUME] %",
				Arguments: map[string]ArgSpec{"VOLUME": {Type: ArgNumber, DefaultValue: "100"}}},
			{Opcode: "changeVolumeBy", BlockType: BlockTypeCommand, Text: "change volume by [DELTA]",
				Arguments: map[string]ArgSpec{"DELTA": {Type: ArgNumber, DefaultValue: "10"}}},

			{Opcode: "getVolume", BlockType: BlockTypeReporter, Text: "volume"},
			{Opcode: "getPlayRate", BlockType: BlockTypeReporter, Text: "play rate"},
		},
		Menus: map[string]Menu{
			"markers": {Dynamic: markersMenu},
		},
	}
}
