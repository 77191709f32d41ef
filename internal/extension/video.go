package extension

// VideoExtensionID/VideoExtensionName identify the video extension
// record returned by NewVideoExtension.
const (
	VideoExtensionID   = "steinaVideo"
	VideoExtensionName = "Video"
)

// NewVideoExtension builds the block metadata record the editor would
// consult for the video primitives in internal/blocks. markersMenu is
// the dynamic builder from MarkersMenu, wired by the host over its
// video targets.
func NewVideoExtension(markersMenu func(targetID string) []MenuEntry) Extension {
	return Extension{
		ID:   VideoExtensionID,
		Name: VideoExtensionName,
		Blocks: []BlockDescriptor{
			{Opcode: "playEntireVideoUntilDone", BlockType: BlockTypeCommand, Text: "play entire video until done"},
			{Opcode: "playVideoFromAToB", BlockType: BlockTypeCommand, Text: "play video from [A] to [B]",
				Arguments: map[string]ArgSpec{
					"A": {Type: ArgNumber, Menu: "markers", DefaultValue: "0"},
					"B": {Type: ArgNumber, Menu: "markers", DefaultValue: "0"},
				}},
			{Opcode: "playForwardReverseUntilDone", BlockType: BlockTypeCommand, Text: "play [DIRECTION] until done",
				Arguments: map[string]ArgSpec{"DIRECTION": {Type: ArgString, Menu: "direction", DefaultValue: "forward"}}},
			{Opcode: "startPlaying", BlockType: BlockTypeCommand, Text: "start playing"},
			{Opcode: "startPlayingForwardReverse", BlockType: BlockTypeCommand, Text: "start playing [DIRECTION]",
				Arguments: map[string]ArgSpec{"DIRECTION": {Type: ArgString, Menu: "direction", DefaultValue: "forward"}}},
			{Opcode: "stopPlaying", BlockType: BlockTypeCommand, Text: "stop playing"},
			{Opcode: "playNFrames", BlockType: BlockTypeCommand, Text: "play [N] frames",
				Arguments: map[string]ArgSpec{"N": {Type: ArgNumber, DefaultValue: "1"}}},
			{Opcode: "goToFrame", BlockType: BlockTypeCommand, Text: "go to frame [FRAME]",
				Arguments: map[string]ArgSpec{"FRAME": {Type: ArgNumber, Menu: "markers", DefaultValue: "1"}}},
			{Opcode: "nextFrame", BlockType: BlockTypeCommand, Text: "next frame"},
			{Opcode: "previousFrame", BlockType: BlockTypeCommand, Text: "previous frame"},
			{Opcode: "changeEffectBy", BlockType: BlockTypeCommand, Text: "change [EFFECT] by [VALUE]",
				Arguments: map[string]ArgSpec{
					"EFFECT": {Type: ArgString, Menu: "effect", DefaultValue: "color"},
					"VALUE":  {Type: ArgNumber, DefaultValue: "25"},
				}},
			{Opcode: "setEffectTo", BlockType: BlockTypeCommand, Text: "set [EFFECT] to [VALUE]",
				Arguments: map[string]ArgSpec{
					"EFFECT": {Type: ArgString, Menu: "effect", DefaultValue: "color"},
					"VALUE":  {Type: ArgNumber, DefaultValue: "0"},
				}},
			{Opcode: "clearVideoEffects", BlockType: BlockTypeCommand, Text: "clear graphic effects"},
			{Opcode: "setPlayRate", BlockType: BlockTypeCommand, Text: "set play rate to [RATE] %",
				Arguments: map[string]ArgSpec{"RATE": {Type: ArgNumber, DefaultValue: "100"}}},

			{Opcode: "whenPlayedToEnd", BlockType: BlockTypeHat, Text: "when played to end"},
			{Opcode: "whenPlayedToBeginning", BlockType: BlockTypeHat, Text: "when played to beginning"},
			{Opcode: "whenReached", BlockType: BlockTypeHat, Text: "when reached [MARKER]",
				Arguments: map[string]ArgSpec{"MARKER": {Type: ArgNumber, Menu: "markers", DefaultValue: "0"}}},
			{Opcode: "whenTapped", BlockType: BlockTypeHat, Text: "when this video is tapped"},

			{Opcode: "getCurrentFrame", BlockType: BlockTypeReporter, Text: "current frame"},
			{Opcode: "getTotalFrames", BlockType: BlockTypeReporter, Text: "total frames"},
			{Opcode: "getPlayRate", BlockType: BlockTypeReporter, Text: "play rate"},
			{Opcode: "isTapped", BlockType: BlockTypeBoolean, Text: "tapped?"},
		},
		Menus: map[string]Menu{
			"direction": {Static: []MenuEntry{{Text: "forward", Value: "forward"}, {Text: "backward", Value: "backward"}}},
			"effect":    {Static: effectMenu()},
			"markers":   {Dynamic: markersMenu},
		},
	}
}

func effectMenu() []MenuEntry {
	return []MenuEntry{
		{Text: "color", Value: "color"},
		{Text: "whirl", Value: "whirl"},
		{Text: "brightness", Value: "brightness"},
		{Text: "ghost", Value: "ghost"},
	}
}
