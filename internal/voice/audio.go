package voice

import (
	"fmt"
	"strings"
)

// Audio container formats accepted from providers. Ogg is the target
// streaming format for chat delivery.
const (
	FormatOgg  = "ogg"
	FormatOpus = "opus"
	FormatMP3  = "mp3"
	FormatWAV  = "wav"
)

var knownFormats = map[string]bool{
	FormatOgg:  true,
	FormatOpus: true,
	FormatMP3:  true,
	FormatWAV:  true,
}

// VoiceMessage is an immutable synthesized audio clip with its metadata.
// Size is derived from the byte length at construction and fixed thereafter.
type VoiceMessage struct {
	audio    []byte
	format   string
	duration int // seconds, 0 when unknown
	size     int
}

// NewVoiceMessage validates and wraps synthesized audio bytes. It fails with
// a ValidationError when the audio is empty or the format, lower-cased, is
// not one of ogg, opus, mp3, wav.
func NewVoiceMessage(audio []byte, format string) (VoiceMessage, error) {
	return NewVoiceMessageWithDuration(audio, format, 0)
}

// NewVoiceMessageWithDuration is NewVoiceMessage with a known duration in
// seconds.
func NewVoiceMessageWithDuration(audio []byte, format string, durationSeconds int) (VoiceMessage, error) {
	if len(audio) == 0 {
		return VoiceMessage{}, NewValidationError("audio data cannot be empty")
	}
	normalized := strings.ToLower(format)
	if !knownFormats[normalized] {
		return VoiceMessage{}, NewValidationError(fmt.Sprintf("unsupported audio format: %s", format))
	}
	return VoiceMessage{
		audio:    audio,
		format:   normalized,
		duration: durationSeconds,
		size:     len(audio),
	}, nil
}

func (m VoiceMessage) Audio() []byte { return m.audio }

// Format returns the lower-cased container format tag.
func (m VoiceMessage) Format() string { return m.format }

// Duration returns the clip length in seconds, 0 when unknown.
func (m VoiceMessage) Duration() int { return m.duration }

// Size returns the audio size in bytes.
func (m VoiceMessage) Size() int { return m.size }
