package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVoiceMessage(t *testing.T) {
	audio := []byte("0123456789")

	for _, format := range []string{"ogg", "opus", "mp3", "wav", "OGG", "Mp3"} {
		msg, err := NewVoiceMessage(audio, format)
		require.NoError(t, err, "format %q", format)

		assert.Equal(t, audio, msg.Audio())
		assert.Equal(t, len(audio), msg.Size())
		assert.Zero(t, msg.Duration())
	}
}

func TestNewVoiceMessage_FormatNormalized(t *testing.T) {
	msg, err := NewVoiceMessage([]byte("x"), "WAV")
	require.NoError(t, err)
	assert.Equal(t, FormatWAV, msg.Format())
}

func TestNewVoiceMessage_EmptyAudio(t *testing.T) {
	for _, audio := range [][]byte{nil, {}} {
		_, err := NewVoiceMessage(audio, "ogg")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}
}

func TestNewVoiceMessage_UnknownFormat(t *testing.T) {
	for _, format := range []string{"", "flac", "aac", "oggg"} {
		_, err := NewVoiceMessage([]byte("data"), format)
		require.Error(t, err, "format %q", format)
		assert.True(t, IsValidation(err), "format %q", format)
		assert.Contains(t, err.Error(), "unsupported audio format")
	}
}

func TestNewVoiceMessageWithDuration(t *testing.T) {
	msg, err := NewVoiceMessageWithDuration([]byte("data"), "ogg", 7)
	require.NoError(t, err)

	assert.Equal(t, 7, msg.Duration())
	assert.Equal(t, 4, msg.Size())
}
