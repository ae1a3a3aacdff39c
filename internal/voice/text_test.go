package voice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextMessage(t *testing.T) {
	msg, err := NewTextMessage("Hello, world!")
	require.NoError(t, err)

	assert.Equal(t, "Hello, world!", msg.Content())
	assert.Equal(t, 13, msg.Length())
	assert.False(t, msg.IsEmpty())
}

func TestNewTextMessage_Empty(t *testing.T) {
	for _, content := range []string{"", " ", "\t\n  "} {
		_, err := NewTextMessage(content)
		require.Error(t, err, "content %q", content)
		assert.True(t, IsValidation(err))
	}
}

func TestNewTextMessage_MaxLength(t *testing.T) {
	msg, err := NewTextMessage(strings.Repeat("a", MaxTextLength))
	require.NoError(t, err)
	assert.Equal(t, MaxTextLength, msg.Length())

	_, err = NewTextMessage(strings.Repeat("a", MaxTextLength+1))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "maximum length")
	assert.Contains(t, err.Error(), "2000")
}

func TestNewTextMessage_LengthInRunes(t *testing.T) {
	// 2000 multi-byte characters are still within the limit.
	msg, err := NewTextMessage(strings.Repeat("ы", MaxTextLength))
	require.NoError(t, err)
	assert.Equal(t, MaxTextLength, msg.Length())
}
