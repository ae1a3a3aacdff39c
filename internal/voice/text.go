package voice

import (
	"fmt"
	"strings"
)

// MaxTextLength is the longest text accepted for a single synthesis request.
const MaxTextLength = 2000

// TextMessage is an immutable, validated wrapper around the text to
// synthesize.
type TextMessage struct {
	content string
}

// NewTextMessage validates and wraps raw text. It fails with a
// ValidationError when the trimmed content is empty or the raw content
// exceeds MaxTextLength.
func NewTextMessage(content string) (TextMessage, error) {
	if len(strings.TrimSpace(content)) == 0 {
		return TextMessage{}, NewValidationError("text cannot be empty")
	}
	if len([]rune(content)) > MaxTextLength {
		return TextMessage{}, NewValidationError(fmt.Sprintf(
			"text exceeds maximum length of %d characters (current length: %d)",
			MaxTextLength, len([]rune(content))))
	}
	return TextMessage{content: content}, nil
}

func (t TextMessage) Content() string { return t.content }

// Length returns the content length in characters.
func (t TextMessage) Length() int { return len([]rune(t.content)) }

func (t TextMessage) IsEmpty() bool { return len(strings.TrimSpace(t.content)) == 0 }
