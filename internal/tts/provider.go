package tts

import (
	"context"

	"github.com/antonveselov/voicegen/internal/voice"
)

// Provider is the interface for speech-synthesis backends. Implementations
// fail with a *voice.ProviderError on any backend failure and never leak
// backend-specific error types.
type Provider interface {
	Synthesize(ctx context.Context, text voice.TextMessage, cfg voice.SynthesisConfig) (voice.VoiceMessage, error)
	Name() string
}
