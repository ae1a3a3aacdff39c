package tts

import (
	"context"

	"github.com/antonveselov/voicegen/internal/voice"
)

// Service is the domain-facing synthesis entry point. It holds exactly one
// Provider, fixed for the service's lifetime, and exists so callers depend on
// the capability rather than a concrete backend.
type Service struct {
	provider Provider
}

func NewService(p Provider) *Service {
	return &Service{provider: p}
}

// Synthesize forwards to the configured provider and propagates its result
// or failure unchanged.
func (s *Service) Synthesize(ctx context.Context, text voice.TextMessage, cfg voice.SynthesisConfig) (voice.VoiceMessage, error) {
	return s.provider.Synthesize(ctx, text, cfg)
}

// ProviderName returns the name of the configured backend.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
