// Package generate holds the voice-message generation use case: the single
// entry point adapters call to turn raw text into a synthesized clip.
package generate

import (
	"context"
	"log/slog"
	"time"

	"github.com/antonveselov/voicegen/internal/metrics"
	"github.com/antonveselov/voicegen/internal/tts"
	"github.com/antonveselov/voicegen/internal/voice"
)

// UseCase validates input, delegates to the synthesis service and classifies
// every failure so callers only ever see ValidationError or ProviderError.
type UseCase struct {
	svc *tts.Service
}

func NewUseCase(svc *tts.Service) *UseCase {
	return &UseCase{svc: svc}
}

// Execute generates a voice message for the given text. A nil cfg means the
// default synthesis configuration.
func (u *UseCase) Execute(ctx context.Context, text string, userID int64, cfg *voice.SynthesisConfig) (voice.VoiceMessage, error) {
	start := time.Now()

	msg, err := voice.NewTextMessage(text)
	if err != nil {
		slog.Warn("rejected voice request", "user_id", userID, "error", err)
		metrics.GenerationFailed("validation_error")
		return voice.VoiceMessage{}, err
	}

	synthCfg := voice.DefaultSynthesisConfig()
	if cfg != nil {
		synthCfg = *cfg
	}

	audio, err := u.svc.Synthesize(ctx, msg, synthCfg)
	if err != nil {
		return voice.VoiceMessage{}, u.classify(err, userID)
	}

	slog.Info("voice message generated",
		"user_id", userID,
		"text_length", msg.Length(),
		"audio_size", audio.Size(),
		"provider", u.svc.ProviderName(),
	)
	metrics.GenerationSucceeded(u.svc.ProviderName(), time.Since(start), audio.Size())

	return audio, nil
}

// classify maps a synthesis failure onto the two-kind error taxonomy.
// Validation and provider errors pass through unchanged; anything else is
// wrapped so no raw internal error escapes the use case.
func (u *UseCase) classify(err error, userID int64) error {
	switch {
	case voice.IsValidation(err):
		slog.Warn("rejected voice request", "user_id", userID, "error", err)
		metrics.GenerationFailed("validation_error")
		return err
	case voice.IsProvider(err):
		slog.Error("tts provider failure", "user_id", userID, "provider", u.svc.ProviderName(), "error", err)
		metrics.GenerationFailed("provider_error")
		return err
	default:
		slog.Error("unexpected failure during voice generation",
			"user_id", userID, "provider", u.svc.ProviderName(), "error", err)
		metrics.GenerationFailed("provider_error")
		return voice.WrapProviderError("failed to generate voice message: "+err.Error(), err)
	}
}
