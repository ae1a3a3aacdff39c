package tts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonveselov/voicegen/internal/voice"
)

type stubProvider struct {
	name    string
	msg     voice.VoiceMessage
	err     error
	gotText voice.TextMessage
	gotCfg  voice.SynthesisConfig
}

func (s *stubProvider) Synthesize(ctx context.Context, text voice.TextMessage, cfg voice.SynthesisConfig) (voice.VoiceMessage, error) {
	s.gotText = text
	s.gotCfg = cfg
	return s.msg, s.err
}

func (s *stubProvider) Name() string { return s.name }

func TestService_ForwardsToProvider(t *testing.T) {
	want, err := voice.NewVoiceMessage([]byte("audio"), "ogg")
	require.NoError(t, err)

	stub := &stubProvider{name: "stub", msg: want}
	svc := NewService(stub)

	text, err := voice.NewTextMessage("privet")
	require.NoError(t, err)

	got, err := svc.Synthesize(context.Background(), text, voice.DefaultSynthesisConfig())
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, "privet", stub.gotText.Content())
	assert.Equal(t, "stub", svc.ProviderName())
}

func TestService_PropagatesErrorUnchanged(t *testing.T) {
	provErr := voice.NewProviderError("backend down")
	svc := NewService(&stubProvider{err: provErr})

	text, err := voice.NewTextMessage("privet")
	require.NoError(t, err)

	_, err = svc.Synthesize(context.Background(), text, voice.DefaultSynthesisConfig())
	require.ErrorIs(t, err, provErr)
}
