package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonveselov/voicegen/internal/tts"
	"github.com/antonveselov/voicegen/internal/voice"
)

type stubProvider struct {
	msg    voice.VoiceMessage
	err    error
	calls  int
	gotCfg voice.SynthesisConfig
}

func (s *stubProvider) Synthesize(ctx context.Context, text voice.TextMessage, cfg voice.SynthesisConfig) (voice.VoiceMessage, error) {
	s.calls++
	s.gotCfg = cfg
	return s.msg, s.err
}

func (s *stubProvider) Name() string { return "stub" }

func newUseCaseWith(t *testing.T, stub *stubProvider) *UseCase {
	t.Helper()
	return NewUseCase(tts.NewService(stub))
}

func TestExecute(t *testing.T) {
	want, err := voice.NewVoiceMessage([]byte("0123456789"), "ogg")
	require.NoError(t, err)

	stub := &stubProvider{msg: want}
	uc := newUseCaseWith(t, stub)

	got, err := uc.Execute(context.Background(), "Hello, world!", 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, got.Size())
	assert.Equal(t, voice.FormatOgg, got.Format())
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, voice.DefaultSynthesisConfig(), stub.gotCfg, "nil config means defaults")
}

func TestExecute_CustomConfig(t *testing.T) {
	msg, err := voice.NewVoiceMessage([]byte("a"), "ogg")
	require.NoError(t, err)
	stub := &stubProvider{msg: msg}
	uc := newUseCaseWith(t, stub)

	cfg, err := voice.NewSynthesisConfig("oksana", "ru-RU", 2.0, "evil")
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), "privet", 1, &cfg)
	require.NoError(t, err)

	assert.Equal(t, "oksana", stub.gotCfg.Voice())
	assert.Equal(t, 2.0, stub.gotCfg.Speed())
	assert.Equal(t, "evil", stub.gotCfg.Emotion())
}

func TestExecute_EmptyText(t *testing.T) {
	stub := &stubProvider{}
	uc := newUseCaseWith(t, stub)

	_, err := uc.Execute(context.Background(), "", 1, nil)
	require.Error(t, err)

	assert.True(t, voice.IsValidation(err))
	assert.Zero(t, stub.calls, "provider must not be called for invalid input")
}

func TestExecute_TextTooLong(t *testing.T) {
	uc := newUseCaseWith(t, &stubProvider{})

	_, err := uc.Execute(context.Background(), strings.Repeat("a", 2001), 1, nil)
	require.Error(t, err)

	assert.True(t, voice.IsValidation(err))
	assert.Contains(t, err.Error(), "maximum length")
}

func TestExecute_ProviderErrorPassesThroughUnwrapped(t *testing.T) {
	provErr := voice.NewProviderError("backend down")
	uc := newUseCaseWith(t, &stubProvider{err: provErr})

	_, err := uc.Execute(context.Background(), "privet", 1, nil)
	require.ErrorIs(t, err, provErr)
	assert.Equal(t, "backend down", err.Error(), "provider errors are not re-wrapped")
}

func TestExecute_UnexpectedErrorIsWrapped(t *testing.T) {
	cause := errors.New("nil pointer somewhere deep")
	uc := newUseCaseWith(t, &stubProvider{err: cause})

	_, err := uc.Execute(context.Background(), "privet", 1, nil)
	require.Error(t, err)

	assert.True(t, voice.IsProvider(err), "unclassified failures become provider errors")
	assert.ErrorIs(t, err, cause, "original cause preserved for diagnostics")
}
