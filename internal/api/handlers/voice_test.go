package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonveselov/voicegen/internal/voice"
)

type stubGenerator struct {
	msg     voice.VoiceMessage
	err     error
	calls   int
	gotText string
	gotUser int64
	gotCfg  *voice.SynthesisConfig
}

func (s *stubGenerator) Execute(ctx context.Context, text string, userID int64, cfg *voice.SynthesisConfig) (voice.VoiceMessage, error) {
	s.calls++
	s.gotText = text
	s.gotUser = userID
	s.gotCfg = cfg
	return s.msg, s.err
}

type stubNormalizer struct {
	msg voice.VoiceMessage
	err error
}

func (s *stubNormalizer) ToOggOpus(ctx context.Context, msg voice.VoiceMessage) (voice.VoiceMessage, error) {
	if s.err != nil {
		return voice.VoiceMessage{}, s.err
	}
	if s.msg.Size() > 0 {
		return s.msg, nil
	}
	return msg, nil
}

func postVoice(t *testing.T, h *VoiceHandler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)
	return rec
}

func TestVoiceHandler_Generate(t *testing.T) {
	msg, err := voice.NewVoiceMessage([]byte("ogg-bytes"), "ogg")
	require.NoError(t, err)

	gen := &stubGenerator{msg: msg}
	h := NewVoiceHandler(gen, &stubNormalizer{})

	rec := postVoice(t, h, VoiceRequest{Text: "privet", UserID: 42})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/ogg", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte("ogg-bytes"), rec.Body.Bytes())
	assert.Equal(t, "privet", gen.gotText)
	assert.Equal(t, int64(42), gen.gotUser)
	assert.Nil(t, gen.gotCfg, "no customization means default config")
}

func TestVoiceHandler_NormalizesNonOggOutput(t *testing.T) {
	mp3, err := voice.NewVoiceMessage([]byte("mp3-bytes"), "mp3")
	require.NoError(t, err)
	ogg, err := voice.NewVoiceMessage([]byte("normalized"), "ogg")
	require.NoError(t, err)

	h := NewVoiceHandler(&stubGenerator{msg: mp3}, &stubNormalizer{msg: ogg})

	rec := postVoice(t, h, VoiceRequest{Text: "privet"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte("normalized"), rec.Body.Bytes())
}

func TestVoiceHandler_PassesSynthesisConfig(t *testing.T) {
	msg, err := voice.NewVoiceMessage([]byte("a"), "ogg")
	require.NoError(t, err)
	gen := &stubGenerator{msg: msg}
	h := NewVoiceHandler(gen, &stubNormalizer{})

	rec := postVoice(t, h, VoiceRequest{Text: "privet", Voice: "oksana", Speed: 1.5})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gen.gotCfg)
	assert.Equal(t, "oksana", gen.gotCfg.Voice())
	assert.Equal(t, 1.5, gen.gotCfg.Speed())
	assert.Equal(t, voice.DefaultLanguage, gen.gotCfg.Language())
}

func TestVoiceHandler_InvalidSpeedRejectedBeforeGeneration(t *testing.T) {
	gen := &stubGenerator{}
	h := NewVoiceHandler(gen, &stubNormalizer{})

	rec := postVoice(t, h, VoiceRequest{Text: "privet", Speed: 99})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, gen.calls)
}

func TestVoiceHandler_ValidationErrorIs400(t *testing.T) {
	h := NewVoiceHandler(&stubGenerator{err: voice.NewValidationError("text cannot be empty")}, &stubNormalizer{})

	rec := postVoice(t, h, VoiceRequest{Text: ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "empty")
}

func TestVoiceHandler_ProviderErrorIs502(t *testing.T) {
	h := NewVoiceHandler(&stubGenerator{err: voice.NewProviderError("backend down")}, &stubNormalizer{})

	rec := postVoice(t, h, VoiceRequest{Text: "privet"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestVoiceHandler_NormalizerErrorIs502(t *testing.T) {
	msg, err := voice.NewVoiceMessage([]byte("mp3"), "mp3")
	require.NoError(t, err)

	h := NewVoiceHandler(&stubGenerator{msg: msg}, &stubNormalizer{err: voice.NewProviderError("audio conversion timed out")})

	rec := postVoice(t, h, VoiceRequest{Text: "privet"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestVoiceHandler_MalformedBody(t *testing.T) {
	h := NewVoiceHandler(&stubGenerator{}, &stubNormalizer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
