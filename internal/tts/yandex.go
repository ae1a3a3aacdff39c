package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/antonveselov/voicegen/internal/voice"
)

// YandexConfig holds credentials for the Yandex SpeechKit backend. FolderID
// is required when authenticating with a plain API key.
type YandexConfig struct {
	APIKey   string
	FolderID string
	BaseURL  string // default: "https://tts.api.cloud.yandex.net"
}

// YandexTTS synthesizes speech through the Yandex SpeechKit HTTP API. The
// vendor returns Opus-in-Ogg natively, so no post-conversion is needed.
type YandexTTS struct {
	cfg        YandexConfig
	httpClient *http.Client
}

// NewYandexTTS creates a YandexTTS. The API key is required.
func NewYandexTTS(cfg YandexConfig) (*YandexTTS, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("yandex API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://tts.api.cloud.yandex.net"
	}
	return &YandexTTS{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (y *YandexTTS) Name() string { return "yandex" }

// Synthesize converts text to Ogg/Opus audio via one HTTP call.
func (y *YandexTTS) Synthesize(ctx context.Context, text voice.TextMessage, cfg voice.SynthesisConfig) (voice.VoiceMessage, error) {
	form := url.Values{}
	form.Set("text", text.Content())
	form.Set("lang", cfg.Language())
	form.Set("voice", cfg.Voice())
	form.Set("speed", strconv.FormatFloat(cfg.Speed(), 'f', -1, 64))
	form.Set("format", "oggopus")
	if y.cfg.FolderID != "" {
		form.Set("folderId", y.cfg.FolderID)
	}
	if cfg.Emotion() != "" {
		form.Set("emotion", cfg.Emotion())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		y.cfg.BaseURL+"/speech/v1/tts:synthesize", strings.NewReader(form.Encode()))
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("build yandex tts request", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Api-Key "+y.cfg.APIKey)

	resp, err := y.httpClient.Do(httpReq)
	if err != nil {
		return voice.VoiceMessage{}, voice.UnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return voice.VoiceMessage{}, voice.NewProviderError(
			fmt.Sprintf("yandex tts api error: %d%s", resp.StatusCode, vendorDetail(resp.Body)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return voice.VoiceMessage{}, voice.UnavailableError(err)
	}

	msg, err := voice.NewVoiceMessage(audio, voice.FormatOgg)
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("yandex tts returned invalid audio", err)
	}
	return msg, nil
}

// vendorDetail extracts a vendor-supplied error message from an error
// response body, falling back to a raw snippet.
func vendorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return " - " + payload.Message
		}
		if payload.Error.Message != "" {
			return " - " + payload.Error.Message
		}
	}

	snippet := string(raw)
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	return " - " + snippet
}
