package tts

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/antonveselov/voicegen/internal/voice"
)

// SberConfig holds credentials for the Sber SaluteSpeech backend. APIKey is
// the base64 client credential used for the OAuth token exchange.
type SberConfig struct {
	APIKey   string
	ClientID string
	BaseURL  string // default: "https://smartspeech.sber.ru"
	TokenURL string // default: "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
}

const sberDefaultVoice = "Pon_24000"

// SberTTS synthesizes speech through the Sber SaluteSpeech REST API. The
// short-lived access token is exchanged at construction time; an expired
// token detected during a call is refreshed for the next call, but the call
// that detected it still fails.
type SberTTS struct {
	cfg        SberConfig
	httpClient *http.Client

	// accessToken holds a string. Concurrent refreshes may race; re-fetching
	// a valid token is harmless, so no lock.
	accessToken atomic.Value
}

// NewSberTTS creates a SberTTS and performs the initial token exchange,
// failing if the exchange fails.
func NewSberTTS(cfg SberConfig) (*SberTTS, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sber API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://smartspeech.sber.ru"
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	}

	s := &SberTTS{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				// The vendor endpoints are signed by the Russian trust chain,
				// which is absent from most system cert stores.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}

	token, err := s.fetchAccessToken(context.Background())
	if err != nil {
		return nil, fmt.Errorf("sber token exchange: %w", err)
	}
	s.accessToken.Store(token)
	return s, nil
}

func (s *SberTTS) Name() string { return "sber" }

// Synthesize converts text to Opus audio via one HTTP call.
func (s *SberTTS) Synthesize(ctx context.Context, text voice.TextMessage, cfg voice.SynthesisConfig) (voice.VoiceMessage, error) {
	params := url.Values{}
	params.Set("lang", cfg.Language())
	params.Set("voice", s.voiceFor(cfg))
	params.Set("speed", strconv.FormatFloat(cfg.Speed(), 'f', -1, 64))
	params.Set("format", "opus")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.BaseURL+"/rest/v1/text:synthesize?"+params.Encode(), strings.NewReader(text.Content()))
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("build sber tts request", err)
	}
	httpReq.Header.Set("Content-Type", "application/text")
	httpReq.Header.Set("Authorization", "Bearer "+s.token())
	if s.cfg.ClientID != "" {
		httpReq.Header.Set("X-Client-Id", s.cfg.ClientID)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return voice.VoiceMessage{}, voice.UnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return voice.VoiceMessage{}, s.errorFromResponse(ctx, resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return voice.VoiceMessage{}, voice.UnavailableError(err)
	}

	msg, err := voice.NewVoiceMessage(audio, voice.FormatOgg)
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("sber tts returned invalid audio", err)
	}
	return msg, nil
}

// voiceFor maps the generic config voice onto a Sber voice, keeping the
// vendor default when the caller did not pick one explicitly.
func (s *SberTTS) voiceFor(cfg voice.SynthesisConfig) string {
	if cfg.Voice() == "" || cfg.Voice() == voice.DefaultVoice {
		return sberDefaultVoice
	}
	return cfg.Voice()
}

// errorFromResponse builds the ProviderError for a non-success status. When
// the vendor reports an expired token, the token is refreshed so the next
// call succeeds; the current call still fails and the message says so.
func (s *SberTTS) errorFromResponse(ctx context.Context, resp *http.Response) error {
	msg := fmt.Sprintf("sber tts api error: %d", resp.StatusCode)

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := sberErrorDetail(raw)
	if detail == "" {
		snippet := string(raw)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		if snippet != "" {
			msg += " - " + snippet
		}
		return voice.NewProviderError(msg)
	}

	msg += " - " + detail
	if detail == "Token has expired" {
		if token, err := s.fetchAccessToken(ctx); err == nil {
			s.accessToken.Store(token)
			msg += " - new access token received"
		}
	}
	return voice.NewProviderError(msg)
}

func (s *SberTTS) token() string {
	token, _ := s.accessToken.Load().(string)
	return token
}

// fetchAccessToken exchanges the API key for a short-lived bearer token.
func (s *SberTTS) fetchAccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("scope", "SALUTE_SPEECH_PERS")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", uuid.NewString())
	req.Header.Set("Authorization", "Basic "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty access_token")
	}
	return payload.AccessToken, nil
}

// sberErrorDetail pulls the vendor message out of an error response body.
func sberErrorDetail(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Error.Message != "" {
		return payload.Error.Message
	}
	return payload.Message
}
