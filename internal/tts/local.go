package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/antonveselov/voicegen/internal/voice"
)

// LocalConfig holds settings for the no-credentials local backend. The
// hosted sub-engine needs only outbound network access; the offline
// sub-engine needs the espeak-ng binary on PATH.
type LocalConfig struct {
	PreferHosted  bool
	DisableHosted bool
	HostedURL     string // default: "https://translate.google.com/translate_tts"
	EspeakPath    string // default: "espeak-ng"
}

// LocalTTS synthesizes speech without vendor credentials, using either the
// hosted translate endpoint (MP3 out) or the espeak-ng binary (WAV out via a
// transient file). The active sub-engine is picked once at construction.
type LocalTTS struct {
	hostedURL  string
	espeakPath string
	useHosted  bool
	httpClient *http.Client
}

// NewLocalTTS probes both sub-engines and fails immediately when neither is
// usable. Falling back from the preferred sub-engine logs a warning.
func NewLocalTTS(cfg LocalConfig) (*LocalTTS, error) {
	if cfg.HostedURL == "" {
		cfg.HostedURL = "https://translate.google.com/translate_tts"
	}
	if cfg.EspeakPath == "" {
		cfg.EspeakPath = "espeak-ng"
	}

	hostedAvailable := !cfg.DisableHosted

	espeakPath, lookErr := exec.LookPath(cfg.EspeakPath)
	espeakAvailable := lookErr == nil

	if !hostedAvailable && !espeakAvailable {
		return nil, fmt.Errorf("no local tts engine available: hosted engine disabled and %s not found", cfg.EspeakPath)
	}

	useHosted := cfg.PreferHosted
	if cfg.PreferHosted && !hostedAvailable {
		slog.Warn("hosted tts engine disabled, falling back to espeak", "espeak", espeakPath)
		useHosted = false
	}
	if !cfg.PreferHosted && !espeakAvailable {
		slog.Warn("espeak not found, falling back to hosted tts engine", "path", cfg.EspeakPath)
		useHosted = true
	}

	return &LocalTTS{
		hostedURL:  cfg.HostedURL,
		espeakPath: espeakPath,
		useHosted:  useHosted,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (l *LocalTTS) Name() string { return "local" }

func (l *LocalTTS) Synthesize(ctx context.Context, text voice.TextMessage, cfg voice.SynthesisConfig) (voice.VoiceMessage, error) {
	if l.useHosted {
		return l.synthesizeHosted(ctx, text, cfg)
	}
	return l.synthesizeEspeak(ctx, text, cfg)
}

// synthesizeHosted fetches MP3 audio from the translate endpoint.
func (l *LocalTTS) synthesizeHosted(ctx context.Context, text voice.TextMessage, cfg voice.SynthesisConfig) (voice.VoiceMessage, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text.Content())
	params.Set("tl", langCode(cfg.Language()))
	params.Set("client", "tw-ob")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.hostedURL+"?"+params.Encode(), nil)
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("build hosted tts request", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return voice.VoiceMessage{}, voice.UnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return voice.VoiceMessage{}, voice.NewProviderError(
			fmt.Sprintf("hosted tts engine error: %d", resp.StatusCode))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return voice.VoiceMessage{}, voice.UnavailableError(err)
	}

	msg, err := voice.NewVoiceMessage(audio, voice.FormatMP3)
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("hosted tts engine returned invalid audio", err)
	}
	return msg, nil
}

// synthesizeEspeak runs espeak-ng writing WAV to a transient file, reads it
// back and removes the file on every exit path.
func (l *LocalTTS) synthesizeEspeak(ctx context.Context, text voice.TextMessage, cfg voice.SynthesisConfig) (voice.VoiceMessage, error) {
	if l.espeakPath == "" {
		return voice.VoiceMessage{}, voice.NewProviderError("espeak is not available")
	}

	tmp, err := os.CreateTemp("", "voicegen-*.wav")
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("create transient audio file", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath) // best effort

	// espeak speaks at ~175 words per minute at speed 1.0.
	wpm := int(175 * cfg.Speed())

	cmd := exec.CommandContext(ctx, l.espeakPath,
		"-v", langCode(cfg.Language()),
		"-s", strconv.Itoa(wpm),
		"-w", tmpPath,
		text.Content(),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError(
			fmt.Sprintf("espeak failed: %v (stderr: %s)", err, strings.TrimSpace(stderr.String())), err)
	}

	audio, err := os.ReadFile(tmpPath)
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("read generated audio file", err)
	}

	msg, err := voice.NewVoiceMessage(audio, voice.FormatWAV)
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("espeak produced no audio", err)
	}
	return msg, nil
}

// langCode reduces a BCP-47 language tag to the two-letter code both
// sub-engines expect.
func langCode(language string) string {
	switch language {
	case "ru-RU":
		return "ru"
	case "en-US", "en-GB":
		return "en"
	}
	if i := strings.Index(language, "-"); i > 0 {
		return language[:i]
	}
	return language
}
