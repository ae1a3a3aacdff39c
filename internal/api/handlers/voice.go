package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/antonveselov/voicegen/internal/voice"
)

// VoiceGenerator runs the generation use case.
type VoiceGenerator interface {
	Execute(ctx context.Context, text string, userID int64, cfg *voice.SynthesisConfig) (voice.VoiceMessage, error)
}

// AudioNormalizer converts a voice message to the Ogg/Opus delivery format.
type AudioNormalizer interface {
	ToOggOpus(ctx context.Context, msg voice.VoiceMessage) (voice.VoiceMessage, error)
}

type VoiceHandler struct {
	generator  VoiceGenerator
	normalizer AudioNormalizer
}

func NewVoiceHandler(g VoiceGenerator, n AudioNormalizer) *VoiceHandler {
	return &VoiceHandler{generator: g, normalizer: n}
}

// VoiceRequest is the request body for POST /api/v1/voice. All synthesis
// fields are optional; zero values mean the defaults.
type VoiceRequest struct {
	Text     string  `json:"text"`
	UserID   int64   `json:"user_id,omitempty"`
	Voice    string  `json:"voice,omitempty"`
	Language string  `json:"language,omitempty"`
	Speed    float64 `json:"speed,omitempty"`
	Emotion  string  `json:"emotion,omitempty"`
}

// Generate converts text to an Ogg/Opus voice clip and writes the raw audio.
func (h *VoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req VoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cfg, err := synthesisConfig(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	msg, err := h.generator.Execute(r.Context(), req.Text, req.UserID, cfg)
	if err != nil {
		writeVoiceError(w, err)
		return
	}

	normalized, err := h.normalizer.ToOggOpus(r.Context(), msg)
	if err != nil {
		writeVoiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/ogg")
	w.Header().Set("Content-Length", strconv.Itoa(normalized.Size()))
	w.WriteHeader(http.StatusOK)
	w.Write(normalized.Audio())
}

// synthesisConfig builds a config from the request fields, or nil when the
// request customizes nothing so the use case applies its defaults.
func synthesisConfig(req VoiceRequest) (*voice.SynthesisConfig, error) {
	if req.Voice == "" && req.Language == "" && req.Speed == 0 && req.Emotion == "" {
		return nil, nil
	}

	speed := req.Speed
	if speed == 0 {
		speed = voice.DefaultSpeed
	}

	cfg, err := voice.NewSynthesisConfig(req.Voice, req.Language, speed, req.Emotion)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func writeVoiceError(w http.ResponseWriter, err error) {
	if voice.IsValidation(err) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
}
