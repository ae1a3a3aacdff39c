package voice

import (
	"fmt"
	"math"
)

// Speed multiplier bounds, inclusive.
const (
	MinSpeed = 0.1
	MaxSpeed = 3.0
)

// Default synthesis parameters.
const (
	DefaultVoice    = "alena"
	DefaultLanguage = "ru-RU"
	DefaultSpeed    = 1.0
)

// SynthesisConfig holds the tunable parameters for one synthesis request.
// Voice, language and emotion are free-form; the selected provider validates
// them if at all.
type SynthesisConfig struct {
	voice    string
	language string
	speed    float64
	emotion  string
}

// NewSynthesisConfig validates and builds a config. Empty voice/language fall
// back to the defaults; speed must be within [MinSpeed, MaxSpeed].
func NewSynthesisConfig(voiceName, language string, speed float64, emotion string) (SynthesisConfig, error) {
	if voiceName == "" {
		voiceName = DefaultVoice
	}
	if language == "" {
		language = DefaultLanguage
	}
	if math.IsNaN(speed) || speed <= 0 {
		return SynthesisConfig{}, NewValidationError("speed must be a positive number")
	}
	if speed < MinSpeed {
		return SynthesisConfig{}, NewValidationError(fmt.Sprintf("speed cannot be less than %v", MinSpeed))
	}
	if speed > MaxSpeed {
		return SynthesisConfig{}, NewValidationError(fmt.Sprintf("speed cannot exceed %v", MaxSpeed))
	}
	return SynthesisConfig{voice: voiceName, language: language, speed: speed, emotion: emotion}, nil
}

// DefaultSynthesisConfig returns the config used when a request does not
// customize anything.
func DefaultSynthesisConfig() SynthesisConfig {
	return SynthesisConfig{
		voice:    DefaultVoice,
		language: DefaultLanguage,
		speed:    DefaultSpeed,
	}
}

func (c SynthesisConfig) Voice() string    { return c.voice }
func (c SynthesisConfig) Language() string { return c.language }
func (c SynthesisConfig) Speed() float64   { return c.speed }
func (c SynthesisConfig) Emotion() string  { return c.emotion }
