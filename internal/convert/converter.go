// Package convert normalizes synthesized audio to the Opus-in-Ogg container
// required for chat delivery, shelling out to ffmpeg when the source
// container differs.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/antonveselov/voicegen/internal/voice"
)

const (
	defaultConvertTimeout = 30 * time.Second
	defaultProbeTimeout   = 5 * time.Second
)

// Converter transcodes voice messages to Ogg/Opus via the ffmpeg binary.
type Converter struct {
	ffmpegPath     string
	convertTimeout time.Duration
	probeTimeout   time.Duration
}

// New creates a Converter and probes for ffmpeg. A missing binary only logs
// a warning here; the failure surfaces on first conversion instead.
func New(ffmpegPath string) *Converter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	c := &Converter{
		ffmpegPath:     ffmpegPath,
		convertTimeout: defaultConvertTimeout,
		probeTimeout:   defaultProbeTimeout,
	}
	c.probe()
	return c
}

func (c *Converter) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), c.probeTimeout)
	defer cancel()

	if err := exec.CommandContext(ctx, c.ffmpegPath, "-version").Run(); err != nil {
		slog.Warn("ffmpeg not found, audio conversion may fail",
			"path", c.ffmpegPath, "error", err)
	}
}

// Available reports whether the ffmpeg binary can be invoked.
func (c *Converter) Available() bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.probeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, c.ffmpegPath, "-version").Run() == nil
}

// ToOggOpus converts a voice message to Ogg/Opus. Messages already in an
// ogg or opus container are returned unchanged without invoking ffmpeg.
// Both transient files are removed on every exit path.
func (c *Converter) ToOggOpus(ctx context.Context, msg voice.VoiceMessage) (voice.VoiceMessage, error) {
	if msg.Format() == voice.FormatOgg || msg.Format() == voice.FormatOpus {
		return msg, nil
	}

	in, err := os.CreateTemp("", "voicegen-in-*."+msg.Format())
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("audio conversion failed", err)
	}
	inPath := in.Name()
	defer os.Remove(inPath) // best effort

	if _, err := in.Write(msg.Audio()); err != nil {
		in.Close()
		return voice.VoiceMessage{}, voice.WrapProviderError("audio conversion failed", err)
	}
	in.Close()

	out, err := os.CreateTemp("", "voicegen-out-*.ogg")
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("audio conversion failed", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath) // best effort

	ctx, cancel := context.WithTimeout(ctx, c.convertTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.ffmpegPath,
		"-i", inPath,
		"-acodec", "libopus",
		"-f", "ogg",
		"-y",
		outPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return voice.VoiceMessage{}, voice.NewProviderError("audio conversion timed out")
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return voice.VoiceMessage{}, voice.NewProviderError(
				fmt.Sprintf("audio conversion failed: %s", strings.TrimSpace(stderr.String())))
		}
		return voice.VoiceMessage{}, voice.WrapProviderError("audio conversion failed", err)
	}

	converted, err := os.ReadFile(outPath)
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("audio conversion failed", err)
	}

	result, err := voice.NewVoiceMessage(converted, voice.FormatOgg)
	if err != nil {
		return voice.VoiceMessage{}, voice.WrapProviderError("audio conversion produced no audio", err)
	}
	return result, nil
}
