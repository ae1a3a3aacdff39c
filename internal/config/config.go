package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	TTS     TTSConfig
	Convert ConvertConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	APIKey string // empty disables API-key auth
}

type TTSConfig struct {
	Provider string // "yandex", "sber" or "local"
	Yandex   YandexConfig
	Sber     SberConfig
	Local    LocalConfig
}

type YandexConfig struct {
	APIKey   string
	FolderID string
}

type SberConfig struct {
	APIKey   string
	ClientID string
}

type LocalConfig struct {
	PreferHosted  bool
	DisableHosted bool
	EspeakPath    string
}

type ConvertConfig struct {
	FFmpegPath string
}

func Load() (*Config, error) {
	// Best effort: a missing .env file is fine outside development.
	_ = godotenv.Load()

	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	preferHosted, err := getEnvBool("TTS_LOCAL_PREFER_HOSTED", true)
	if err != nil {
		return nil, fmt.Errorf("invalid TTS_LOCAL_PREFER_HOSTED: %w", err)
	}

	disableHosted, err := getEnvBool("TTS_LOCAL_DISABLE_HOSTED", false)
	if err != nil {
		return nil, fmt.Errorf("invalid TTS_LOCAL_DISABLE_HOSTED: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		TTS: TTSConfig{
			Provider: strings.ToLower(getEnv("TTS_PROVIDER", "local")),
			Yandex: YandexConfig{
				APIKey:   getEnv("YANDEX_API_KEY", ""),
				FolderID: getEnv("YANDEX_FOLDER_ID", ""),
			},
			Sber: SberConfig{
				APIKey:   getEnv("SBER_API_KEY", ""),
				ClientID: getEnv("SBER_CLIENT_ID", ""),
			},
			Local: LocalConfig{
				PreferHosted:  preferHosted,
				DisableHosted: disableHosted,
				EspeakPath:    getEnv("TTS_LOCAL_ESPEAK_PATH", "espeak-ng"),
			},
		},
		Convert: ConvertConfig{
			FFmpegPath: getEnv("FFMPEG_PATH", "ffmpeg"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate collects every provider-conditional configuration problem instead
// of stopping at the first one.
func (c *Config) Validate() error {
	var errs []string

	switch c.TTS.Provider {
	case "yandex":
		if c.TTS.Yandex.APIKey == "" {
			errs = append(errs, "YANDEX_API_KEY is required when TTS_PROVIDER=yandex")
		}
		if c.TTS.Yandex.FolderID == "" {
			errs = append(errs, "YANDEX_FOLDER_ID is required when TTS_PROVIDER=yandex")
		}
	case "sber":
		if c.TTS.Sber.APIKey == "" {
			errs = append(errs, "SBER_API_KEY is required when TTS_PROVIDER=sber")
		}
	case "local":
	default:
		errs = append(errs, fmt.Sprintf("unknown TTS_PROVIDER: %s", c.TTS.Provider))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseBool(v)
}
