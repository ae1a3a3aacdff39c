package tts

import "fmt"

// Backend names accepted by the factory.
const (
	BackendYandex = "yandex"
	BackendSber   = "sber"
	BackendLocal  = "local"
)

// FactoryConfig selects and configures the active backend. Selection happens
// once at process start and is fixed for the process lifetime.
type FactoryConfig struct {
	Backend string
	Yandex  YandexConfig
	Sber    SberConfig
	Local   LocalConfig
}

// NewProvider builds the provider named by cfg.Backend.
func NewProvider(cfg FactoryConfig) (Provider, error) {
	switch cfg.Backend {
	case BackendYandex:
		return NewYandexTTS(cfg.Yandex)
	case BackendSber:
		return NewSberTTS(cfg.Sber)
	case BackendLocal:
		return NewLocalTTS(cfg.Local)
	default:
		return nil, fmt.Errorf("unknown tts backend: %q", cfg.Backend)
	}
}
