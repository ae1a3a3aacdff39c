package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_UnknownBackend(t *testing.T) {
	_, err := NewProvider(FactoryConfig{Backend: "bing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tts backend")
}

func TestNewProvider_Yandex(t *testing.T) {
	p, err := NewProvider(FactoryConfig{
		Backend: BackendYandex,
		Yandex:  YandexConfig{APIKey: "key", FolderID: "folder"},
	})
	require.NoError(t, err)
	assert.Equal(t, "yandex", p.Name())
}

func TestNewProvider_Local(t *testing.T) {
	p, err := NewProvider(FactoryConfig{
		Backend: BackendLocal,
		Local:   LocalConfig{PreferHosted: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "local", p.Name())
}
