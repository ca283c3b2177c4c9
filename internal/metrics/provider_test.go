package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("Success_CreateProviderWithNamespace", func(t *testing.T) {
		provider, err := NewProvider("test_app")

		require.NoError(t, err)
		assert.NotNil(t, provider)
		assert.NotNil(t, provider.meterProvider)
		assert.NotNil(t, provider.exporter)
		assert.NotNil(t, provider.registry)
	})

	t.Run("Success_CreateProviderWithEmptyNamespace", func(t *testing.T) {
		provider, err := NewProvider("")

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})
}

func TestProvider_MeterProvider(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	meterProvider := provider.MeterProvider()
	assert.NotNil(t, meterProvider)
}

func TestProvider_Handler(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	handler := provider.Handler()
	assert.NotNil(t, handler)
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success_ShutdownProvider", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)

		err = provider.Shutdown(context.Background())
		assert.NoError(t, err)
	})

	t.Run("Success_ShutdownNilProvider", func(t *testing.T) {
		provider := &Provider{meterProvider: nil}

		err := provider.Shutdown(context.Background())
		assert.NoError(t, err)
	})
}

func TestProvider_RegisterBuildInfo(t *testing.T) {
	t.Run("Success_ExposesBuildInfoGauge", func(t *testing.T) {
		provider, err := NewProvider("configd")
		require.NoError(t, err)

		err = provider.RegisterBuildInfo(BuildInfo{
			Service: "fks_config",
			Version: "1.2.3",
			Commit:  "abc123",
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		body := w.Body.String()
		assert.Contains(t, body, "configd_build_info{")
		assert.Contains(t, body, `service="fks_config"`)
		assert.Contains(t, body, `version="1.2.3"`)
		assert.Contains(t, body, `commit="abc123"`)
		assert.Contains(t, body, `build_date="unknown"`)
	})

	t.Run("Error_RegisteredTwice", func(t *testing.T) {
		provider, err := NewProvider("configd")
		require.NoError(t, err)

		require.NoError(t, provider.RegisterBuildInfo(BuildInfo{Service: "fks_config"}))
		assert.Error(t, provider.RegisterBuildInfo(BuildInfo{Service: "fks_config"}))
	})
}
