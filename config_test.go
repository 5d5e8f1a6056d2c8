package lyonkit_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyonkit/lyonkit-go"
)

func TestParseConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("LYONKIT_TEST_KEY", "6b1f0c2e-key")
	t.Setenv("LYONKIT_TEST_HOST", "cms.example.com")

	cfg, err := lyonkit.ParseConfig([]byte(`
endpoint: https://${LYONKIT_TEST_HOST}
apiKey: ${LYONKIT_TEST_KEY}
userAgent: my-site/1.0
debug: true
`))

	require.NoError(t, err)
	assert.Equal(t, "https://cms.example.com", cfg.Endpoint)
	assert.Equal(t, "6b1f0c2e-key", cfg.APIKey)
	assert.Equal(t, "my-site/1.0", cfg.UserAgent)
	assert.True(t, cfg.Debug)
	assert.Len(t, cfg.Options(), 3)
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := lyonkit.ParseConfig([]byte("endpoint: [unclosed"))

	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "from-file", r.Header.Get("x-api-key"))
		assert.Equal(t, "override/2.0", r.Header.Get("User-Agent"))
		mustEncode(w, map[string]string{"message": "ok"})
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "lyonkit.yaml")
	content := "endpoint: " + server.URL + "\napiKey: from-file\nuserAgent: my-site/1.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := lyonkit.LoadConfig(path)
	require.NoError(t, err)

	client, err := cfg.NewWriteClient(lyonkit.WithUserAgent("override/2.0"))
	require.NoError(t, err)
	assert.Equal(t, server.URL, client.Endpoint())

	_, err = client.Ping(newTestContext(t))
	require.NoError(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := lyonkit.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func TestConfig_MissingAPIKey(t *testing.T) {
	cfg := &lyonkit.Config{Endpoint: "https://cms.example.com"}

	_, err := cfg.NewReadOnlyClient()

	assert.Error(t, err)
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv(lyonkit.EnvAPIKey, "from-env")
	t.Setenv(lyonkit.EnvDebug, "")
	t.Setenv(lyonkit.EnvEndpoint, "")
	require.NoError(t, os.Unsetenv(lyonkit.EnvEndpoint))

	dotenv := filepath.Join(t.TempDir(), ".env")
	content := "LYONKIT_API_KEY=from-file\nLYONKIT_ENDPOINT=https://cms.example.com\nLYONKIT_DEBUG=true\n"
	require.NoError(t, os.WriteFile(dotenv, []byte(content), 0o600))

	cfg, err := lyonkit.LoadEnvConfig(dotenv)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey, "environment wins over the file")
	assert.Equal(t, "https://cms.example.com", cfg.Endpoint)
	assert.False(t, cfg.Debug, "empty variable is already set")
}

func TestLoadEnvConfig_MissingFile(t *testing.T) {
	t.Setenv(lyonkit.EnvAPIKey, "from-env")

	cfg, err := lyonkit.LoadEnvConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoadEnvConfig_InvalidDebug(t *testing.T) {
	t.Setenv(lyonkit.EnvDebug, "sometimes")

	_, err := lyonkit.LoadEnvConfig(filepath.Join(t.TempDir(), "missing.env"))

	assert.Error(t, err)
}
