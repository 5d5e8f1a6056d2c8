package lyonkit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lyonkit/lyonkit-go"
	"github.com/lyonkit/lyonkit-go/internal/fakelyonkit"
)

const testNamespace = "test-namespace"

// fixture is a fake Lyonkit service with a write and a read-only client
// bound to the same namespace.
type fixture struct {
	server *fakelyonkit.Server
	write  *lyonkit.WriteClient
	read   *lyonkit.ReadOnlyClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	server := fakelyonkit.New()
	t.Cleanup(server.Close)

	write, err := lyonkit.NewWriteClient(server.AddAPIKey(testNamespace, false),
		lyonkit.WithEndpoint(server.URL),
	)
	require.NoError(t, err)

	read, err := lyonkit.NewReadOnlyClient(server.AddAPIKey(testNamespace, true),
		lyonkit.WithEndpoint(server.URL),
	)
	require.NoError(t, err)

	return &fixture{server: server, write: write, read: read}
}

// newTestContext creates a context with a reasonable timeout for tests.
func newTestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// mustEncode encodes v as JSON and writes it to w.
// Panics on error - safe in tests since errors indicate test bugs.
func mustEncode(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("failed to encode response: " + err.Error())
	}
}

// mustJSON marshals v, for comparisons with assert.JSONEq.
func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
