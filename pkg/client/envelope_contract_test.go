package client

import (
	"encoding/json/v2"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureBytes reads one of the shared envelope fixtures the server
// contract tests also verify against.
func fixtureBytes(t *testing.T, name string) []byte {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)

	repoDir := filepath.Dir(filepath.Dir(filepath.Dir(filename)))
	raw, err := os.ReadFile(filepath.Join(repoDir, "testdata", "envelope", name))
	require.NoError(t, err, "contract tests require shared fixtures")
	return raw
}

func TestEnvelopeContract_ClientParsesSuccess(t *testing.T) {
	var env envelope
	require.NoError(t, json.Unmarshal(fixtureBytes(t, "success.json"), &env))

	assert.Equal(t, 1, env.V)
	assert.True(t, env.Success)

	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "test-123", data["id"])
}

func TestEnvelopeContract_ClientParsesNullData(t *testing.T) {
	var env envelope
	require.NoError(t, json.Unmarshal(fixtureBytes(t, "success_null_data.json"), &env))

	assert.True(t, env.Success)
	assert.Empty(t, env.Data)
}

func TestEnvelopeContract_ClientParsesSimpleError(t *testing.T) {
	var env envelope
	require.NoError(t, json.Unmarshal(fixtureBytes(t, "error_simple.json"), &env))

	assert.False(t, env.Success)
	assert.Equal(t, "Resource not found", env.Error)
}

func TestEnvelopeContract_ClientParsesDetailedError(t *testing.T) {
	var env envelope
	require.NoError(t, json.Unmarshal(fixtureBytes(t, "error_detailed.json"), &env))

	assert.False(t, env.Success)
	assert.Equal(t, "CONFLICT", env.Code)
	assert.Equal(t, "Entity already exists", env.Message)
	assert.NotNil(t, env.Details)
}
