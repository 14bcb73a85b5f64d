package publishers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	t.Setenv("WEBHOOK_TOKEN", "s3cret")

	path := writeConfig(t, "publishers.yaml", `
publishers:
  - id: dashboard-webhook
    type: http
    http:
      url: https://hooks.example.com/ingest
      headers:
        Authorization: "Bearer ${WEBHOOK_TOKEN}"
  - id: archive-queue
    type: queue
    enabled: false
    queue:
      provider: aws-sqs
      sqs:
        queue_url: https://sqs.ap-southeast-1.amazonaws.com/123/articles
        region: ap-southeast-1
        access_key_id: AKIA123
        secret_access_key: abc123
`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	all := reg.All()
	require.Len(t, all, 2)

	hook, ok := reg.ByID("dashboard-webhook")
	require.True(t, ok)
	assert.Equal(t, "Bearer s3cret", hook.HTTP.Headers["Authorization"])
	// Sanitizer applies the method and timeout defaults.
	assert.Equal(t, "POST", hook.HTTP.Method)
	assert.Equal(t, 5, hook.HTTP.TimeoutSeconds)
	assert.True(t, hook.EnabledValue())

	enabled := reg.Enabled()
	require.Len(t, enabled, 1)
	assert.Equal(t, "dashboard-webhook", enabled[0].ID)
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeConfig(t, "publishers.json", `{
  "publishers": [
    {"id": "hook", "type": "http", "http": {"url": "https://hooks.example.com/x", "method": "put"}}
  ]
}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	hook, ok := reg.ByID("hook")
	require.True(t, ok)
	assert.Equal(t, "PUT", hook.HTTP.Method)
}

func TestLoadRegistryValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing id", `
publishers:
  - type: http
    http: {url: https://x.example.com}
`},
		{"missing type", `
publishers:
  - id: p
`},
		{"unknown type", `
publishers:
  - id: p
    type: carrier-pigeon
`},
		{"http without url", `
publishers:
  - id: p
    type: http
    http: {method: POST}
`},
		{"queue without provider", `
publishers:
  - id: p
    type: queue
    queue: {}
`},
		{"sqs without credentials", `
publishers:
  - id: p
    type: queue
    queue:
      provider: aws-sqs
      sqs: {queue_url: https://sqs.example.com/q, region: ap-southeast-1}
`},
		{"azure not implemented", `
publishers:
  - id: p
    type: queue
    queue:
      provider: azure
      azure: {connection_string: cs, queue: q}
`},
		{"duplicate id", `
publishers:
  - id: p
    type: http
    http: {url: https://x.example.com}
  - id: p
    type: http
    http: {url: https://y.example.com}
`},
		{"empty file", `publishers: []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "publishers.yaml", tt.content)
			_, err := LoadRegistry(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	_, err = LoadRegistry("")
	assert.Error(t, err)
}

func TestEnabledValueDefaultsTrue(t *testing.T) {
	assert.True(t, PublisherConfig{}.EnabledValue())

	off := false
	assert.False(t, PublisherConfig{Enabled: &off}.EnabledValue())
}
