package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSchema_Valid(t *testing.T) {
	err := CheckSchema("config.yaml", []byte(`
server:
  host: localhost
  port: 8000
metrics:
  enabled: false
  path: /internal/metrics
`))
	assert.NoError(t, err)
}

func TestCheckSchema_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{
			name:  "port out of range",
			input: "server:\n  port: 70000\n",
			field: "port",
		},
		{
			name:  "unknown backend",
			input: "store:\n  backend: redis\n",
			field: "backend",
		},
		{
			name:  "unknown log level",
			input: "log:\n  level: chatty\n",
			field: "level",
		},
		{
			name:  "metrics path without slash",
			input: "metrics:\n  path: metrics\n",
			field: "path",
		},
		{
			name:  "unknown key",
			input: "server:\n  prot: 8000\n",
			field: "prot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSchema("config.yaml", []byte(tt.input))
			require.Error(t, err)

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr), "want *SchemaError, got %T: %v", err, err)
			assert.Contains(t, schemaErr.Error(), tt.field)
		})
	}
}

func TestParse_RejectsBeforeDecode(t *testing.T) {
	cfg := Default()
	err := Parse("config.yaml", []byte("server:\n  port: 0\n"), &cfg)
	require.Error(t, err)
	assert.Equal(t, 5000, cfg.Server.Port, "config must be untouched on schema failure")
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "server.port", joinPath([]string{"#Config", "server", "port"}))
	assert.Equal(t, "config", joinPath(nil))
}
