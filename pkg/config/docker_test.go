package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHost(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		inDocker bool
		expected string
	}{
		{"remote host outside docker", "db.example.com", false, "db.example.com"},
		{"remote host inside docker", "db.example.com", true, "db.example.com"},
		{"localhost outside docker", "localhost", false, "localhost"},
		{"localhost inside docker", "localhost", true, "host.docker.internal"},
		{"ipv4 loopback inside docker", "127.0.0.1", true, "host.docker.internal"},
		{"ipv6 loopback inside docker", "::1", true, "host.docker.internal"},
		{"already rewritten", "host.docker.internal", true, "host.docker.internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveHost(tt.host, tt.inDocker))
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, ".dockerenv")

	assert.False(t, fileExists(marker))
	assert.NoError(t, os.WriteFile(marker, nil, 0o644))
	assert.True(t, fileExists(marker))
}
