package config

import (
	"os"
	"sync"
)

// dockerEnvFile exists in every Docker container.
var dockerEnvFile = "/.dockerenv"

var (
	isDockerOnce   sync.Once
	isDockerResult bool
)

// IsRunningInDocker reports whether the process runs inside a Docker container.
// The result is cached after the first call.
func IsRunningInDocker() bool {
	isDockerOnce.Do(func() {
		isDockerResult = fileExists(dockerEnvFile)
	})
	return isDockerResult
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ResolveHostForDocker rewrites loopback database hosts to host.docker.internal
// when running in Docker, so a containerised API can reach a Postgres on the host.
// Any other host is returned unchanged.
func ResolveHostForDocker(host string) string {
	return resolveHost(host, IsRunningInDocker())
}

func resolveHost(host string, inDocker bool) string {
	if !inDocker {
		return host
	}
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return "host.docker.internal"
	}
	return host
}
